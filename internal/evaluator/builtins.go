package evaluator

import (
	"github.com/bsparks/simple-script/internal/object"
	"math"
	"sort"
	"unicode/utf8"
)

// Builtins are consulted after the environment chain, so a let binding with
// the same name shadows them.
var builtins = map[string]*object.Builtin{
	"round": funcRound(),
	"floor": funcNumberUnary("floor", math.Floor),
	"ceil":  funcNumberUnary("ceil", math.Ceil),
	"abs":   funcNumberUnary("abs", math.Abs),
	"min":   funcNumberFold("min", math.Min),
	"max":   funcNumberFold("max", math.Max),
	"len":   funcLen(),
}

func init() {
	for name, b := range builtins {
		b.Name = name
	}
}

// BuiltinNames returns the registered builtin names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// funcRound rounds half-way cases towards positive infinity, so round(-2.5)
// is -2.
func funcRound() *object.Builtin {
	return funcNumberUnary("round", func(v float64) float64 {
		r := math.Floor(v)
		if v-r >= 0.5 {
			r++
		}
		return r
	})
}

func funcNumberUnary(name string, fn func(float64) float64) *object.Builtin {
	return &object.Builtin{Fn: func(args ...object.Object) object.Object {
		if len(args) != 1 {
			return newError("wrong number of arguments. got=%d, want=1",
				len(args))
		}

		number, ok := args[0].(*object.Number)
		if !ok {
			return newError("argument to `%s` must be NUMBER, got %s",
				name, args[0].Type())
		}

		return &object.Number{Value: fn(number.Value)}
	},
	}
}

func funcNumberFold(name string, fn func(float64, float64) float64) *object.Builtin {
	return &object.Builtin{Fn: func(args ...object.Object) object.Object {
		if len(args) == 0 {
			return newError("wrong number of arguments. got=0, want=1+")
		}

		var acc float64
		for i, arg := range args {
			number, ok := arg.(*object.Number)
			if !ok {
				return newError("argument to `%s` must be NUMBER, got %s",
					name, arg.Type())
			}
			if i == 0 {
				acc = number.Value
				continue
			}
			acc = fn(acc, number.Value)
		}

		return &object.Number{Value: acc}
	},
	}
}

// funcLen counts runes for strings, elements for arrays and pairs for hashes.
func funcLen() *object.Builtin {
	return &object.Builtin{Fn: func(args ...object.Object) object.Object {
		if len(args) != 1 {
			return newError("wrong number of arguments. got=%d, want=1",
				len(args))
		}

		switch arg := args[0].(type) {
		case *object.Array:
			return &object.Number{Value: float64(len(arg.Elements))}
		case *object.Hash:
			return &object.Number{Value: float64(arg.Len())}
		case *object.String:
			return &object.Number{Value: float64(utf8.RuneCountInString(arg.Value))}
		default:
			return newError("argument to `len` not supported, got %s",
				args[0].Type())
		}
	},
	}
}
