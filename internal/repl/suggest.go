package repl

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/bsparks/simple-script/internal/ast"
	"github.com/bsparks/simple-script/internal/evaluator"
	"github.com/bsparks/simple-script/internal/object"
)

const (
	unknownIdentifier = "identifier not found: "
	maxSuggestions    = 3
)

// Suggest ranks candidates against name, best match first.
func Suggest(name string, candidates []string) []string {
	if name == "" {
		return nil
	}

	matches := fuzzy.Find(name, candidates)

	var out []string
	for _, match := range matches {
		if match.Str == name || slices.Contains(out, match.Str) {
			continue
		}
		out = append(out, match.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// hintFor returns a "did you mean" line for unknown identifier errors, or ""
// when there is nothing useful to say.
func hintFor(err *object.Error, env *object.Environment) string {
	name, ok := strings.CutPrefix(err.Message, unknownIdentifier)
	if !ok {
		return ""
	}

	candidates := append(env.Names(), evaluator.BuiltinNames()...)
	suggestions := Suggest(name, candidates)
	if len(suggestions) == 0 {
		return ""
	}
	for i, s := range suggestions {
		suggestions[i] = (&ast.Identifier{Value: s}).String()
	}
	return "did you mean " + strings.Join(suggestions, ", ") + "?"
}
