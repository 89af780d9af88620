package object

import (
	"bytes"
	"fmt"
	"github.com/bsparks/simple-script/internal/ast"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

const (
	NULL_OBJ    = "NULL"
	BOOLEAN_OBJ = "BOOLEAN"
	NUMBER_OBJ  = "NUMBER"
	STRING_OBJ  = "STRING"

	ARRAY_OBJ = "ARRAY"
	HASH_OBJ  = "HASH"

	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	ERROR_OBJ    = "ERROR"

	RETURN_VALUE_OBJ = "RETURN_VALUE"
)

// Boolean and Null results are always one of these.
var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type ObjectType string

type Object interface {
	Type() ObjectType
	Inspect() string
	Equals(other Object) bool
}

// Hashable objects can be used as Hash keys and Hash indexes.
type Hashable interface {
	Object
	HashKey() HashKey
}

type BuiltinFunction func(args ...Object) Object

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return FormatNumber(n.Value) }
func (n *Number) Equals(other Object) bool {
	o, ok := other.(*Number)
	return ok && o.Value == n.Value
}

// HashKey uses the IEEE bits of the value. -0 shares the slot of 0 and every
// NaN shares one slot, so numerically equal numbers always collide.
func (n *Number) HashKey() HashKey {
	v := n.Value
	switch {
	case v == 0:
		v = 0
	case math.IsNaN(v):
		v = math.NaN()
	}
	return HashKey{Type: n.Type(), Value: math.Float64bits(v)}
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }
func (s *String) Equals(other Object) bool {
	o, ok := other.(*String)
	return ok && o.Value == s.Value
}

// HashKey is a 32-bit rolling hash over UTF-16 code units. Distinct strings
// can collide and then share a slot.
func (s *String) HashKey() HashKey {
	var h int32
	for _, unit := range utf16.Encode([]rune(s.Value)) {
		h = h*31 + int32(unit)
	}
	return HashKey{Type: s.Type(), Value: uint64(int64(h))}
}

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) Equals(other Object) bool {
	o, ok := other.(*Boolean)
	return ok && o.Value == b.Value
}
func (b *Boolean) HashKey() HashKey {
	var value uint64
	if b.Value {
		value = 1
	}
	return HashKey{Type: b.Type(), Value: value}
}

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }
func (n *Null) Equals(other Object) bool {
	_, ok := other.(*Null)
	return ok
}

type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	elements := make([]string, 0, len(a.Elements))
	for _, e := range a.Elements {
		elements = append(elements, e.Inspect())
	}
	return "[" + strings.Join(elements, ", ") + "]"
}
func (a *Array) Equals(other Object) bool { return other == Object(a) }

type HashKey struct {
	Type  ObjectType
	Value uint64
}

type HashPair struct {
	Key   Object
	Value Object
}

// Hash remembers the order in which keys were first set.
type Hash struct {
	Pairs map[HashKey]HashPair
	keys  []HashKey
}

func NewHash() *Hash {
	return &Hash{Pairs: make(map[HashKey]HashPair)}
}

// Set stores value under key. Setting an existing slot keeps its position.
func (h *Hash) Set(key Hashable, value Object) {
	if h.Pairs == nil {
		h.Pairs = make(map[HashKey]HashPair)
	}
	hk := key.HashKey()
	if _, exists := h.Pairs[hk]; !exists {
		h.keys = append(h.keys, hk)
	}
	h.Pairs[hk] = HashPair{Key: key, Value: value}
}

func (h *Hash) Get(key Hashable) (Object, bool) {
	pair, ok := h.Pairs[key.HashKey()]
	if !ok {
		return nil, false
	}
	return pair.Value, true
}

func (h *Hash) Len() int { return len(h.Pairs) }

// Ordered returns the pairs in insertion order.
func (h *Hash) Ordered() []HashPair {
	pairs := make([]HashPair, 0, len(h.Pairs))
	for _, k := range h.keys {
		if pair, ok := h.Pairs[k]; ok {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect() string {
	pairs := []string{}
	for _, pair := range h.Ordered() {
		pairs = append(pairs, pair.Key.Inspect()+":"+pair.Value.Inspect())
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
func (h *Hash) Equals(other Object) bool { return other == Object(h) }

type Function struct {
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	var out bytes.Buffer

	params := []string{}
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}

	out.WriteString("fn(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(f.Body.String())

	return out.String()
}
func (f *Function) Equals(other Object) bool { return other == Object(f) }

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function" }
func (b *Builtin) Equals(other Object) bool {
	return other == Object(b)
}

type Error struct {
	Message string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Message }
func (e *Error) Equals(other Object) bool {
	o, ok := other.(*Error)
	return ok && o.Message == e.Message
}

// ReturnValue carries a returned value up to the nearest function call or
// the program.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }
func (rv *ReturnValue) Equals(other Object) bool {
	o, ok := other.(*ReturnValue)
	return ok && o.Value.Equals(rv.Value)
}

// FormatNumber renders v the way JavaScript's Number#toString does: plain
// decimal from 1e-6 up to 1e21, exponent form outside it.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
