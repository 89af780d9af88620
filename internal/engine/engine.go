// Package engine drives a source text through the lexer, parser and
// evaluator. Parsed programs are cached by source hash and shared between
// evaluations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"github.com/bsparks/simple-script/internal/ast"
	"github.com/bsparks/simple-script/internal/evaluator"
	"github.com/bsparks/simple-script/internal/lexer"
	"github.com/bsparks/simple-script/internal/object"
	"github.com/bsparks/simple-script/internal/parser"
	"github.com/zeebo/xxh3"
	"strings"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("parse failed")

// ParseError carries the diagnostics of a source that did not parse cleanly.
type ParseError struct {
	Source      string
	Diagnostics []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s with %d error(s):\n%s", ErrParse, len(e.Diagnostics), strings.Join(e.Diagnostics, "\n"))
}

func (e *ParseError) Unwrap() error { return ErrParse }

// Program is an immutable parsed source.
type Program struct {
	Source string
	AST    *ast.Program
	Hash   uint64
}

// Eval runs the program in env. A nil env gets a fresh root environment.
func (p *Program) Eval(env *object.Environment) object.Object {
	if env == nil {
		env = object.NewEnvironment()
	}
	return evaluator.Eval(p.AST, env)
}

// Compile parses src, reusing an earlier parse of the same text.
func Compile(src string) (*Program, error) {
	return CompileContext(context.Background(), src)
}

func CompileContext(ctx context.Context, src string) (*Program, error) {
	return compileCached(ctx, src)
}

// Parse compiles src without reading or filling the cache. Use it for one-off
// inputs such as REPL lines that would otherwise stay cached for the life of
// the process.
func Parse(src string) (*Program, error) {
	return compile(src, xxh3.HashString(src))
}

// Run compiles src and evaluates it in env. Evaluation is refused when the
// source has parse diagnostics. Language errors come back as *object.Error
// results, not as a Go error.
func Run(src string, env *object.Environment) (object.Object, error) {
	program, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return program.Eval(env), nil
}

// compile always runs the parser, bypassing the cache.
func compile(src string, hash uint64) (*Program, error) {
	l := lexer.New(src)
	p := parser.New(l, src)
	program := p.ParseProgram()
	if diagnostics := p.Errors(); len(diagnostics) > 0 {
		return nil, &ParseError{Source: src, Diagnostics: diagnostics}
	}
	return &Program{Source: src, AST: program, Hash: hash}, nil
}
