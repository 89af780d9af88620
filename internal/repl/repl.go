package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/bsparks/simple-script/internal/ast"
	"github.com/bsparks/simple-script/internal/engine"
	"github.com/bsparks/simple-script/internal/lexer"
	"github.com/bsparks/simple-script/internal/object"
	"github.com/bsparks/simple-script/internal/token"
)

const (
	PROMPT   = ">> "
	CONTINUE = ".. "
)

// Repl evaluates inputs one after another in a single environment, so
// bindings made by one line are visible to the next.
type Repl struct {
	Env *object.Environment
	out io.Writer
	p   painter
}

func New(env *object.Environment, out io.Writer, color bool) *Repl {
	if env == nil {
		env = object.NewEnvironment()
	}
	return &Repl{Env: env, out: out, p: painter{color: color}}
}

// Start reads newline separated inputs from in until EOF. Lines that leave a
// block or bracket open are joined with the following ones.
func (r *Repl) Start(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)

	var pending strings.Builder
	for {
		if pending.Len() == 0 {
			fmt.Fprint(r.out, r.p.prompt(PROMPT))
		} else {
			fmt.Fprint(r.out, r.p.prompt(CONTINUE))
		}
		if !scanner.Scan() {
			if pending.Len() > 0 {
				r.Eval(ctx, pending.String())
			}
			return
		}

		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(scanner.Text())

		if needsMore(pending.String()) {
			continue
		}
		if quit := r.Eval(ctx, pending.String()); quit {
			return
		}
		pending.Reset()
	}
}

// Run drives an interactive terminal session with line editing. History is
// read from and written back to historyFile when it is set.
func (r *Repl) Run(ctx context.Context, historyFile string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(historyFile)
			if err != nil {
				slog.WarnContext(ctx, "history not saved", slog.String("file", historyFile), slog.Any("error", err))
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	for {
		input, ok, err := readInput(ln)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(r.out)
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if quit := r.Eval(ctx, input); quit {
			return nil
		}
	}
}

// readInput prompts until the collected lines close every open block.
// ok is false at end of input or when the user aborts.
func readInput(ln *liner.State) (input string, ok bool, err error) {
	var b strings.Builder

	for {
		prompt := PROMPT
		if b.Len() > 0 {
			prompt = CONTINUE
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("read input: %w", err)
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !needsMore(b.String()) {
			return b.String(), true, nil
		}
	}
}

// Eval handles one complete input: a REPL command or a program. It reports
// whether the session should end.
func (r *Repl) Eval(ctx context.Context, input string) (quit bool) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		return r.command(trimmed)
	}
	if trimmed == "" {
		return false
	}

	program, err := engine.Parse(input)
	if err != nil {
		var parseErr *engine.ParseError
		if errors.As(err, &parseErr) {
			r.printParserErrors(parseErr.Diagnostics)
		} else {
			fmt.Fprintln(r.out, r.p.error(err.Error()))
		}
		return false
	}

	slog.DebugContext(ctx, "repl input", slog.Int("source_bytes", len(input)))

	evaluated := program.Eval(r.Env)
	if evaluated == nil {
		return false
	}

	if errObj, ok := evaluated.(*object.Error); ok {
		fmt.Fprintln(r.out, r.p.error(errObj.Inspect()))
		if hint := hintFor(errObj, r.Env); hint != "" {
			fmt.Fprintln(r.out, r.p.hint(hint))
		}
		return false
	}

	fmt.Fprintln(r.out, r.p.result(evaluated.Inspect()))
	return false
}

func (r *Repl) command(cmd string) (quit bool) {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":env":
		for _, name := range r.Env.Names() {
			val, _ := r.Env.Get(name)
			fmt.Fprintf(r.out, "%s = %s\n", (&ast.Identifier{Value: name}).String(), val.Inspect())
		}
	default:
		fmt.Fprintln(r.out, r.p.hint("unknown command. Type :env or :quit."))
	}
	return false
}

func (r *Repl) printParserErrors(errors []string) {
	io.WriteString(r.out, r.p.error("parser errors:")+"\n")
	for _, msg := range errors {
		io.WriteString(r.out, "\t"+msg+"\n")
	}
}

// needsMore reports whether src ends inside an open block, group or array.
// Unbalanced closers are left for the parser to report.
func needsMore(src string) bool {
	l := lexer.New(src)
	depth := 0
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		switch tok.Type {
		case token.OPEN_BLOCK, token.LPAREN, token.LBRACKET:
			depth++
		case token.CLOSE_BLOCK, token.RPAREN, token.RBRACKET:
			depth--
		}
	}
	return depth > 0
}
