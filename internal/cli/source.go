package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bsparks/simple-script/internal/engine"
	"github.com/bsparks/simple-script/internal/util"
)

// Input selects where a command reads its program from: -e text, a file, or
// stdin when neither is given or the file is "-".
type Input struct {
	File string `arg:"" help:"Script file, or '-' for stdin." optional:""`
	Expr string `help:"Program text to use instead of a file." placeholder:"EXPR" short:"e"`
}

func (in Input) compile(ctx context.Context, stdin io.Reader) (*engine.Program, error) {
	if in.Expr != "" {
		if in.File != "" {
			return nil, errors.New("give either a file or --expr, not both")
		}
		return engine.CompileContext(ctx, in.Expr)
	}

	if in.File == "" || in.File == "-" {
		return engine.ParseReader(ctx, stdin)
	}

	f, err := os.Open(in.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return engine.ParseReader(ctx, f)
}

// reportParseError writes every diagnostic followed by the source lines it
// points at. It returns false when err is not a parse failure.
func reportParseError(w io.Writer, err error) bool {
	var parseErr *engine.ParseError
	if !errors.As(err, &parseErr) {
		return false
	}

	for _, diagnostic := range parseErr.Diagnostics {
		fmt.Fprintln(w, diagnostic)
		if line, col, ok := util.ParseDiagnosticPosition(diagnostic); ok {
			fmt.Fprintln(w, util.GetContextLines(parseErr.Source, line, col))
		}
	}
	return true
}
