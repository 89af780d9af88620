package cli

import (
	"context"
	"fmt"

	"github.com/bsparks/simple-script/internal/parser"
)

// AstCmd prints the canonical source rendering of a program, or its tree as
// indented text or JSON.
type AstCmd struct {
	Input `embed:""`

	JSON bool `help:"Print the tree as JSON." name:"json" xor:"format"`
	Tree bool `help:"Print the tree as indented text." xor:"format"`
}

func (c *AstCmd) Run(ctx context.Context, rc *runContext) error {
	program, err := c.compile(ctx, rc.stdin)
	if err != nil {
		if reportParseError(rc.stderr, err) {
			return exitStatus(1)
		}
		return err
	}

	switch {
	case c.JSON:
		out, err := parser.RenderASTAsJSON(program.AST)
		if err != nil {
			return err
		}
		fmt.Fprint(rc.stdout, out)
	case c.Tree:
		fmt.Fprintln(rc.stdout, parser.RenderASTAsText(program.AST, 0))
	default:
		fmt.Fprintln(rc.stdout, program.AST.String())
	}
	return nil
}
