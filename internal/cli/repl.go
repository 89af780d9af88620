package cli

import (
	"context"
	"os"

	"github.com/peterh/liner"

	"github.com/bsparks/simple-script/internal/repl"
)

type ReplCmd struct {
	History string `help:"History file (default from config)." placeholder:"FILE" type:"path"`
}

// Run uses line editing when attached to a terminal and falls back to
// reading plain lines otherwise.
func (c *ReplCmd) Run(ctx context.Context, rc *runContext) error {
	history := c.History
	if history == "" {
		history = rc.config.HistoryFile
	}

	interactive := isTerminal(rc.stdin) && liner.TerminalSupported()
	session := repl.New(nil, rc.stdout, interactive && !rc.config.NoColor)

	if interactive {
		return session.Run(ctx, history)
	}
	session.Start(ctx, rc.stdin)
	return nil
}

func isTerminal(v any) bool {
	if f, ok := v.(*os.File); ok {
		fi, err := f.Stat()
		return err == nil && (fi.Mode()&os.ModeCharDevice) != 0
	}
	return false
}
