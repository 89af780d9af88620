package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bsparks/simple-script/internal/bindings"
	"github.com/bsparks/simple-script/internal/object"
)

// EvalCmd evaluates one program and prints the Inspect form of its result.
// Parse diagnostics end the run with status 1, an error result with 2.
type EvalCmd struct {
	Input `embed:""`

	Bindings []string `help:"YAML file of bindings, may be repeated." placeholder:"FILE" short:"b" type:"path"`
	DBDriver string   `default:"" enum:",sqlite3,sqlite,mysql,postgres,postgresql" help:"Database driver for SQL bindings." name:"db-driver" placeholder:"DRIVER"`
	DBDSN    string   `help:"Database connection string." name:"db-dsn" placeholder:"DSN"`
	DBQuery  string   `help:"Two column name/value query." name:"db-query" placeholder:"QUERY"`
}

func (c *EvalCmd) Run(ctx context.Context, rc *runContext) error {
	program, err := c.compile(ctx, rc.stdin)
	if err != nil {
		if reportParseError(rc.stderr, err) {
			return exitStatus(1)
		}
		return err
	}

	env := object.NewEnvironment()
	if err := bindings.LoadInto(ctx, env, c.sources(rc)...); err != nil {
		return fmt.Errorf("load bindings: %w", err)
	}

	result := program.Eval(env)
	slog.DebugContext(ctx, "evaluated",
		slog.String("type", string(result.Type())),
		slog.Uint64("source_hash", program.Hash),
	)

	if errObj, ok := result.(*object.Error); ok {
		fmt.Fprintln(rc.stderr, errObj.Inspect())
		return exitStatus(2)
	}

	fmt.Fprintln(rc.stdout, result.Inspect())
	return nil
}

// sources lists configured binding files first, then those given on the
// command line, then the database. Later sources win on name clashes.
func (c *EvalCmd) sources(rc *runContext) []bindings.Source {
	var sources []bindings.Source

	for _, path := range append(append([]string{}, rc.config.Bindings...), c.Bindings...) {
		sources = append(sources, bindings.YAMLFile{Path: path})
	}

	db := rc.config.Database
	if c.DBDriver != "" {
		db.Driver = c.DBDriver
	}
	if c.DBDSN != "" {
		db.DSN = c.DBDSN
	}
	if c.DBQuery != "" {
		db.Query = c.DBQuery
	}
	if db.Driver != "" {
		sources = append(sources, bindings.SQL{Driver: db.Driver, DSN: db.DSN, Query: db.Query})
	}

	return sources
}
