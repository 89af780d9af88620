// Package cli is the command line front end: it parses flags with kong,
// merges them over the TOML configuration and runs the selected command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/bsparks/simple-script/internal/log"
	"github.com/bsparks/simple-script/internal/util"
)

const Name = "simple-script"

// Globals are accepted before or after any command.
type Globals struct {
	Config    string `help:"TOML configuration file." placeholder:"FILE" short:"c" type:"path"`
	LogLevel  string `default:"" enum:",debug,info,warn,error,none" help:"Log level." name:"log-level" placeholder:"LEVEL"`
	LogFile   string `help:"Log file path (default stderr)." name:"log-file" placeholder:"FILE" type:"path"`
	LogFormat string `default:"" enum:",json,text" help:"Log format." name:"log-format" placeholder:"FORMAT"`
	NoColor   bool   `help:"Disable colored output." name:"no-color"`

	Profile     string `default:"" enum:",${profileModes}" help:"Enable profiling." placeholder:"MODE"`
	ProfilePath string `help:"Profile output directory." name:"profile-path" placeholder:"DIR" type:"path"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Print version information and exit." short:"v"`

	Eval EvalCmd `cmd:"" default:"withargs" help:"Evaluate a script and print its result."`
	Repl ReplCmd `cmd:"" help:"Start an interactive session."`
	Ast  AstCmd  `cmd:"" help:"Print the parsed form of a script."`
}

// App holds the process facing parts of a run so tests can substitute them.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Exit is called by kong for --help and --version.
	Exit func(code int)

	Version   string
	BuildDate string
	Commit    string
}

// runContext is bound into every command's Run method.
type runContext struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	config util.Configuration
}

// exitStatus is returned by commands that completed but must end the process
// with a non-zero status.
type exitStatus int

func (s exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(s)) }

// Run parses args, runs the selected command and returns the process exit
// code. A non-nil error means the command could not run at all.
func (a *App) Run(ctx context.Context, args ...string) (int, error) {
	var cli CLI

	exit := a.Exit
	if exit == nil {
		exit = os.Exit
	}

	parser, err := kong.New(&cli,
		kong.Name(Name),
		kong.Description("Evaluate simple-script expressions."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(a.Stdout, a.Stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Vars{
			"version":      fmt.Sprintf("%s version 'v%s' %s %s", Name, a.Version, a.BuildDate, a.Commit),
			"profileModes": profileModeEnum(),
		},
	)
	if err != nil {
		return 1, err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return 1, err
	}

	config, err := cli.Globals.configuration()
	if err != nil {
		return 1, err
	}
	config.Version, config.BuildDate, config.Commit = a.Version, a.BuildDate, a.Commit

	closeLog := log.Setup(config.LogLevel, config.LogFile, config.LogFormat)
	defer closeLog()

	slog.DebugContext(ctx, "starting",
		slog.String("command", ktx.Command()),
		slog.String("version", config.Version),
	)

	defer startProfile(ctx, cli.Profile, cli.ProfilePath)()

	rc := &runContext{
		stdin:  a.Stdin,
		stdout: a.Stdout,
		stderr: a.Stderr,
		config: config,
	}

	err = ktx.Run(rc)

	var status exitStatus
	if errors.As(err, &status) {
		return int(status), nil
	}
	if err != nil {
		return 1, err
	}
	return 0, nil
}

// configuration loads the optional config file and lays the flags that were
// set on top of it.
func (g Globals) configuration() (util.Configuration, error) {
	config := util.DefaultConfiguration()
	if g.Config != "" {
		var err error
		if config, err = util.LoadConfiguration(g.Config); err != nil {
			return config, err
		}
	}

	if g.LogLevel != "" {
		config.LogLevel = g.LogLevel
	}
	if g.LogFile != "" {
		config.LogFile = g.LogFile
	}
	if g.LogFormat != "" {
		config.LogFormat = g.LogFormat
	}
	if g.NoColor {
		config.NoColor = true
	}
	return config, nil
}
