package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calvinalkan/gsearch/internal/browser"
	"github.com/calvinalkan/gsearch/internal/config"
	"github.com/calvinalkan/gsearch/internal/recent"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// app carries what every command needs.
type app struct {
	cfg      config.Config
	store    *recent.Store
	launcher browser.Launcher
	log      *zap.Logger
	now      func() time.Time
	stdin    io.Reader
	out      io.Writer
}

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	return run(stdin, out, errOut, args, env, sigCh, time.Now)
}

func run(
	stdin io.Reader,
	out, errOut io.Writer,
	args []string,
	env map[string]string,
	sigCh <-chan os.Signal,
	now func() time.Time,
) int {
	if len(args) < minArgs {
		printUsage(out, nil)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, nil)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:    flags.workDir,
		ConfigPath:         flags.configPath,
		RecentFileOverride: flags.recentFile,
		Env:                env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	log := newLogger(flags.debug, errOut)
	defer func() { _ = log.Sync() }()

	log.Debug("config loaded",
		zap.String("cwd", cfg.EffectiveCwd),
		zap.String("recent_file", cfg.RecentFileAbs),
		zap.String("global", cfg.Sources.Global),
		zap.String("project", cfg.Sources.Project),
	)

	a := &app{
		cfg: cfg,
		store: recent.New(cfg.RecentFileAbs, recent.Options{
			Limit:  cfg.MaxRecent,
			Logger: log.Named("recent"),
		}),
		launcher: &browser.Exec{
			Command: cfg.Browser,
			Env:     env,
			Logger:  log.Named("browser"),
		},
		log:   log,
		now:   now,
		stdin: stdin,
		out:   out,
	}

	commands := allCommands(a)

	if len(flags.remaining) == 0 || flags.remaining[0] == "-h" || flags.remaining[0] == helpFlag {
		printUsage(out, commands)

		return 0
	}

	name := flags.remaining[0]

	var cmd *Command

	for _, c := range commands {
		if c.Matches(name) {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", ErrUnknownCommand, name))
		printUsage(errOut, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				log.Debug("interrupted")
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	o := NewIO(out, errOut)

	code := cmd.Run(ctx, o, flags.remaining[1:])

	// Warnings are printed even when the command failed.
	if o.Finish() != 0 {
		return 1
	}

	return code
}

func allCommands(a *app) []*Command {
	return []*Command{
		BuildCmd(a),
		OpenCmd(a),
		SaveCmd(a),
		RecentCmd(a),
		RecentOpenCmd(a),
		RecentShowCmd(a),
		RemoveCmd(a),
		ClearRecentCmd(a),
		ExamplesCmd(a),
		ExampleCmd(a),
		FormCmd(a),
		PrintConfigCmd(&a.cfg),
	}
}

// newLogger returns a console logger on w when debug is set, a no-op
// logger otherwise.
func newLogger(debug bool, w io.Writer) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)

	return zap.New(core)
}

type globalFlags struct {
	workDir    string
	configPath string
	recentFile string
	debug      bool
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// value-taking flags: -C/--cwd, -c/--config, --recent-file
	for _, f := range []struct {
		short, long string
		dst         *string
	}{
		{"-C", "--cwd", &flags.workDir},
		{"-c", "--config", &flags.configPath},
		{"", "--recent-file", &flags.recentFile},
	} {
		if arg == f.long || (f.short != "" && arg == f.short) {
			if idx+1 >= len(args) {
				return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
			}

			*f.dst = args[idx+1]

			return consumedTwo, nil
		}

		if after, ok := strings.CutPrefix(arg, f.long+"="); ok {
			*f.dst = after

			return consumedOne, nil
		}
	}

	// -C<dir> combined form
	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if arg == "--debug" {
		flags.debug = true

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, `gsearch - build Google advanced-search queries

Usage: gsearch [options] <command> [args]

Options:
  -C, --cwd <dir>          Run as if started in <dir>
  -c, --config <file>      Use specified config file
  --recent-file <path>     Use this recent-queries file
  --debug                  Log diagnostics to stderr

Commands:`)

	if commands == nil {
		commands = allCommands(&app{})
	}

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}
}
