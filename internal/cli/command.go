package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

// AnyArgs lifts the positional argument limit of a [Command].
const AnyArgs = -1

// Command is one gsearch subcommand.
type Command struct {
	// Flags are parsed before Exec runs. Required, may be empty.
	Flags *flag.FlagSet

	// Usage follows "gsearch " in help output. Its first word is the
	// command name, e.g. "recent-open <n>".
	Usage string

	// Aliases are alternative names accepted on the command line.
	Aliases []string

	// Short is the line shown in the command list. Long, when set,
	// replaces it in "gsearch <cmd> --help".
	Short string
	Long  string

	// MaxArgs caps the positional arguments left after flag parsing.
	// The zero value accepts none; use [AnyArgs] for no limit.
	MaxArgs int

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// Matches reports whether name selects this command.
func (c *Command) Matches(name string) bool {
	return name == c.Name() || slices.Contains(c.Aliases, name)
}

// HelpLine is the command's entry in the global usage listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-26s %s", c.Usage, c.Short)
}

// PrintHelp writes "gsearch <cmd> --help" output to stdout.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: gsearch", c.Usage)

	if len(c.Aliases) > 0 {
		o.Println("Aliases:", strings.Join(c.Aliases, ", "))
	}

	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if !c.Flags.HasFlags() {
		return
	}

	var defaults strings.Builder

	c.Flags.SetOutput(&defaults)
	c.Flags.PrintDefaults()

	o.Println()
	o.Println("Flags:")
	o.Printf("%s", defaults.String())
}

// Run parses args, checks the argument count and calls Exec. Errors are
// printed here so they appear after any regular output. Returns the exit
// code.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		o.ErrPrintln("Usage: gsearch", c.Usage)

		return 1
	}

	rest := c.Flags.Args()

	if c.MaxArgs != AnyArgs && len(rest) > c.MaxArgs {
		o.ErrPrintln("error:", fmt.Errorf("%w: %s", ErrTooManyArgs, strings.Join(rest[c.MaxArgs:], " ")))

		return 1
	}

	if err := c.Exec(ctx, o, rest); err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return 0
}
