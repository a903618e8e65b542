package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/gsearch/internal/query"
)

// ExamplesCmd returns the examples command.
func ExamplesCmd(_ *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("examples", flag.ContinueOnError),
		Usage: "examples",
		Short: "List example searches",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			for i, ex := range query.Examples {
				o.Printf("%2d  %s\n", i+1, ex.Title)
			}

			return nil
		},
	}
}

// ExampleCmd returns the example command.
func ExampleCmd(a *app) *Command {
	fs := flag.NewFlagSet("example", flag.ContinueOnError)
	out := addOutputFlags(fs)

	return &Command{
		Flags:   fs,
		Usage:   "example <n>",
		MaxArgs: 1,
		Short:   "Print the URL of example n",
		Long:    "Print the URL of example n. Relative date windows end today.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			n, err := parseIndex(args)
			if err != nil {
				return err
			}

			ex, err := query.ExampleByNumber(n)
			if err != nil {
				return err
			}

			return out.print(o, query.Build(ex.Resolve(a.now())))
		},
	}
}
