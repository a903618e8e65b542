package cli

import (
	"context"
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/gsearch/internal/query"
	"github.com/calvinalkan/gsearch/internal/recent"
)

// parseIndex parses a 1-based entry number from the only argument.
func parseIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrIndexRequired
	}

	if len(args) > 1 {
		return 0, fmt.Errorf("%w: %v", ErrTooManyArgs, args[1:])
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, args[0])
	}

	return n, nil
}

// entryAt returns recent entry n (1-based).
func (a *app) entryAt(o *IO, args []string) (recent.Entry, error) {
	n, err := parseIndex(args)
	if err != nil {
		return recent.Entry{}, err
	}

	entries := a.loadRecent(o)
	if n > len(entries) {
		return recent.Entry{}, fmt.Errorf("%w: %d (have %d)", recent.ErrIndexOutOfRange, n, len(entries))
	}

	return entries[n-1], nil
}

// RecentCmd returns the recent command.
func RecentCmd(a *app) *Command {
	fs := flag.NewFlagSet("recent", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print entries as JSON")

	return &Command{
		Flags:   fs,
		Usage:   "recent [--json]",
		Aliases: []string{"ls"},
		Short:   "List recent queries",
		Long:    "List saved queries, most recent first. Numbers are used by recent-open, recent-show and rm.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			entries := a.loadRecent(o)

			if *asJSON {
				if entries == nil {
					entries = []recent.Entry{}
				}

				return printJSON(o, entries)
			}

			for i, e := range entries {
				o.Printf("%2d  %s\n", i+1, e.Label)
			}

			return nil
		},
	}
}

// RecentOpenCmd returns the recent-open command.
func RecentOpenCmd(a *app) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("recent-open", flag.ContinueOnError),
		Usage:   "recent-open <n>",
		MaxArgs: 1,
		Short:   "Open recent query n in the browser",
		Exec: func(_ context.Context, o *IO, args []string) error {
			entry, err := a.entryAt(o, args)
			if err != nil {
				return err
			}

			url := query.Build(entry.Spec).URL
			a.open(o, url)
			o.Println(url)

			return nil
		},
	}
}

// RecentShowCmd returns the recent-show command.
func RecentShowCmd(a *app) *Command {
	fs := flag.NewFlagSet("recent-show", flag.ContinueOnError)
	out := addOutputFlags(fs)

	return &Command{
		Flags:   fs,
		Usage:   "recent-show <n>",
		MaxArgs: 1,
		Short:   "Print the URL of recent query n",
		Exec: func(_ context.Context, o *IO, args []string) error {
			entry, err := a.entryAt(o, args)
			if err != nil {
				return err
			}

			return out.print(o, query.Build(entry.Spec))
		},
	}
}

// RemoveCmd returns the rm command.
func RemoveCmd(a *app) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage:   "rm <n>",
		Aliases: []string{"remove"},
		MaxArgs: 1,
		Short:   "Remove recent query n",
		Exec: func(_ context.Context, o *IO, args []string) error {
			n, err := parseIndex(args)
			if err != nil {
				return err
			}

			entry, err := a.store.Remove(n - 1)
			if err != nil {
				return err
			}

			o.Println("Removed", entry.Label)

			return nil
		},
	}
}

// ClearRecentCmd returns the clear-recent command.
func ClearRecentCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("clear-recent", flag.ContinueOnError),
		Usage: "clear-recent",
		Short: "Remove all recent queries",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}

			o.Println("Cleared recent queries")

			return nil
		},
	}
}
