package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/gsearch/internal/query"
	"github.com/calvinalkan/gsearch/internal/recent"
)

const searchLong = `Words given as arguments are added to --all. With --example <n> the
example is the starting point and any other flag overrides its field.`

// outputFlags select how a built query is printed.
type outputFlags struct {
	query *bool
	json  *bool
}

func addOutputFlags(fs *flag.FlagSet) outputFlags {
	return outputFlags{
		query: fs.Bool("query", false, "print only the query string"),
		json:  fs.Bool("json", false, "print query, params and URL as JSON"),
	}
}

func (f outputFlags) print(o *IO, res query.QueryResult) error {
	switch {
	case *f.json:
		return printJSON(o, res)
	case *f.query:
		o.Println(res.Query)
	default:
		o.Println(res.URL)
	}

	return nil
}

func printJSON(o *IO, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	o.Println(string(data))

	return nil
}

func withWords(spec query.SearchSpec, args []string) query.SearchSpec {
	if len(args) > 0 {
		spec.AllWords = strings.TrimSpace(spec.AllWords + " " + strings.Join(args, " "))
	}

	return spec
}

// BuildCmd returns the build command.
func BuildCmd(a *app) *Command {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	sf := addSearchFlags(fs)
	out := addOutputFlags(fs)

	return &Command{
		Flags:   fs,
		Usage:   "build [flags] [words...]",
		MaxArgs: AnyArgs,
		Short:   "Print the search URL",
		Long:    "Build a Google advanced-search query and print its URL.\n\n" + searchLong,
		Exec: func(_ context.Context, o *IO, args []string) error {
			spec, err := sf.spec(a.now())
			if err != nil {
				return err
			}

			return out.print(o, query.Build(withWords(spec, args)))
		},
	}
}

// OpenCmd returns the open command.
func OpenCmd(a *app) *Command {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	sf := addSearchFlags(fs)
	save := fs.Bool("save", false, "also add the query to the recent list")

	return &Command{
		Flags:   fs,
		Usage:   "open [flags] [words...]",
		MaxArgs: AnyArgs,
		Short:   "Open the search in the browser",
		Long:    "Build a query, open it in the browser and print its URL.\n\n" + searchLong,
		Exec: func(_ context.Context, o *IO, args []string) error {
			spec, err := sf.spec(a.now())
			if err != nil {
				return err
			}

			spec = withWords(spec, args)

			if *save {
				if _, err := a.save(spec); err != nil {
					o.Warn("query not saved: "+err.Error(), "fix the recent file or run 'gsearch save' later")
				}
			}

			url := query.Build(spec).URL
			a.open(o, url)
			o.Println(url)

			return nil
		},
	}
}

// SaveCmd returns the save command.
func SaveCmd(a *app) *Command {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	sf := addSearchFlags(fs)

	return &Command{
		Flags:   fs,
		Usage:   "save [flags] [words...]",
		MaxArgs: AnyArgs,
		Short:   "Add the query to the recent list",
		Long:    "Build a query, add it to the recent list and print its label.\n\n" + searchLong,
		Exec: func(_ context.Context, o *IO, args []string) error {
			spec, err := sf.spec(a.now())
			if err != nil {
				return err
			}

			entry, err := a.save(withWords(spec, args))
			if err != nil {
				return err
			}

			o.Println(entry.Label)

			return nil
		},
	}
}

func (a *app) save(spec query.SearchSpec) (recent.Entry, error) {
	entry := recent.NewEntry(spec, a.now())

	if err := a.store.Append(entry); err != nil {
		return recent.Entry{}, err
	}

	a.log.Debug("saved recent entry", zap.String("id", entry.ID), zap.String("label", entry.Label))

	return entry, nil
}

// open launches the browser. Failing to do so is a warning: the URL is
// still printed.
func (a *app) open(o *IO, url string) {
	if err := a.launcher.Open(url); err != nil {
		a.log.Debug("browser launch failed", zap.Error(err))
		o.Warn("could not open browser: "+err.Error(), "open the printed URL manually")
	}
}

// loadRecent returns the saved entries. An unreadable file is reported as
// a warning and yields no entries.
func (a *app) loadRecent(o *IO) []recent.Entry {
	entries, err := a.store.Load()
	if err != nil {
		action := "check the file permissions"
		if errors.Is(err, recent.ErrCorrupt) {
			action = "the file will be rewritten on the next save"
		}

		o.Warn(fmt.Sprintf("cannot read recent queries from %s: %v", a.store.Path(), err), action)

		return nil
	}

	return entries
}
