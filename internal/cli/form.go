package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/gsearch/internal/query"
)

const formPrompt = "gsearch> "

var formCommands = []string{
	"set", "unset", "show", "past", "example", "load",
	"save", "open", "clear", "help", "quit", "exit",
}

// lineReader is the part of liner the form needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// scanReader reads lines from a non-terminal stdin.
type scanReader struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (r *scanReader) Prompt(prompt string) (string, error) {
	_, _ = io.WriteString(r.out, prompt)

	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return r.sc.Text(), nil
}

func (*scanReader) AppendHistory(string) {}
func (*scanReader) Close() error         { return nil }

// form is an interactive editor for one SearchSpec.
type form struct {
	app  *app
	o    *IO
	in   lineReader
	spec query.SearchSpec
}

// FormCmd returns the form command.
func FormCmd(a *app) *Command {
	fs := flag.NewFlagSet("form", flag.ContinueOnError)
	sf := addSearchFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "form [flags]",
		Short: "Edit a search interactively",
		Long: `Edit a search field by field with a live URL preview. Search flags set
the starting values. Type 'help' at the prompt for commands.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			spec, err := sf.spec(a.now())
			if err != nil {
				return err
			}

			in, closeIn := a.lineReader()
			defer closeIn()

			f := &form{app: a, o: o, in: in, spec: spec}

			return f.run(ctx)
		},
	}
}

// lineReader uses liner for the process's own stdin and a plain scanner
// for anything else (pipes in tests).
func (a *app) lineReader() (lineReader, func()) {
	if file, ok := a.stdin.(*os.File); ok && file == os.Stdin {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		state.SetCompleter(completeForm)

		history := filepath.Join(filepath.Dir(a.cfg.RecentFileAbs), "form_history")

		if hf, err := os.Open(history); err == nil {
			_, _ = state.ReadHistory(hf)
			_ = hf.Close()
		}

		return state, func() {
			if err := os.MkdirAll(filepath.Dir(history), 0o755); err == nil {
				if hf, err := os.Create(history); err == nil {
					_, _ = state.WriteHistory(hf)
					_ = hf.Close()
				}
			}

			_ = state.Close()
		}
	}

	stdin := a.stdin
	if stdin == nil {
		stdin = strings.NewReader("")
	}

	r := &scanReader{sc: bufio.NewScanner(stdin), out: a.out}

	return r, func() {}
}

func (f *form) run(ctx context.Context) error {
	f.o.Println("gsearch form - type 'help' for commands, 'quit' to leave.")
	f.preview()

	for ctx.Err() == nil {
		line, err := f.in.Prompt(formPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				f.o.Println()

				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		f.in.AppendHistory(line)

		done, err := f.exec(line)
		if err != nil {
			f.o.Println("error:", err)

			continue
		}

		if done {
			return nil
		}
	}

	return nil
}

// exec runs one form command. done reports that the user asked to leave.
func (f *form) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	// Values keep their inner spacing.
	rest := ""
	if len(args) > 1 {
		rest = strings.TrimSpace(line[len(fields[0]):])
		rest = strings.TrimSpace(rest[len(args[0]):])
	}

	now := f.app.now()

	switch cmd {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		f.printHelp()

		return false, nil

	case "show":
		f.show()

		return false, nil

	case "set", "unset":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: %s <field> [value]", cmd)
		}

		field, ok := lookupField(args[0])
		if !ok {
			return false, fmt.Errorf("unknown field %q (fields: %s)", args[0], strings.Join(fieldNames(), ", "))
		}

		value := ""
		if cmd == "set" {
			value = rest
		}

		next := f.spec
		if err := field.value(&next).Set(value); err != nil {
			return false, err
		}

		f.spec = next

	case "past":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: past <%s>", strings.Join(query.Choices("past"), "|"))
		}

		p, err := query.ParsePreset(args[0])
		if err != nil {
			return false, err
		}

		f.spec = p.Apply(f.spec, now)

	case "example":
		n, err := parseIndex(args)
		if err != nil {
			return false, err
		}

		ex, err := query.ExampleByNumber(n)
		if err != nil {
			return false, err
		}

		f.spec = ex.Resolve(now)
		f.o.Println("Loaded example:", ex.Title)

	case "load":
		n, err := parseIndex(args)
		if err != nil {
			return false, err
		}

		entries, err := f.app.store.Load()
		if err != nil {
			return false, fmt.Errorf("cannot read recent queries: %w", err)
		}

		if n > len(entries) {
			return false, fmt.Errorf("no recent query %d (have %d)", n, len(entries))
		}

		f.spec = entries[n-1].Spec

	case "save":
		entry, err := f.app.save(f.spec)
		if err != nil {
			return false, err
		}

		f.o.Println("Saved:", entry.Label)

		return false, nil

	case "open":
		url := query.Build(f.spec).URL
		if err := f.app.launcher.Open(url); err != nil {
			return false, fmt.Errorf("could not open browser: %w", err)
		}

		f.o.Println("Opened:", url)

		return false, nil

	case "clear":
		f.spec = query.SearchSpec{}

	default:
		return false, fmt.Errorf("unknown command %q (type 'help')", cmd)
	}

	f.app.log.Debug("form changed", zap.String("command", cmd))
	f.preview()

	return false, nil
}

func (f *form) preview() {
	res := query.Build(f.spec)

	f.o.Println("query:", res.Query)
	f.o.Println("url:  ", res.URL)
}

// show prints every field that differs from its default.
func (f *form) show() {
	var zero query.SearchSpec

	shown := false

	for _, field := range searchFields {
		v := field.value(&f.spec).String()
		if v == field.value(&zero).String() {
			continue
		}

		f.o.Printf("  %-15s %s\n", field.name, v)

		shown = true
	}

	if !shown {
		f.o.Println("  (all fields empty)")
	}

	f.preview()
}

func (f *form) printHelp() {
	f.o.Println(`Commands:
  set <field> <value>   Set a field (tab completes fields and choices)
  unset <field>         Reset a field to its default
  show                  Show non-default fields and the preview
  past <window>         Restrict to the past day, week, month or year
  example <n>           Start from example n (see 'gsearch examples')
  load <n>              Start from recent query n
  save                  Add the current query to the recent list
  open                  Open the current query in the browser
  clear                 Reset every field
  quit                  Leave the form

Fields: ` + strings.Join(fieldNames(), ", "))
}

// completeForm completes command names, then field names, then choices.
func completeForm(line string) []string {
	words := strings.Fields(line)
	trailing := strings.HasSuffix(line, " ")

	var (
		prefix     string
		candidates []string
		partial    string
	)

	switch {
	case len(words) == 0 || (len(words) == 1 && !trailing):
		candidates = formCommands

		if len(words) == 1 {
			partial = words[0]
		}

	case words[0] == "set" || words[0] == "unset":
		if len(words) == 1 || (len(words) == 2 && !trailing) {
			prefix = words[0] + " "
			candidates = fieldNames()

			if len(words) == 2 {
				partial = words[1]
			}

			break
		}

		if words[0] != "set" || len(words) > 3 || (len(words) == 3 && trailing) {
			return nil
		}

		prefix = words[0] + " " + words[1] + " "
		candidates = query.Choices(words[1])

		if len(words) == 3 {
			partial = words[2]
		}

	case words[0] == "past" && (len(words) == 1 || (len(words) == 2 && !trailing)):
		prefix = "past "
		candidates = query.Choices("past")

		if len(words) == 2 {
			partial = words[1]
		}

	default:
		return nil
	}

	var out []string

	for _, c := range candidates {
		if strings.HasPrefix(c, strings.ToLower(partial)) {
			out = append(out, prefix+c)
		}
	}

	return out
}
