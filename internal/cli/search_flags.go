package cli

import (
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/gsearch/internal/query"
)

// textField exposes a string field as a flag value.
type textField struct{ p *string }

func (f textField) String() string {
	if f.p == nil {
		return ""
	}

	return *f.p
}

func (f textField) Set(v string) error {
	*f.p = v

	return nil
}

func (textField) Type() string { return "string" }

// searchField is one form field settable from flags and from the
// interactive form.
type searchField struct {
	name  string
	usage string
	value func(*query.SearchSpec) flag.Value
}

func choiceUsage(desc, kind string) string {
	return desc + " (" + strings.Join(query.Choices(kind), "|") + ")"
}

var searchFields = []searchField{
	{"all", "all of these words", func(s *query.SearchSpec) flag.Value { return textField{&s.AllWords} }},
	{"where", choiceUsage("where the words must appear", "where"), func(s *query.SearchSpec) flag.Value { return &s.WordsLocation }},
	{"exact", "this exact phrase", func(s *query.SearchSpec) flag.Value { return textField{&s.ExactPhrase} }},
	{"exclude", "none of these words (space-separated)", func(s *query.SearchSpec) flag.Value { return textField{&s.ExcludedWords} }},
	{"or", "any of these words (separated by |)", func(s *query.SearchSpec) flag.Value { return textField{&s.OrWords} }},
	{"site", "site or domain", func(s *query.SearchSpec) flag.Value { return textField{&s.Site} }},
	{"filetype", "file type, e.g. pdf", func(s *query.SearchSpec) flag.Value { return textField{&s.FileType} }},
	{"intitle", "word that must be in the title", func(s *query.SearchSpec) flag.Value { return textField{&s.InTitle} }},
	{"inurl", "word that must be in the URL", func(s *query.SearchSpec) flag.Value { return textField{&s.InURL} }},
	{"from", "number range start", func(s *query.SearchSpec) flag.Value { return textField{&s.RangeLow} }},
	{"to", "number range end", func(s *query.SearchSpec) flag.Value { return textField{&s.RangeHigh} }},
	{"unit", "unit put before each range bound, e.g. $", func(s *query.SearchSpec) flag.Value { return textField{&s.RangeUnit} }},
	{"after", "only results after this day (YYYY-MM-DD)", func(s *query.SearchSpec) flag.Value { return &s.After }},
	{"before", "only results before this day (YYYY-MM-DD)", func(s *query.SearchSpec) flag.Value { return &s.Before }},
	{"type", choiceUsage("search type", "type"), func(s *query.SearchSpec) flag.Value { return &s.SearchType }},
	{"size", choiceUsage("image size", "size"), func(s *query.SearchSpec) flag.Value { return &s.Images.Size }},
	{"aspect", choiceUsage("image aspect ratio", "aspect"), func(s *query.SearchSpec) flag.Value { return &s.Images.Aspect }},
	{"color", choiceUsage("image color", "color"), func(s *query.SearchSpec) flag.Value { return &s.Images.Color }},
	{"specific-color", choiceUsage("color used with --color specific", "specific-color"), func(s *query.SearchSpec) flag.Value { return &s.Images.SpecificColor }},
	{"image-type", choiceUsage("image type", "image-type"), func(s *query.SearchSpec) flag.Value { return &s.Images.Type }},
	{"region", choiceUsage("image region", "region"), func(s *query.SearchSpec) flag.Value { return &s.Images.Region }},
	{"rights", choiceUsage("image usage rights", "rights"), func(s *query.SearchSpec) flag.Value { return &s.Images.Rights }},
}

func lookupField(name string) (searchField, bool) {
	name = strings.TrimPrefix(name, "--")

	for _, f := range searchFields {
		if f.name == name {
			return f, true
		}
	}

	return searchField{}, false
}

func fieldNames() []string {
	names := make([]string, len(searchFields))
	for i, f := range searchFields {
		names[i] = f.name
	}

	return names
}

// searchFlags binds the search fields to a flag set. Call spec after the
// flags are parsed.
type searchFlags struct {
	fs      *flag.FlagSet
	parsed  query.SearchSpec
	past    query.Preset
	example int
}

func addSearchFlags(fs *flag.FlagSet) *searchFlags {
	sf := &searchFlags{fs: fs}

	for _, f := range searchFields {
		fs.Var(f.value(&sf.parsed), f.name, f.usage)
	}

	fs.Var(&sf.past, "past", choiceUsage("only results from the past day, week, month or year", "past"))
	fs.IntVar(&sf.example, "example", 0, "start from example `n` (see 'gsearch examples')")

	return sf
}

// spec returns the search described by the flags. With --example the
// example is the starting point and explicitly set flags override its
// fields. --past wins over --after and --before.
func (sf *searchFlags) spec(now time.Time) (query.SearchSpec, error) {
	spec := sf.parsed

	if sf.fs.Changed("example") {
		ex, err := query.ExampleByNumber(sf.example)
		if err != nil {
			return query.SearchSpec{}, err
		}

		spec = ex.Resolve(now)

		var setErr error

		sf.fs.Visit(func(fl *flag.Flag) {
			f, ok := lookupField(fl.Name)
			if !ok || setErr != nil {
				return
			}

			setErr = f.value(&spec).Set(fl.Value.String())
		})

		if setErr != nil {
			return query.SearchSpec{}, setErr
		}
	}

	return sf.past.Apply(spec, now), nil
}
