package query

import (
	"fmt"
	"time"
)

// Example is a named starting point for a search.
type Example struct {
	Title string
	Spec  SearchSpec

	// Since, when set, is applied at selection time so the window is
	// relative to the day the example is used.
	Since Preset
}

// Resolve returns the example's spec with its date window applied.
func (e Example) Resolve(now time.Time) SearchSpec {
	return e.Since.Apply(e.Spec, now)
}

// ExampleByNumber returns the n-th example, counting from 1.
func ExampleByNumber(n int) (Example, error) {
	if n < 1 || n > len(Examples) {
		return Example{}, fmt.Errorf("%w: %d (have 1-%d)", ErrExampleNotFound, n, len(Examples))
	}

	return Examples[n-1], nil
}

// Examples is the fixed menu of sample searches.
var Examples = []Example{
	{
		Title: "Find PDFs on example.com",
		Spec:  SearchSpec{AllWords: "annual report", Site: "example.com", FileType: "pdf"},
		Since: PastYear,
	},
	{
		Title: "Exact phrase + exclude",
		Spec:  SearchSpec{ExactPhrase: "system failure analysis", ExcludedWords: "draft sample"},
	},
	{
		Title: "Price range for laptops",
		Spec:  SearchSpec{AllWords: "laptop", RangeLow: "500", RangeHigh: "1000", RangeUnit: "$"},
	},
	{
		Title: "Recipes with ingredients OR",
		Spec:  SearchSpec{AllWords: "recipe", OrWords: "chicken|beef|tofu", ExcludedWords: "fried"},
	},
	{
		Title: "News articles in last month",
		Spec:  SearchSpec{AllWords: "climate change", Site: "news.com"},
		Since: PastMonth,
	},
	{
		Title: "Tutorials in URL",
		Spec:  SearchSpec{AllWords: "python tutorial", InURL: "beginner"},
	},
	{
		Title: "Files excluding certain types",
		Spec:  SearchSpec{AllWords: "project management", FileType: "pdf", ExcludedWords: "pptx xlsx"},
	},
	{
		Title: "Books in title",
		Spec:  SearchSpec{InTitle: "best books 2023"},
	},
	{
		Title: "Events in specific year range",
		Spec:  SearchSpec{AllWords: "olympic games", RangeLow: "2000", RangeHigh: "2020"},
	},
	{
		Title: "Products in price range with unit",
		Spec:  SearchSpec{AllWords: "smartphone", RangeLow: "200", RangeHigh: "500", RangeUnit: "€"},
	},
	{
		Title: "Research papers on site",
		Spec:  SearchSpec{AllWords: "machine learning", Site: "arxiv.org", FileType: "pdf"},
	},
	{
		Title: "Quotes exact phrase",
		Spec:  SearchSpec{ExactPhrase: "to be or not to be", AllWords: "shakespeare"},
	},
	{
		Title: "Exclude common sites",
		Spec:  SearchSpec{AllWords: "diy home repair", ExcludedWords: "youtube pinterest"},
	},
	{
		Title: "Images filetype",
		Spec:  SearchSpec{AllWords: "mountain landscape", FileType: "jpg", SearchType: Images},
	},
	{
		Title: "Videos in URL",
		Spec:  SearchSpec{AllWords: "cooking tutorial", InURL: "video", SearchType: Videos},
	},
	{
		Title: "All words in text",
		Spec:  SearchSpec{AllWords: "quantum computing basics", WordsLocation: InText},
	},
	{
		Title: "Links to page with anchor",
		Spec:  SearchSpec{AllWords: "recommended reading", WordsLocation: InLinks},
	},
	{
		Title: "Date range for historical events",
		Spec: SearchSpec{
			AllWords: "world war ii",
			After:    Date{Year: 1939, Month: time.January, Day: 1},
			Before:   Date{Year: 1945, Month: time.December, Day: 31},
		},
	},
	{
		Title: "Number range without unit",
		Spec:  SearchSpec{AllWords: "population statistics", RangeLow: "1000000", RangeHigh: "10000000"},
	},
	{
		Title: "Combined operators",
		Spec: SearchSpec{
			AllWords:      "electric car",
			OrWords:       "tesla|rivian|nissan",
			ExcludedWords: "used",
			Site:          "reviews.com",
			InTitle:       "2023",
		},
	},
}
