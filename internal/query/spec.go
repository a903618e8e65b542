// Package query turns a structured set of search criteria into a Google
// advanced-search query string and URL.
//
// [Build] is a pure function of its [SearchSpec] argument and is cheap
// enough to call after every keystroke.
package query

// SearchSpec holds every field of the advanced-search form. It is a plain
// value: copy it, compare it, serialize it. Blank fields are "not specified".
type SearchSpec struct {
	AllWords      string   `json:"all_words,omitempty"`
	WordsLocation Location `json:"terms_location"`
	ExactPhrase   string   `json:"exact_phrase,omitempty"`
	ExcludedWords string   `json:"exclude_words,omitempty"` // space-separated
	OrWords       string   `json:"or_words,omitempty"`      // pipe-separated

	Site     string `json:"site,omitempty"`
	FileType string `json:"filetype,omitempty"`
	InTitle  string `json:"intitle,omitempty"`
	InURL    string `json:"inurl,omitempty"`

	RangeLow  string `json:"range_from,omitempty"`
	RangeHigh string `json:"range_to,omitempty"`
	RangeUnit string `json:"range_unit,omitempty"`

	After  Date `json:"after"`
	Before Date `json:"before"`

	SearchType SearchType   `json:"search_type"`
	Images     ImageFilters `json:"images"`
}

// ImageFilters refine image searches. They are ignored unless the search
// type is [Images].
type ImageFilters struct {
	Size          ImageSize     `json:"image_size"`
	Aspect        AspectRatio   `json:"aspect_ratio"`
	Color         Color         `json:"color_filter"`
	SpecificColor SpecificColor `json:"specific_color"`
	Type          ImageType     `json:"image_type"`
	Region        Region        `json:"region"`
	Rights        UsageRights   `json:"usage_rights"`
}

// IsZero reports whether every field is blank or at its default.
func (s SearchSpec) IsZero() bool {
	return s == SearchSpec{}
}

// Param is one extra URL parameter.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Params keeps URL parameters in the order they are emitted.
type Params []Param

// Get returns the value of the first parameter named key.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	return "", false
}

// QueryResult is the output of [Build].
type QueryResult struct {
	// Query is the q= payload before URL encoding.
	Query string `json:"query"`

	// Params are the extra parameters (tbm, tbs, cr) in URL order.
	Params Params `json:"params"`

	// URL is the browser-ready search URL, shown as the preview.
	URL string `json:"url"`
}
