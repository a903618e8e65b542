package query

import (
	"net/url"
	"strings"
)

// BaseURL is the search endpoint every result URL starts with.
const BaseURL = "https://www.google.com/search"

// Build assembles the query string, extra parameters and URL for spec.
// It never fails: blank fields are skipped and anything else is passed
// through, URL-encoded.
func Build(spec SearchSpec) QueryResult {
	tokens := make([]string, 0, 16)

	tokens = append(tokens, wordTokens(spec.AllWords, spec.WordsLocation)...)

	if phrase := strings.TrimSpace(spec.ExactPhrase); phrase != "" {
		tokens = append(tokens, `"`+phrase+`"`)
	}

	for _, w := range strings.Fields(spec.ExcludedWords) {
		tokens = append(tokens, "-"+w)
	}

	if group := orGroup(spec.OrWords); group != "" {
		tokens = append(tokens, group)
	}

	// A site never contains whitespace.
	if site := strings.Join(strings.Fields(spec.Site), ""); site != "" {
		tokens = append(tokens, "site:"+site)
	}

	tokens = appendOperator(tokens, "filetype:", spec.FileType)
	tokens = appendOperator(tokens, "intitle:", spec.InTitle)
	tokens = appendOperator(tokens, "inurl:", spec.InURL)

	if r := numberRange(spec.RangeLow, spec.RangeHigh, spec.RangeUnit); r != "" {
		tokens = append(tokens, r)
	}

	if !spec.After.IsZero() {
		tokens = append(tokens, "after:"+spec.After.String())
	}

	if !spec.Before.IsZero() {
		tokens = append(tokens, "before:"+spec.Before.String())
	}

	q := strings.Join(tokens, " ")
	params := searchParams(spec)

	return QueryResult{
		Query:  q,
		Params: params,
		URL:    searchURL(q, params),
	}
}

func wordTokens(words string, loc Location) []string {
	fields := strings.Fields(words)

	prefix := locations.code(uint8(loc))
	if prefix == "" {
		return fields
	}

	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = prefix + f
	}

	return out
}

func orGroup(s string) string {
	var alts []string

	for _, alt := range strings.Split(s, "|") {
		if alt = strings.TrimSpace(alt); alt != "" {
			alts = append(alts, alt)
		}
	}

	switch len(alts) {
	case 0:
		return ""
	case 1:
		return alts[0]
	default:
		return "(" + strings.Join(alts, " OR ") + ")"
	}
}

func appendOperator(tokens []string, op, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return tokens
	}

	return append(tokens, op+value)
}

// numberRange renders low..high with the unit in front of each bound
// ($500..$1000). A single bound is rendered alone.
func numberRange(low, high, unit string) string {
	low = strings.TrimSpace(low)
	high = strings.TrimSpace(high)
	unit = strings.TrimSpace(unit)

	switch {
	case low != "" && high != "":
		return unit + low + ".." + unit + high
	case low != "":
		return unit + low
	case high != "":
		return unit + high
	default:
		return ""
	}
}

func searchParams(spec SearchSpec) Params {
	tbm := searchTypes.code(uint8(spec.SearchType))
	if tbm == "" {
		return Params{}
	}

	params := Params{{Key: "tbm", Value: tbm}}

	if spec.SearchType != Images {
		return params
	}

	if tbs := spec.Images.tbs(); tbs != "" {
		params = append(params, Param{Key: "tbs", Value: tbs})
	}

	if cr := regions.code(uint8(spec.Images.Region)); cr != "" {
		params = append(params, Param{Key: "cr", Value: cr})
	}

	return params
}

// tbs joins the refinement codes of every active filter.
func (f ImageFilters) tbs() string {
	codes := make([]string, 0, 5)

	add := func(code string) {
		if code != "" {
			codes = append(codes, code)
		}
	}

	add(imageSizes.code(uint8(f.Size)))
	add(aspects.code(uint8(f.Aspect)))

	if f.Color == ColorSpecific {
		add(specificColors.code(uint8(f.SpecificColor)))
	} else {
		add(colors.code(uint8(f.Color)))
	}

	add(imageTypes.code(uint8(f.Type)))
	add(usageRights.code(uint8(f.Rights)))

	return strings.Join(codes, ",")
}

func searchURL(q string, params Params) string {
	var b strings.Builder

	b.WriteString(BaseURL)
	b.WriteString("?q=")
	b.WriteString(url.QueryEscape(q))

	for _, p := range params {
		b.WriteString("&")
		b.WriteString(p.Key)
		b.WriteString("=")
		b.WriteString(p.Value)
	}

	return b.String()
}
