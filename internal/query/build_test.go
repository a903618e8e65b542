package query_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/gsearch/internal/query"
)

func Test_Build_Returns_Empty_Query_When_Spec_Is_Blank(t *testing.T) {
	t.Parallel()

	got := query.Build(query.SearchSpec{})

	assert.Equal(t, "", got.Query)
	assert.Equal(t, query.Params{}, got.Params)
	assert.Equal(t, "https://www.google.com/search?q=", got.URL)
}

func Test_Build_Renders_Each_Field_When_Set_Alone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec query.SearchSpec
		want string
	}{
		{
			name: "all words anywhere",
			spec: query.SearchSpec{AllWords: "  cat   dog "},
			want: "cat dog",
		},
		{
			name: "all words in title",
			spec: query.SearchSpec{AllWords: "cat dog", WordsLocation: query.InTitle},
			want: "intitle:cat intitle:dog",
		},
		{
			name: "all words in text",
			spec: query.SearchSpec{AllWords: "cat dog", WordsLocation: query.InText},
			want: "intext:cat intext:dog",
		},
		{
			name: "all words in url",
			spec: query.SearchSpec{AllWords: "cat", WordsLocation: query.InURL},
			want: "inurl:cat",
		},
		{
			name: "all words in links",
			spec: query.SearchSpec{AllWords: "cat dog", WordsLocation: query.InLinks},
			want: "inanchor:cat inanchor:dog",
		},
		{
			name: "exact phrase",
			spec: query.SearchSpec{ExactPhrase: " machine learning "},
			want: `"machine learning"`,
		},
		{
			name: "excluded words",
			spec: query.SearchSpec{ExcludedWords: "spam ads"},
			want: "-spam -ads",
		},
		{
			name: "or group with several alternatives",
			spec: query.SearchSpec{OrWords: "chicken | beef|tofu"},
			want: "(chicken OR beef OR tofu)",
		},
		{
			name: "or group with one alternative",
			spec: query.SearchSpec{OrWords: "|chicken| "},
			want: "chicken",
		},
		{
			name: "or group with only separators",
			spec: query.SearchSpec{OrWords: " | | "},
			want: "",
		},
		{
			name: "site with stray whitespace",
			spec: query.SearchSpec{Site: " exam ple.com "},
			want: "site:example.com",
		},
		{
			name: "site and filetype",
			spec: query.SearchSpec{Site: "example.com", FileType: "pdf"},
			want: "site:example.com filetype:pdf",
		},
		{
			name: "intitle keeps inner spaces",
			spec: query.SearchSpec{InTitle: "best books 2023"},
			want: "intitle:best books 2023",
		},
		{
			name: "inurl",
			spec: query.SearchSpec{InURL: "beginner"},
			want: "inurl:beginner",
		},
		{
			name: "range with unit",
			spec: query.SearchSpec{RangeLow: "500", RangeHigh: "1000", RangeUnit: "$"},
			want: "$500..$1000",
		},
		{
			name: "range without unit",
			spec: query.SearchSpec{RangeLow: "2000", RangeHigh: "2020"},
			want: "2000..2020",
		},
		{
			name: "range with low bound only",
			spec: query.SearchSpec{RangeLow: "500", RangeUnit: "$"},
			want: "$500",
		},
		{
			name: "range with high bound only",
			spec: query.SearchSpec{RangeHigh: "1000"},
			want: "1000",
		},
		{
			name: "unit alone is ignored",
			spec: query.SearchSpec{RangeUnit: "$"},
			want: "",
		},
		{
			name: "after then before",
			spec: query.SearchSpec{
				Before: query.Date{Year: 1945, Month: time.December, Day: 31},
				After:  query.Date{Year: 1939, Month: time.January, Day: 1},
			},
			want: "after:1939-01-01 before:1945-12-31",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, query.Build(tt.spec).Query)
		})
	}
}

func Test_Build_Orders_Tokens_When_Every_Field_Is_Set(t *testing.T) {
	t.Parallel()

	spec := query.SearchSpec{
		AllWords:      "electric car",
		WordsLocation: query.InTitle,
		ExactPhrase:   "range test",
		ExcludedWords: "used",
		OrWords:       "tesla|rivian",
		Site:          "reviews.com",
		FileType:      "pdf",
		InTitle:       "2023",
		InURL:         "review",
		RangeLow:      "20000",
		RangeHigh:     "40000",
		RangeUnit:     "$",
		After:         query.Date{Year: 2023, Month: time.January, Day: 2},
		Before:        query.Date{Year: 2023, Month: time.December, Day: 30},
	}

	want := `intitle:electric intitle:car "range test" -used (tesla OR rivian) site:reviews.com ` +
		`filetype:pdf intitle:2023 inurl:review $20000..$40000 after:2023-01-02 before:2023-12-30`

	assert.Equal(t, want, query.Build(spec).Query)
}

func Test_Build_Does_Not_Deduplicate_When_Tokens_Repeat(t *testing.T) {
	t.Parallel()

	got := query.Build(query.SearchSpec{AllWords: "go go", InTitle: "go", WordsLocation: query.InTitle})

	assert.Equal(t, "intitle:go intitle:go intitle:go", got.Query)
}

func Test_Build_Emits_Search_Type_Params_When_Not_Web(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec query.SearchSpec
		want query.Params
	}{
		{
			name: "web has no params",
			spec: query.SearchSpec{AllWords: "x"},
			want: query.Params{},
		},
		{
			name: "web ignores image filters",
			spec: query.SearchSpec{AllWords: "x", Images: query.ImageFilters{Size: query.SizeLarge}},
			want: query.Params{},
		},
		{
			name: "videos",
			spec: query.SearchSpec{AllWords: "x", SearchType: query.Videos},
			want: query.Params{{Key: "tbm", Value: "vid"}},
		},
		{
			name: "news",
			spec: query.SearchSpec{AllWords: "x", SearchType: query.News},
			want: query.Params{{Key: "tbm", Value: "nws"}},
		},
		{
			name: "images without filters",
			spec: query.SearchSpec{AllWords: "x", SearchType: query.Images},
			want: query.Params{{Key: "tbm", Value: "isch"}},
		},
		{
			name: "images large",
			spec: query.SearchSpec{
				AllWords:   "x",
				SearchType: query.Images,
				Images:     query.ImageFilters{Size: query.SizeLarge},
			},
			want: query.Params{{Key: "tbm", Value: "isch"}, {Key: "tbs", Value: "isz:l"}},
		},
		{
			name: "images with every filter",
			spec: query.SearchSpec{
				AllWords:   "x",
				SearchType: query.Images,
				Images: query.ImageFilters{
					Size:   query.SizeIcon,
					Aspect: query.AspectPanoramic,
					Color:  query.ColorGray,
					Type:   query.TypeLineArt,
					Region: query.UnitedStates,
					Rights: query.RightsModifyCommercial,
				},
			},
			want: query.Params{
				{Key: "tbm", Value: "isch"},
				{Key: "tbs", Value: "isz:i,iar:xw,ic:gray,itp:lineart,sur:fmc"},
				{Key: "cr", Value: "countryUS"},
			},
		},
		{
			name: "images with specific color",
			spec: query.SearchSpec{
				SearchType: query.Images,
				Images:     query.ImageFilters{Color: query.ColorSpecific, SpecificColor: query.Teal},
			},
			want: query.Params{{Key: "tbm", Value: "isch"}, {Key: "tbs", Value: "isc:teal"}},
		},
		{
			name: "specific color without a choice adds nothing",
			spec: query.SearchSpec{
				SearchType: query.Images,
				Images:     query.ImageFilters{Color: query.ColorSpecific},
			},
			want: query.Params{{Key: "tbm", Value: "isch"}},
		},
		{
			name: "sub color ignored unless color is specific",
			spec: query.SearchSpec{
				SearchType: query.Images,
				Images:     query.ImageFilters{Color: query.ColorFull, SpecificColor: query.Red},
			},
			want: query.Params{{Key: "tbm", Value: "isch"}, {Key: "tbs", Value: "ic:color"}},
		},
		{
			name: "region only",
			spec: query.SearchSpec{
				SearchType: query.Images,
				Images:     query.ImageFilters{Region: query.Algeria},
			},
			want: query.Params{{Key: "tbm", Value: "isch"}, {Key: "cr", Value: "countryDZ"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := query.Build(tt.spec).Params
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Build_Encodes_URL_When_Query_Has_Special_Characters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec query.SearchSpec
		want string
	}{
		{
			name: "phrase and range",
			spec: query.SearchSpec{ExactPhrase: "a b", RangeLow: "1", RangeHigh: "2", RangeUnit: "$"},
			want: "https://www.google.com/search?q=%22a+b%22+%241..%242",
		},
		{
			name: "images params appended in order",
			spec: query.SearchSpec{
				AllWords:   "mountain landscape",
				SearchType: query.Images,
				Images:     query.ImageFilters{Size: query.SizeLarge, Region: query.Japan},
			},
			want: "https://www.google.com/search?q=mountain+landscape&tbm=isch&tbs=isz:l&cr=countryJP",
		},
		{
			name: "operators",
			spec: query.SearchSpec{Site: "example.com", OrWords: "a|b"},
			want: "https://www.google.com/search?q=%28a+OR+b%29+site%3Aexample.com",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, query.Build(tt.spec).URL)
		})
	}
}

func Test_Build_Is_Deterministic_When_Called_Twice(t *testing.T) {
	t.Parallel()

	for _, ex := range query.Examples {
		spec := ex.Resolve(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))

		first := query.Build(spec)
		second := query.Build(spec)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s: results differ (-first +second):\n%s", ex.Title, diff)
		}
	}
}

func Test_Build_Gives_Same_Result_When_Spec_Round_Trips_Through_JSON(t *testing.T) {
	t.Parallel()

	spec := query.SearchSpec{
		AllWords:      "cat dog",
		WordsLocation: query.InLinks,
		ExactPhrase:   `say "hi" #1; ok`,
		OrWords:       "a|b",
		RangeLow:      "5",
		RangeUnit:     "€",
		After:         query.Date{Year: 2020, Month: time.February, Day: 29},
		SearchType:    query.Images,
		Images: query.ImageFilters{
			Color:         query.ColorSpecific,
			SpecificColor: query.Purple,
			Region:        query.Brazil,
			Rights:        query.RightsShare,
		},
	}

	data, err := json.Marshal(spec)
	require.NoError(t, err)

	var decoded query.SearchSpec
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(spec, decoded); diff != "" {
		t.Fatalf("spec changed after round trip (-want +got):\n%s", diff)
	}

	assert.Equal(t, query.Build(spec), query.Build(decoded))
}
