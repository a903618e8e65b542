package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/gsearch/internal/cli"
	"github.com/calvinalkan/gsearch/internal/query"
)

// createMockBrowser creates a script that records its arguments.
// Returns the script path and the file it writes to.
func createMockBrowser(t *testing.T) (string, string) {
	t.Helper()

	mockDir := t.TempDir()
	mockBrowser := filepath.Join(mockDir, "mock-browser")
	invokedFile := filepath.Join(mockDir, "invoked.txt")

	script := `#!/bin/sh
echo "$@" > "` + invokedFile + `.tmp"
mv "` + invokedFile + `.tmp" "` + invokedFile + `"
exit 0
`

	writeErr := os.WriteFile(mockBrowser, []byte(script), 0o700)
	if writeErr != nil {
		t.Fatalf("failed to create mock browser: %v", writeErr)
	}

	return mockBrowser, invokedFile
}

func waitForFile(t *testing.T, path string) string {
	t.Helper()

	var content string

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}

		content = strings.TrimSpace(string(data))

		return true
	}, 5*time.Second, 10*time.Millisecond)

	return content
}

func Test_Build_Prints_URL_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		args []string
		want string
	}{
		{
			name: "words as arguments",
			args: []string{"build", "golang", "tips"},
			want: "https://www.google.com/search?q=golang+tips",
		},
		{
			name: "image search with filters",
			args: []string{"build", "--exact", "machine learning", "--site", "example.com", "--type", "images", "--size", "large"},
			want: "https://www.google.com/search?q=%22machine+learning%22+site%3Aexample.com&tbm=isch&tbs=isz:l",
		},
		{
			name: "specific color and region",
			args: []string{"build", "cats", "--type=images", "--color=specific", "--specific-color=red", "--region=de"},
			want: "https://www.google.com/search?q=cats&tbm=isch&tbs=isc:red&cr=countryDE",
		},
		{
			name: "image filters ignored for web",
			args: []string{"build", "cats", "--size", "icon"},
			want: "https://www.google.com/search?q=cats",
		},
		{
			name: "nothing set",
			args: []string{"build"},
			want: "https://www.google.com/search?q=",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			assert.Equal(t, tt.want, c.MustRun(tt.args...))
		})
	}
}

func Test_Build_Query_Flag_Prints_Query_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		args []string
		want string
	}{
		{
			name: "location prefixes every word",
			args: []string{"golang", "tips", "--where", "title"},
			want: "intitle:golang intitle:tips",
		},
		{
			name: "arguments extend --all",
			args: []string{"--all", "go", "generics"},
			want: "go generics",
		},
		{
			name: "every text field",
			args: []string{
				"--all", "a b", "--exact", "c d", "--exclude", "e f", "--or", "g|h",
				"--site", "s.com", "--filetype", "pdf", "--intitle", "t", "--inurl", "u",
				"--from", "1", "--to", "9", "--unit", "$",
				"--after", "2020-01-01", "--before", "2021-01-01",
			},
			want: `a b "c d" -e -f (g OR h) site:s.com filetype:pdf intitle:t inurl:u $1..$9 after:2020-01-01 before:2021-01-01`,
		},
		{
			name: "past window ends today",
			args: []string{"news", "--past", "week"},
			want: "news after:2024-03-08",
		},
		{
			name: "past wins over explicit dates",
			args: []string{"news", "--before", "2020-01-01", "--past", "year"},
			want: "news after:2023-03-15",
		},
		{
			name: "example as starting point",
			args: []string{"--example", "3"},
			want: "laptop $500..$1000",
		},
		{
			name: "flags override example fields",
			args: []string{"--example", "3", "--unit", "€", "--all", "tablet"},
			want: "tablet €500..€1000",
		},
		{
			name: "example with relative window",
			args: []string{"--example", "1"},
			want: "annual report site:example.com filetype:pdf after:2023-03-15",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			args := append([]string{"build", "--query"}, tt.args...)
			assert.Equal(t, tt.want, c.MustRun(args...))
		})
	}
}

func Test_Build_JSON_Flag_Prints_Result_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("build", "--json", "cats", "--type", "images", "--aspect", "wide")

	var got query.QueryResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))

	want := query.Build(query.SearchSpec{
		AllWords:   "cats",
		SearchType: query.Images,
		Images:     query.ImageFilters{Aspect: query.AspectWide},
	})
	assert.Equal(t, want, got)
}

func Test_Build_JSON_Flag_Prints_Empty_Params_When_Web_Search(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("build", "--json", "golang")

	assert.Contains(t, stdout, `"params": []`)
	assert.NotContains(t, stdout, "null")
}

func Test_Build_Rejects_Bad_Values_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{"unknown type", []string{"build", "--type", "maps"}, "unknown value"},
		{"unknown where", []string{"build", "--where", "footer"}, "unknown value"},
		{"bad date", []string{"build", "--after", "2024-13-01"}, "invalid date"},
		{"bad past", []string{"build", "--past", "decade"}, "unknown value"},
		{"example out of range", []string{"build", "--example", "21"}, "example not found"},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			_, stderr, exitCode := c.Run(tt.args...)

			if got, want := exitCode, 1; got != want {
				t.Errorf("exitCode=%d, want=%d", got, want)
			}

			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
}

func Test_Open_Launches_Browser_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	mockBrowser, invokedFile := createMockBrowser(t)
	c.Env["BROWSER"] = mockBrowser

	stdout := c.MustRun("open", "golang", "--site", "go.dev")

	want := "https://www.google.com/search?q=golang+site%3Ago.dev"
	assert.Equal(t, want, stdout)
	assert.Equal(t, want, waitForFile(t, invokedFile))
}

func Test_Open_Config_Browser_Used_Over_BROWSER_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	mockBrowser, invokedFile := createMockBrowser(t)
	c.WriteFile(".gsearch.json", `{"browser": "`+mockBrowser+`"}`)
	c.Env["BROWSER"] = "/should/not/use/this"

	c.MustRun("open", "cats")

	assert.Equal(t, "https://www.google.com/search?q=cats", waitForFile(t, invokedFile))
}

func Test_Open_Warns_When_Browser_Cannot_Start(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	broken := filepath.Join(t.TempDir(), "broken-browser")
	if err := os.WriteFile(broken, []byte("#!/nonexistent/interpreter\n"), 0o700); err != nil {
		t.Fatal(err)
	}

	c.WriteFile(".gsearch.json", `{"browser": "`+broken+`"}`)

	stdout, stderr, exitCode := c.Run("open", "cats")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	assert.Equal(t, "https://www.google.com/search?q=cats\n", stdout, "URL is printed even when the browser fails")
	assert.Contains(t, stderr, "warning: could not open browser")
}

func Test_Open_Save_Flag_Records_Query_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("open", "--save", "golang", "--where", "text")

	assert.Equal(t, "1  intext:golang", c.MustRun("recent"))
}

func Test_Save_Prints_Label_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	assert.Equal(t, `"exact words" -spam`, c.MustRun("save", "--exact", "exact words", "--exclude", "spam"))

	_, err := os.Stat(c.RecentFile())
	require.NoError(t, err)
}

func Test_Save_Fails_When_Query_Is_Empty(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("save", "--type", "images")
	assert.Contains(t, stderr, "query is empty")
}
