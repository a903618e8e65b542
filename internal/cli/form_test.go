package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvinalkan/gsearch/internal/cli"
)

func Test_Form_Edits_And_Saves_Query_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	input := strings.Join([]string{
		"set all golang   tips",
		"set where title",
		"show",
		"past week",
		"save",
		"quit",
	}, "\n")

	stdout, stderr, exitCode := c.RunWithInput(input, "form")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d; stderr=%s", got, want, stderr)
	}

	assert.Contains(t, stdout, "query: golang tips\n")
	assert.Contains(t, stdout, "url:   https://www.google.com/search?q=intitle%3Agolang+intitle%3Atips")
	assert.Contains(t, stdout, "  all             golang   tips")
	assert.Contains(t, stdout, "  where           title")
	assert.Contains(t, stdout, "query: intitle:golang intitle:tips after:2024-03-08")
	assert.Contains(t, stdout, "Saved: intitle:golang intitle:tips after:2024-03-08")

	assert.Equal(t, "1  intitle:golang intitle:tips after:2024-03-08", c.MustRun("recent"))
}

func Test_Form_Starts_From_Flags_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("form", "--site", "go.dev")
	assert.Contains(t, stdout, "query: site:go.dev")
}

func Test_Form_Reports_Errors_And_Continues_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	input := strings.Join([]string{
		"set bogus x",
		"set type maps",
		"set after yesterday",
		"frobnicate",
		"example 99",
		"load 1",
		"set all still works",
	}, "\n")

	stdout, stderr, exitCode := c.RunWithInput(input, "form")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d; stderr=%s", got, want, stderr)
	}

	assert.Contains(t, stdout, `error: unknown field "bogus"`)
	assert.Contains(t, stdout, "error: unknown value")
	assert.Contains(t, stdout, "error: invalid date")
	assert.Contains(t, stdout, `error: unknown command "frobnicate"`)
	assert.Contains(t, stdout, "error: example not found")
	assert.Contains(t, stdout, "error: no recent query 1 (have 0)")
	assert.Contains(t, stdout, "query: still works")
}

func Test_Form_Loads_Examples_And_Recent_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("save", "cats", "--type", "images", "--color", "gray")

	input := strings.Join([]string{
		"example 3",
		"load 1",
		"set size large",
		"unset color",
		"clear",
	}, "\n")

	stdout, stderr, exitCode := c.RunWithInput(input, "form")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d; stderr=%s", got, want, stderr)
	}

	assert.Contains(t, stdout, "Loaded example: Price range for laptops")
	assert.Contains(t, stdout, "query: laptop $500..$1000")
	assert.Contains(t, stdout, "url:   https://www.google.com/search?q=cats&tbm=isch&tbs=ic:gray")
	assert.Contains(t, stdout, "url:   https://www.google.com/search?q=cats&tbm=isch&tbs=isz:l,ic:gray")
	assert.Contains(t, stdout, "url:   https://www.google.com/search?q=cats&tbm=isch&tbs=isz:l\n")
	assert.Contains(t, stdout, "url:   https://www.google.com/search?q=\n")
}

func Test_Form_Opens_Browser_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	mockBrowser, invokedFile := createMockBrowser(t)
	c.Env["BROWSER"] = mockBrowser

	stdout, stderr, exitCode := c.RunWithInput("set all gophers\nopen\n", "form")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d; stderr=%s", got, want, stderr)
	}

	assert.Contains(t, stdout, "Opened: https://www.google.com/search?q=gophers")
	assert.Equal(t, "https://www.google.com/search?q=gophers", waitForFile(t, invokedFile))
}
