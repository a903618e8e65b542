package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNow is the clock a [CLI] starts with.
var TestNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

// CLI runs gsearch in-process against a private working directory.
//
// Env starts with BROWSER=true so "open" never reaches a real browser, and
// without HOME or XDG variables so the recent file lands in Dir.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
	Now time.Time
}

// NewCLI returns a CLI rooted in a fresh temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	return &CLI{
		t:   t,
		Dir: t.TempDir(),
		Env: map[string]string{"BROWSER": "true"},
		Now: TestNow,
	}
}

// Run runs "gsearch --cwd Dir args..." with empty stdin.
func (c *CLI) Run(args ...string) (stdout, stderr string, code int) {
	return c.RunWithInput("", args...)
}

// RunWithInput is Run with stdin holding input.
func (c *CLI) RunWithInput(input string, args ...string) (stdout, stderr string, code int) {
	var out, errOut bytes.Buffer

	argv := append([]string{"gsearch", "--cwd", c.Dir}, args...)
	now := c.Now

	code = run(strings.NewReader(input), &out, &errOut, argv, c.Env, nil, func() time.Time { return now })

	return out.String(), errOut.String(), code
}

// MustRun fails the test unless the command exits 0, and returns stdout
// with surrounding whitespace trimmed.
func (c *CLI) MustRun(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)
	if code != 0 {
		c.t.Fatalf("gsearch %s: exit code %d\nstderr: %s", strings.Join(args, " "), code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail fails the test unless the command exits non-zero with nothing on
// stdout, and returns stderr trimmed.
func (c *CLI) MustFail(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)

	switch {
	case code == 0:
		c.t.Fatalf("gsearch %s: succeeded, want failure\nstdout: %s", strings.Join(args, " "), stdout)
	case stdout != "":
		c.t.Fatalf("gsearch %s: failed but wrote stdout: %s", strings.Join(args, " "), stdout)
	}

	return strings.TrimSpace(stderr)
}

// RecentFile is where the recent list lives when nothing overrides it.
func (c *CLI) RecentFile() string {
	return filepath.Join(c.Dir, ".gsearch-recent.ini")
}

// WriteFile writes content to name, relative to Dir.
func (c *CLI) WriteFile(name, content string) {
	c.t.Helper()

	path := filepath.Join(c.Dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		c.t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		c.t.Fatalf("write %s: %v", name, err)
	}
}
