// Command gsearch turns search criteria into Google advanced-search queries.
//
// Criteria come from flags ("gsearch build --site go.dev --type news
// release notes") or from the interactive form ("gsearch form"), which walks
// through every field and offers the result for opening or saving.
//
//	build    print the query, its extra parameters and the URL
//	open     build, then hand the URL to the browser
//	save     build, then remember it in the recent file
//	form     fill the criteria in interactively
//	recent   list saved queries; recent-open, recent-show and rm take a number
//	examples the built-in example searches; "example <n>" builds one
//
// Saved queries live in an INI file (.gsearch-recent.ini, or the
// "recent_file" setting), newest first and capped at "max_recent" entries.
// The browser is the "browser" setting, then $BROWSER, then the system
// default. Run "gsearch --help" for the full list of flags and settings.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/calvinalkan/gsearch/internal/cli"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, environ(), sigCh))
}

// environ returns the process environment as a map. The CLI never reads
// os.Getenv itself so tests can hand it a fake one.
func environ() map[string]string {
	env := make(map[string]string)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return env
}
