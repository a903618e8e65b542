// Package browser hands URLs to the user's web browser.
package browser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	clibrowser "github.com/cli/browser"
	"go.uber.org/zap"
)

// ErrNoBrowser wraps the failure of the system default opener.
var ErrNoBrowser = errors.New("no browser found (set \"browser\" in config or $BROWSER)")

// Launcher opens a URL somewhere the user can see it.
type Launcher interface {
	Open(url string) error
}

// Exec launches the user's browser with the URL as the last argument.
//
// Command wins, then each entry of the colon-separated $BROWSER from Env.
// A command may carry its own leading arguments ("firefox --new-window").
// When none of them is on PATH the system default opener is used
// (xdg-open and friends, open, or url.dll).
type Exec struct {
	Command string
	Env     map[string]string
	Logger  *zap.Logger

	// Default opens url with the system handler. Nil means
	// github.com/cli/browser.
	Default func(url string) error
}

// Resolve returns the argv that Open would run, without the URL, or nil
// when Open falls back to the system default opener.
func (e *Exec) Resolve() []string {
	candidates := make([]string, 0, 4)

	if e.Command != "" {
		candidates = append(candidates, e.Command)
	}

	for _, b := range strings.Split(e.Env["BROWSER"], ":") {
		if b = strings.TrimSpace(b); b != "" {
			candidates = append(candidates, b)
		}
	}

	for _, c := range candidates {
		argv := strings.Fields(c)
		if len(argv) == 0 {
			continue
		}

		if _, err := exec.LookPath(argv[0]); err == nil {
			return argv
		}

		e.logger().Debug("browser candidate not found", zap.String("command", argv[0]))
	}

	return nil
}

// Open starts the browser. A configured command is started without waiting
// and reaped in the background.
func (e *Exec) Open(url string) error {
	argv := e.Resolve()
	if argv == nil {
		e.logger().Debug("using system default browser", zap.String("url", url))

		if err := e.openDefault(url); err != nil {
			return fmt.Errorf("%w: %w", ErrNoBrowser, err)
		}

		return nil
	}

	log := e.logger().With(zap.Strings("argv", argv), zap.String("url", url))

	cmd := exec.Command(argv[0], append(argv[1:], url)...) //nolint:gosec // user-chosen browser
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start browser %s: %w", argv[0], err)
	}

	log.Debug("browser started", zap.Int("pid", cmd.Process.Pid))

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warn("browser exited with error", zap.Error(err))
		}
	}()

	return nil
}

var quietDefault sync.Once

func (e *Exec) openDefault(url string) error {
	if e.Default != nil {
		return e.Default(url)
	}

	// Opener chatter must not mix with the URL printed on stdout.
	quietDefault.Do(func() {
		clibrowser.Stdout = io.Discard
		clibrowser.Stderr = os.Stderr
	})

	return clibrowser.OpenURL(url)
}

func (e *Exec) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}

	return e.Logger
}
