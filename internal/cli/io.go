package cli

import (
	"fmt"
	"io"
)

// IO is what a command writes through. Output goes to stdout as it is
// produced. Warnings are collected and repeated on stderr before the first
// output line and again by [IO.Finish], so a piped stdout cannot hide them.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
	flushed  bool
}

// NewIO returns an IO writing to out and errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records a problem that did not stop the command, together with what
// the user can do about it. Any warning turns the exit code into 1.
func (o *IO) Warn(issue, action string) {
	o.warnings = append(o.warnings, issue+": "+action)
}

func (o *IO) Println(a ...any) {
	o.beforeOutput()
	_, _ = fmt.Fprintln(o.out, a...)
}

func (o *IO) Printf(format string, a ...any) {
	o.beforeOutput()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish prints the warnings a final time and returns 1 if there were any.
func (o *IO) Finish() int {
	o.beforeOutput()

	if len(o.warnings) == 0 {
		return 0
	}

	o.printWarnings()

	return 1
}

func (o *IO) beforeOutput() {
	if o.flushed || len(o.warnings) == 0 {
		return
	}

	o.printWarnings()
	o.flushed = true
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
