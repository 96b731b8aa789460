package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	warnTag     = color.New(color.FgYellow).SprintFunc()
	criticalTag = color.New(color.FgRed, color.Bold).SprintFunc()
	verboseTag  = color.New(color.FgCyan).SprintFunc()
)

// Logger provides leveled line output and lightweight timing helpers.
// Copies share one lock, so a Logger may be used from many goroutines.
type Logger struct {
	Writer  io.Writer
	Verbose bool
	mu      *sync.Mutex
}

func New(writer io.Writer, verbose bool) Logger {
	return Logger{Writer: writer, Verbose: verbose, mu: &sync.Mutex{}}
}

func (l Logger) println(line string) {
	if l.Writer == nil {
		return
	}
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	fmt.Fprintln(l.Writer, line)
}

func (l Logger) Infof(format string, args ...any) {
	l.println(fmt.Sprintf(format, args...))
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.println(verboseTag("Verbose:") + " " + fmt.Sprintf(format, args...))
}

func (l Logger) Warnf(format string, args ...any) {
	l.println(warnTag("Warning:") + " " + fmt.Sprintf(format, args...))
}

func (l Logger) Criticalf(format string, args ...any) {
	l.println(criticalTag("Critical:") + " " + fmt.Sprintf(format, args...))
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.Verbosef("%s took %s", label, elapsed)
	}
}
