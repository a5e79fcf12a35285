// Package debug provides conditional debug logging for ag.
//
// Debug logging is enabled by setting the AG_DEBUG environment variable:
//
//	AG_DEBUG=1 ag
//
// Messages go to stderr (or the file named by AG_DEBUG_FILE, which is the
// only useful place while the TUI owns the terminal). When disabled, every
// function is a no-op.
package debug

import (
	"io"
	"log"
	"os"
	"time"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("AG_DEBUG") != "" {
		enabled = true
		logger = newLogger(openOutput())
	}
}

func openOutput() io.Writer {
	if path := os.Getenv("AG_DEBUG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return f
		}
	}
	return os.Stderr
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "[AG_DEBUG] ", log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = newLogger(os.Stderr)
	}
}

// SetOutput redirects debug output. Mostly for tests.
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogIf writes a debug message only if cond is true.
func LogIf(cond bool, format string, args ...any) {
	if !enabled || !cond {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogEnterExit logs entry now and exit with elapsed time when the returned
// func runs:
//
//	defer debug.LogEnterExit("export")()
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	if !enabled {
		return
	}
	logger.Printf("%s: %T = %+v", name, v, v)
}

// Section logs a section header.
func Section(name string) {
	if !enabled {
		return
	}
	logger.Printf("=== %s ===", name)
}
