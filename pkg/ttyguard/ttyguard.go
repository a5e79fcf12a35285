// Package ttyguard stops terminal capability probing for invocations that
// only print or write files. Import it for its side effect, ahead of any
// package that styles output.
//
// Lipgloss and glamour detect the background color by writing OSC/DSR
// queries to the terminal. For -list, -export and friends that output is
// piped or captured, and the stray control sequences end up in it. Termenv
// skips probing when CI is set, so non-interactive runs set CI=1 before the
// styling packages initialise.
package ttyguard

import (
	"os"
	"strings"
)

func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !shouldSuppressTTYQueries(os.Args[1:], os.Getenv("AG_TEST_MODE") != "") {
		return
	}
	_ = os.Setenv("CI", "1")
}

// nonInteractive lists the flags that make ag exit without starting the
// viewer. The wizard is interactive and stays out.
var nonInteractive = map[string]bool{
	"list":         true,
	"init-content": true,
	"init-config":  true,
	"export":       true,
	"all":          true,
	"version":      true,
	"help":         true,
	"h":            true,
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		if nonInteractive[name] {
			return true
		}
	}
	return false
}
