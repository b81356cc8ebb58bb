// Package logging provides leveled console diagnostics for the client.
// Failures in this system are never fatal; they degrade to the last
// known good state plus a log line and a notification, so the logger
// is the only place transport errors become visible to a developer.
package logging

import (
	"os"
	"sync"

	clog "github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	logger *clog.Logger
)

// Logger returns the process-wide logger, creating a default one on
// first use. The default writes logfmt to stderr at Warn level so the
// TUI is not disturbed by routine output.
func Logger() *clog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		logger = clog.NewWithOptions(os.Stderr, clog.Options{
			Level:           clog.WarnLevel,
			ReportTimestamp: true,
		})
	}
	return logger
}

// SetVerbose lowers the log level to Debug for troubleshooting runs.
func SetVerbose() {
	Logger().SetLevel(clog.DebugLevel)
}

// SetOutput redirects log output, used by tests and by the run command
// when a log file is requested.
func SetOutput(f *os.File) {
	Logger().SetOutput(f)
}
