package posy

import (
	"fmt"
	"log"
	"os"
)

// logger receives degradation warnings and debug stats. All posy output goes
// through it so tests and embedders can silence or redirect it.
var logger = log.New(os.Stderr, "[posy] ", log.LstdFlags)

// warned tracks logOnce keys; single-threaded like the rest of the package.
var warned = map[string]bool{}

// SetLogger replaces the package logger. A nil logger restores the default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(os.Stderr, "[posy] ", log.LstdFlags)
	}
	logger = l
}

// Logger returns the current package logger.
func Logger() *log.Logger {
	return logger
}

func logf(format string, args ...any) {
	logger.Printf(format, args...)
}

// logOnce logs the message the first time key is seen and drops repeats, so a
// per-frame degradation does not flood the output.
func logOnce(key, format string, args ...any) {
	if warned[key] {
		return
	}
	warned[key] = true
	logger.Output(2, fmt.Sprintf(format, args...))
}
