// Package shelllog provides the shell's debug log: a file-backed
// logrus logger, never the controlling terminal, since stdout/stderr
// belong to the REPL's own prompt and to foreground children.
package shelllog

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is a thread-safe wrapper around a logrus.Logger. The signal
// dispatcher goroutine and the main loop can both log without racing
// on the underlying file handle.
type Logger struct {
	logger *logrus.Logger
	mu     sync.Mutex
}

// Open creates (or appends to) the debug log at path.
func Open(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)

	return &Logger{logger: logger}, nil
}

// Discard returns a Logger that writes nowhere, for when no --log-file
// path is configured.
func Discard() *Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Logger{logger: logger}
}

// SetLevel raises or lowers verbosity; called from the root command's
// --debug/--verbose flags.
func (l *Logger) SetLevel(level logrus.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetLevel(level)
}

func (l *Logger) log(level logrus.Level, msg string, fields logrus.Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.WithFields(fields).Log(level, msg)
}

func (l *Logger) Debug(msg string, fields logrus.Fields) { l.log(logrus.DebugLevel, msg, fields) }
func (l *Logger) Info(msg string, fields logrus.Fields)  { l.log(logrus.InfoLevel, msg, fields) }
func (l *Logger) Warn(msg string, fields logrus.Fields)  { l.log(logrus.WarnLevel, msg, fields) }
func (l *Logger) Error(msg string, fields logrus.Fields) { l.log(logrus.ErrorLevel, msg, fields) }
