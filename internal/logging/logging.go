// Package logging builds the logrus loggers used by the long-running
// commands (lsp, watch). Core packages never log.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel accepts debug, info, warn and error; "" means info.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return logrus.DebugLevel, nil
	case "", "info":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	}
	return logrus.InfoLevel, fmt.Errorf("invalid log level: %v", level)
}

// Formatter returns the formatter for name: "json" or "text" (default).
func Formatter(name string) logrus.Formatter {
	if name == "json" {
		return &logrus.JSONFormatter{}
	}
	return &compactFormatter{}
}

// New builds a logger writing to w.
func New(w io.Writer, level logrus.Level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(Formatter(format))
	return l
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *logrus.Logger {
	return New(io.Discard, logrus.ErrorLevel, "text")
}

// compactFormatter prints `[LEVEL] message key=value ...` with sorted keys.
// Stderr of an editor-hosted server is read by humans, timestamps are noise.
type compactFormatter struct{}

func (f *compactFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s", strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := e.Data[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		s := fmt.Sprint(v)
		if strings.ContainsAny(s, " \t\n\"") {
			s = fmt.Sprintf("%q", s)
		}
		fmt.Fprintf(&b, " %s=%s", k, s)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
