package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
		ok   bool
	}{
		{"", logrus.InfoLevel, true},
		{"DEBUG", logrus.DebugLevel, true},
		{"warn", logrus.WarnLevel, true},
		{"error", logrus.ErrorLevel, true},
		{"loud", logrus.InfoLevel, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestCompactFormatter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, logrus.DebugLevel, "text")
	l.WithFields(logrus.Fields{
		"uri": "file:///a.g",
		"seq": 3,
		"err": errors.New("bad thing"),
	}).Debug("analysis discarded")

	want := "[DEBUG] analysis discarded err=\"bad thing\" seq=3 uri=file:///a.g\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
