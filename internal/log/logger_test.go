package log

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"", logrus.InfoLevel},
		{"chatty", logrus.InfoLevel},
	}

	for _, tt := range tests {
		if got := NewLogger(tt.in).GetLevel(); got != tt.want {
			t.Errorf("NewLogger(%q) level = %v; want %v", tt.in, got, tt.want)
		}
	}
}
