package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

type stubLogConfig struct {
	level, encoding string
}

func (c stubLogConfig) Level() string     { return c.level }
func (c stubLogConfig) Encoding() string  { return c.encoding }
func (c stubLogConfig) Development() bool { return false }

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       stubLogConfig
		wantDebug bool
	}{
		{name: "debug json", cfg: stubLogConfig{level: "DEBUG", encoding: "json"}, wantDebug: true},
		{name: "unknown level falls back to info", cfg: stubLogConfig{level: "loud", encoding: "console"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("err=%v", err)
			}
			if got := l.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Fatalf("debug enabled=%v want=%v", got, tt.wantDebug)
			}
		})
	}
}
