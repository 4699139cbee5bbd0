package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsheet/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("read 3 codes")

	if !strings.Contains(buf.String(), "read 3 codes (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("expected default logger without a context value")
	}

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestSetLogLevelInstallsHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogInfo)
	if _, ok := observability.Pipeline().(*logHooks); ok {
		t.Fatal("hooks should only be installed at debug level")
	}

	c.SetLogLevel(LogDebug)
	observability.Pipeline().OnRenderComplete(context.Background(), "pdf", 1024, time.Millisecond, nil)
	observability.Session().OnSessionDiscarded(context.Background(), "abc", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"rendered", "format=pdf", "session discarded", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
