package logutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"src.jfeed.sh/pkg/testutil"
)

func TestSetOutput(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	var sb strings.Builder
	SetOutput(&sb)

	GetLogger("test").Info("hello", zap.String("mode", "normal"))

	out := sb.String()
	for _, want := range []string{"INFO", "test", "hello", `"mode": "normal"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() {
		SetOutput(io.Discard)
		SetLevel(zapcore.DebugLevel)
	})
	var sb strings.Builder
	SetOutput(&sb)
	SetLevel(zapcore.WarnLevel)

	logger := GetLogger("test")
	logger.Debug("quiet")
	logger.Warn("loud")

	if out := sb.String(); strings.Contains(out, "quiet") || !strings.Contains(out, "loud") {
		t.Errorf("got log output %q", out)
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	fname := filepath.Join(testutil.TempDir(t), "log")

	// Loggers created before the output is set also write to the file.
	logger := GetLogger("test")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Info("to file")
	if err := SetOutputFile(""); err != nil {
		t.Fatal(err)
	}
	logger.Info("discarded")

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if s := string(data); !strings.Contains(s, "to file") || strings.Contains(s, "discarded") {
		t.Errorf("got log file content %q", s)
	}
}
