package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tutorcast/internal/platform/logger"
)

func TestNewWritesToOutputs(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tutorcast.log")
	log, err := logger.New("quiet", path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("dropped below error level")
	log.With("session_id", "s1").Error("probe failed", "reason", "timeout")
	log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if strings.Contains(out, "dropped below error level") {
		t.Fatalf("quiet mode must drop info lines: %s", out)
	}
	if !strings.Contains(out, "probe failed") || !strings.Contains(out, `"session_id":"s1"`) {
		t.Fatalf("expected structured error line, got %s", out)
	}
}

func TestNopDiscards(t *testing.T) {
	t.Parallel()
	log := logger.Nop()
	log.Warn("nothing", "k", 1)
	log.Sync()
}
