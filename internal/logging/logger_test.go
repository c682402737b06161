package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/redirgen/internal/config"
)

func TestNewLoggerWithFileSink(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "run.log")
	cfg := config.DefaultConfig()
	cfg.LogFile = logPath

	log, closeLog, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Infof("hello %s", "world")
	closeLog()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Errorf("log file missing message, got: %q", string(data))
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Error("file sink must not contain ANSI color codes")
	}
}

func TestNewLoggerAppends(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")
	cfg := config.DefaultConfig()
	cfg.LogFile = logPath

	for _, msg := range []string{"first", "second"} {
		log, closeLog, err := NewLogger(&cfg)
		if err != nil {
			t.Fatalf("NewLogger: %v", err)
		}
		log.Info(msg)
		closeLog()
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("expected both runs in log file, got: %q", string(data))
	}
}

func TestNewLoggerNoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	log, closeLog, err := NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	defer closeLog()
	log.Debug("debug is a no-op at info level")
}
