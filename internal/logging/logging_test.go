package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"task-board/internal/config"
)

func TestNewLevelsAndFormats(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.Logger
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"defaults", config.Logger{}, logrus.InfoLevel, false},
		{"debug json", config.Logger{Level: "debug", Format: "json", Output: "stdout"}, logrus.DebugLevel, true},
		{"warn text", config.Logger{Level: "warn", Format: "text", Output: "stderr"}, logrus.WarnLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, cleanup, err := New(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			defer cleanup()

			if l.GetLevel() != tt.wantLevel {
				t.Errorf("level = %v, want %v", l.GetLevel(), tt.wantLevel)
			}
			if _, ok := l.Formatter.(*logrus.JSONFormatter); ok != tt.wantJSON {
				t.Errorf("formatter = %T", l.Formatter)
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New(config.Logger{Level: "loud"}); err == nil {
		t.Error("expected error")
	}
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "task-board.log")

	l, cleanup, err := New(config.Logger{Level: "info", Format: "json", Output: "file", OutputFile: path})
	if err != nil {
		t.Fatal(err)
	}
	l.WithField("task_id", "t-1").Info("task deleted")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"task_id":"t-1"`) || !strings.Contains(string(data), "task deleted") {
		t.Errorf("log file = %s", data)
	}

	if _, _, err := New(config.Logger{Output: "file"}); err == nil {
		t.Error("file output without path must fail")
	}
}

func TestSetLevel(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	if err := SetLevel(l, "error"); err != nil || l.GetLevel() != logrus.ErrorLevel {
		t.Errorf("SetLevel(error) = %v, level %v", err, l.GetLevel())
	}
	if err := SetLevel(l, ""); err != nil || l.GetLevel() != logrus.InfoLevel {
		t.Errorf("SetLevel(\"\") = %v, level %v", err, l.GetLevel())
	}
}
