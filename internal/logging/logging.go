// Package logging собирает logrus-логгер по настройкам из config.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"task-board/internal/config"
)

// New создаёт логгер. Возвращаемая функция закрывает файл лога, если он
// открывался; её нужно вызвать при завершении.
func New(c config.Logger) (*logrus.Logger, func(), error) {
	l := logrus.New()
	if err := SetLevel(l, c.Level); err != nil {
		return nil, nil, err
	}

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	cleanup := func() {}
	switch c.Output {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "file":
		f, err := openFile(c.OutputFile)
		if err != nil {
			return nil, nil, err
		}
		l.SetOutput(f)
		cleanup = func() { _ = f.Close() }
	default:
		l.SetOutput(os.Stderr)
	}
	return l, cleanup, nil
}

// SetLevel меняет уровень логгера. Пустая строка - info.
func SetLevel(l *logrus.Logger, level string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	l.SetLevel(lvl)
	return nil
}

func openFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("log output is file but no output_file is set")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
