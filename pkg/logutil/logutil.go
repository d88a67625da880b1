// Package logutil provides logging utilities.
//
// All loggers write to a shared output, which discards everything until
// SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	out   = &switchWriter{w: io.Discard}
	level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	root  = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), out, level))
)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "time",
	LevelKey:       "level",
	NameKey:        "logger",
	MessageKey:     "msg",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeName:     zapcore.FullNameEncoder,
}

// GetLogger gets a logger whose entries are tagged with name.
func GetLogger(name string) *zap.Logger {
	return root.Named(name)
}

// SetLevel sets the minimal level of entries written by all loggers.
func SetLevel(l zapcore.Level) { level.SetLevel(l) }

// SetOutput redirects the output of all loggers to w. A file previously
// opened by SetOutputFile is closed.
func SetOutput(w io.Writer) {
	out.set(w, nil)
}

// SetOutputFile redirects the output of all loggers to the named file,
// appending to it. An empty name discards the output.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	out.set(file, file)
	return nil
}

// A zapcore.WriteSyncer whose destination can be changed after loggers have
// been built on it.
type switchWriter struct {
	mu   sync.Mutex
	w    io.Writer
	file *os.File
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		return s.file.Sync()
	}
	return nil
}

func (s *switchWriter) set(w io.Writer, file *os.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		s.file.Close()
	}
	s.w, s.file = w, file
}
