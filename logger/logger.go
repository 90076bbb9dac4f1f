// Package logger provides the levelled, colour-prefixed logger shared by the services.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/beka-birhanu/sheefra/config"
)

var ErrNilWriter = errors.New("logger needs a writer")

// Logger writes [NAME] [LEVEL] lines to a single writer.
type Logger struct {
	out *log.Logger
}

// New creates a Logger whose prefix is name, drawn in color.
func New(name string, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	prefix := fmt.Sprintf("%s[%s]%s ", color, name, config.ColorReset)
	return &Logger{out: log.New(w, prefix, log.LstdFlags)}, nil
}

func (l *Logger) Info(msg string) {
	l.out.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, msg)
}

func (l *Logger) Warning(msg string) {
	l.out.Printf("%s[WARNING]%s %s", config.LogWarningColor, config.LogColorReset, msg)
}

func (l *Logger) Error(msg string) {
	l.out.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, msg)
}
