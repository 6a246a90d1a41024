package renderer

import (
	"io"
	"log"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing through the standard logger
type DefaultLogger struct {
	logger *log.Logger
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.logger.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{logger: log.Default()}
}

// NewDiscardLogger creates a logger that drops everything
func NewDiscardLogger() core.Logger {
	return &DefaultLogger{logger: log.New(io.Discard, "", 0)}
}
