package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// AsyncHook writes formatted entries to its writers from a single background
// goroutine. When the buffer is full the entry is dropped rather than blocking
// the caller.
type AsyncHook struct {
	writers []io.Writer
	entries chan []byte
}

// NewAsyncHook creates an AsyncHook with the given buffer size and starts its
// writer goroutine.
func NewAsyncHook(writers []io.Writer, bufferSize int) *AsyncHook {
	h := &AsyncHook{
		writers: writers,
		entries: make(chan []byte, bufferSize),
	}
	go h.run()
	return h
}

// Levels reports that the hook fires on every level.
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire formats the entry and queues it for writing.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}

	select {
	case h.entries <- line:
	default:
		// Buffer full, drop the entry instead of blocking the request path.
	}
	return nil
}

func (h *AsyncHook) run() {
	for line := range h.entries {
		for _, w := range h.writers {
			_, _ = w.Write(line)
		}
	}
}
