package convert

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Outcome is the successful terminal result of one conversion request: a
// single temporary file on disk plus the filename to offer the client.
//
// The file is deleted exactly once, no matter how many of Cleanup, Discard,
// or late timers fire.
type Outcome struct {
	FilePath string
	Filename string
	Title    string

	grace  time.Duration
	once   sync.Once
	logger *log.Logger
}

// NewOutcome wraps an existing file as a conversion result. The filename
// offered to clients is derived from title.
func NewOutcome(filePath, title string, grace time.Duration, logger *log.Logger) *Outcome {
	if logger == nil {
		logger = log.Default()
	}
	return &Outcome{
		FilePath: filePath,
		Filename: downloadFilename(title),
		Title:    title,
		grace:    grace,
		logger:   logger,
	}
}

// Cleanup schedules the file's deletion after the grace period, tolerating
// slow clients still draining the response body.
func (o *Outcome) Cleanup() {
	time.AfterFunc(o.grace, o.remove)
}

// Discard deletes the file immediately. Used when the client aborts before
// the response completes.
func (o *Outcome) Discard() {
	o.remove()
}

func (o *Outcome) remove() {
	o.once.Do(func() {
		if err := os.Remove(o.FilePath); err != nil && !os.IsNotExist(err) {
			o.logger.Warn("failed to remove temp file", "path", o.FilePath, "error", err)
			return
		}
		o.logger.Debug("removed temp file", "path", o.FilePath)
	})
}

// downloadFilename derives the client-facing attachment name from the
// extracted title, falling back to a generic name.
func downloadFilename(title string) string {
	cleaned := sanitizeFilename(title)
	if cleaned == "" {
		cleaned = "audio"
	}
	return cleaned + ".mp3"
}

// sanitizeFilename strips path separators, control characters, and quotes so
// the name is safe inside a Content-Disposition header and on any
// filesystem.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
		case strings.ContainsRune(`/\:*?"<>|`, r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
