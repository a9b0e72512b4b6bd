package convert

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

func TestOutcome(t *testing.T) {
	newOutcome := func(t *testing.T) *Outcome {
		t.Helper()
		path := filepath.Join(t.TempDir(), "audio_1.mp3")
		if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
			t.Fatal(err)
		}
		return &Outcome{FilePath: path, Filename: "a.mp3", logger: shared.NewLogger(io.Discard)}
	}

	t.Run("discard removes the file", func(t *testing.T) {
		o := newOutcome(t)
		o.Discard()
		if _, err := os.Stat(o.FilePath); !os.IsNotExist(err) {
			t.Errorf("file still present after Discard: %v", err)
		}
	})

	t.Run("removal happens at most once", func(t *testing.T) {
		o := newOutcome(t)
		o.Discard()
		o.Discard()
		o.Cleanup()
		// give a zero-grace cleanup timer the chance to fire
		time.Sleep(20 * time.Millisecond)
		if _, err := os.Stat(o.FilePath); !os.IsNotExist(err) {
			t.Errorf("file still present: %v", err)
		}
	})

	t.Run("cleanup waits for the grace period", func(t *testing.T) {
		o := newOutcome(t)
		o.grace = 50 * time.Millisecond
		o.Cleanup()
		if _, err := os.Stat(o.FilePath); err != nil {
			t.Errorf("file removed before the grace period: %v", err)
		}
		deadline := time.Now().Add(2 * time.Second)
		for {
			if _, err := os.Stat(o.FilePath); os.IsNotExist(err) {
				break
			}
			if time.Now().After(deadline) {
				t.Fatal("file not removed after the grace period")
			}
			time.Sleep(10 * time.Millisecond)
		}
	})
}

func TestDownloadFilename(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"plain title", "My Song", "My Song.mp3"},
		{"empty title falls back", "", "audio.mp3"},
		{"path separators stripped", `a/b\c`, "abc.mp3"},
		{"header-unsafe characters stripped", `What? "A: B" <C>|*`, "What A B C.mp3"},
		{"control characters stripped", "a\x00b\nc", "abc.mp3"},
		{"only junk falls back", `///\\\`, "audio.mp3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := downloadFilename(tc.title); got != tc.want {
				t.Errorf("downloadFilename(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}
