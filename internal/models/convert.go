package models

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// Quality is the requested MP3 bitrate, expressed the way the web form sends
// it ("128k").
type Quality string

const (
	Quality64k  Quality = "64k"
	Quality128k Quality = "128k"
	Quality192k Quality = "192k"
	Quality256k Quality = "256k"
	Quality320k Quality = "320k"

	// DefaultQuality is applied when the request omits the field.
	DefaultQuality = Quality128k
)

// Qualities lists every accepted quality value in ascending bitrate order.
var Qualities = []Quality{Quality64k, Quality128k, Quality192k, Quality256k, Quality320k}

// Valid reports whether q is one of the accepted enum values.
func (q Quality) Valid() bool {
	switch q {
	case Quality64k, Quality128k, Quality192k, Quality256k, Quality320k:
		return true
	}
	return false
}

// Bitrate returns the numeric bitrate token passed to the external
// downloader: "192k" -> "192".
func (q Quality) Bitrate() string {
	return strings.TrimSuffix(string(q), "k")
}

func (q Quality) String() string { return string(q) }

// youtubeHosts are the video-host domains accepted by request validation.
var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

// ConvertRequest is one validated conversion request. Immutable once
// accepted.
type ConvertRequest struct {
	URL     string  `json:"url"`
	Quality Quality `json:"quality"`
}

// ParseConvertRequest validates a raw url/quality pair and returns the
// immutable request. An empty quality falls back to [DefaultQuality].
func ParseConvertRequest(rawURL string, quality string) (*ConvertRequest, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", shared.ErrInvalidURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q is not a valid URL", shared.ErrInvalidURL, rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", shared.ErrInvalidURL, parsed.Scheme)
	}
	if !youtubeHosts[strings.ToLower(parsed.Host)] {
		return nil, fmt.Errorf("%w: %q is not a YouTube URL", shared.ErrInvalidURL, rawURL)
	}

	q := Quality(quality)
	if quality == "" {
		q = DefaultQuality
	}
	if !q.Valid() {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidQuality, quality)
	}

	return &ConvertRequest{URL: rawURL, Quality: q}, nil
}

// VideoInfo is the metadata returned by the probe call.
type VideoInfo struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
}
