package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// Browser-like defaults replayed on probe calls so anonymous metadata
// lookups are less likely to be rejected.
const (
	probeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	probeReferer   = "https://www.youtube.com/"
)

// YTDLP shells out to the external downloader binary. It implements
// [Prober] and [Downloader].
type YTDLP struct {
	runner  Runner
	path    string
	headers *shared.RequestHeaders
	logger  *log.Logger
}

// NewYTDLP creates a YTDLP service. headers may be nil; when set, the parsed
// browser headers are appended to every invocation.
func NewYTDLP(runner Runner, path string, headers *shared.RequestHeaders, logger *log.Logger) *YTDLP {
	if path == "" {
		path = "yt-dlp"
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &YTDLP{runner: runner, path: path, headers: headers, logger: logger}
}

// Probe fetches the resource's title and duration without downloading media.
// The first stdout line is the title, the second the duration.
func (y *YTDLP) Probe(ctx context.Context, url string) (string, string, error) {
	args := []string{
		"--get-title",
		"--get-duration",
		"--no-playlist",
		"--user-agent", probeUserAgent,
		"--referer", probeReferer,
		"--no-check-certificate",
		"--socket-timeout", "30",
	}
	args = append(args, y.extraHeaders()...)
	args = append(args, url)

	y.logger.Debug("probing video", "url", url)

	result, err := y.runner.Run(ctx, y.path, args)
	if err != nil {
		return "", "", fmt.Errorf("probe failed: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(result.Stdout), "\n")
	title := ""
	duration := ""
	if len(lines) > 0 {
		title = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		duration = normalizeDuration(strings.TrimSpace(lines[1]))
	}

	return title, duration, nil
}

// normalizeDuration converts a bare seconds count, which some extractors
// print instead of a clock value, into M:SS form. Already-formatted values
// pass through unchanged.
func normalizeDuration(raw string) string {
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	return shared.FormatDuration(seconds)
}

// Download runs one extraction attempt with a prepared argument list.
func (y *YTDLP) Download(ctx context.Context, args []string) (*ProcessResult, error) {
	extra := y.extraHeaders()
	full := make([]string, 0, len(args)+len(extra))
	full = append(full, args...)
	full = append(full, extra...)
	return y.runner.Run(ctx, y.path, full)
}

func (y *YTDLP) extraHeaders() []string {
	if y.headers == nil {
		return nil
	}
	return y.headers.ToYtdlpArgs()
}
