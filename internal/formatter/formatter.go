// package formatter renders probe metadata and conversion results for CLI output (plain text, JSON)
package formatter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// ConversionSummary collects everything the CLI reports after a completed
// conversion.
type ConversionSummary struct {
	Title     string         `json:"title"`
	FilePath  string         `json:"file"`
	SizeBytes int64          `json:"size_bytes"`
	Quality   models.Quality `json:"quality"`
	Elapsed   time.Duration  `json:"-"`
	ElapsedMS int64          `json:"elapsed_ms"`
}

// InfoToText renders probe metadata as aligned key-value lines.
func InfoToText(info *models.VideoInfo) []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Title:    %s\n", info.Title))
	buf.WriteString(fmt.Sprintf("Duration: %s\n", info.Duration))
	return buf.Bytes()
}

// InfoToJSON renders probe metadata as indented JSON.
func InfoToJSON(info *models.VideoInfo) ([]byte, error) {
	data, err := shared.MarshalJSON(info, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}
	return data, nil
}

// SummaryToText renders a conversion result for terminal display.
func SummaryToText(summary *ConversionSummary) []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Title:   %s\n", summary.Title))
	buf.WriteString(fmt.Sprintf("Quality: %s\n", summary.Quality))
	buf.WriteString(fmt.Sprintf("File:    %s\n", summary.FilePath))
	buf.WriteString(fmt.Sprintf("Size:    %s\n", FormatBytes(summary.SizeBytes)))
	buf.WriteString(fmt.Sprintf("Took:    %s\n", summary.Elapsed.Round(time.Millisecond)))
	return buf.Bytes()
}

// SummaryToJSON renders a conversion result as indented JSON.
func SummaryToJSON(summary *ConversionSummary) ([]byte, error) {
	summary.ElapsedMS = summary.Elapsed.Milliseconds()
	data, err := shared.MarshalJSON(summary, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary JSON: %w", err)
	}
	return data, nil
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
