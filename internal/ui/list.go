package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
)

var _ list.Item = qualityItem{}

// qualityItem wraps [models.Quality] to implement [list.Item].
type qualityItem struct {
	quality models.Quality
}

func (i qualityItem) FilterValue() string { return string(i.quality) }
func (i qualityItem) Title() string       { return string(i.quality) }
func (i qualityItem) Description() string {
	switch i.quality {
	case models.Quality64k:
		return "smallest file, speech quality"
	case models.Quality128k:
		return "standard quality (default)"
	case models.Quality192k:
		return "good quality"
	case models.Quality256k:
		return "high quality"
	case models.Quality320k:
		return "maximum quality, largest file"
	default:
		return ""
	}
}

func qualityItems() []list.Item {
	items := make([]list.Item, len(models.Qualities))
	for i, q := range models.Qualities {
		items[i] = qualityItem{quality: q}
	}
	return items
}
