package ui

import (
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/formatter"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
)

// infoFetchedMsg reports the metadata probe that runs while the user picks a
// quality.
type infoFetchedMsg struct {
	info *models.VideoInfo
	err  error
}

// conversionDoneMsg reports the terminal outcome of a conversion.
type conversionDoneMsg struct {
	summary *formatter.ConversionSummary
	err     error
}
