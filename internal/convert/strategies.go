package convert

import (
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
)

// Strategy is one complete argument configuration for the external
// downloader, representing a distinct approach to getting past access
// restrictions. Strategies run strictly in declaration order; the first
// success wins.
type Strategy struct {
	Name string
	Args []string
}

const (
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	iosUserAgent     = "com.google.ios.youtube/19.29.1 (iPhone16,2; U; CPU iOS 17_5_1 like Mac OS X)"
)

// BuildStrategies prepares the ordered strategy list for one request.
// outputTemplate is the yt-dlp output path template carrying the request's
// unique token; ffmpegPath locates the transcoder the downloader invokes.
func BuildStrategies(req *models.ConvertRequest, outputTemplate, ffmpegPath string) []Strategy {
	base := func() []string {
		args := []string{
			"--extract-audio",
			"--audio-format", "mp3",
			"--audio-quality", req.Quality.Bitrate() + "K",
			"--output", outputTemplate,
			"--no-playlist",
			"--no-warnings",
			"--newline",
			"--socket-timeout", "10",
			"--extractor-retries", "1",
			"--fragment-retries", "1",
			"--no-check-certificate",
		}
		if ffmpegPath != "" {
			args = append(args, "--ffmpeg-location", ffmpegPath)
		}
		return args
	}

	web := append(base(),
		"--user-agent", desktopUserAgent,
		"--referer", "https://www.youtube.com/",
		"--format", "bestaudio[ext=m4a]/bestaudio[ext=webm]/bestaudio/best",
		req.URL,
	)

	android := append(base(),
		"--extractor-args", "youtube:player_client=android",
		"--format", "bestaudio/best",
		req.URL,
	)

	ios := append(base(),
		"--extractor-args", "youtube:player_client=ios",
		"--user-agent", iosUserAgent,
		"--format", "bestaudio/best",
		"--force-ipv4",
		req.URL,
	)

	return []Strategy{
		{Name: "web", Args: web},
		{Name: "android", Args: android},
		{Name: "ios", Args: ios},
	}
}
