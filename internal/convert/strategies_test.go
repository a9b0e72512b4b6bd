package convert

import (
	"slices"
	"testing"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
)

func TestBuildStrategies(t *testing.T) {
	req := &models.ConvertRequest{
		URL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Quality: models.Quality192k,
	}
	strategies := BuildStrategies(req, "/tmp/audio_123.%(ext)s", "/usr/bin/ffmpeg")

	t.Run("order is web then android then ios", func(t *testing.T) {
		want := []string{"web", "android", "ios"}
		if len(strategies) != len(want) {
			t.Fatalf("got %d strategies, want %d", len(strategies), len(want))
		}
		for i, name := range want {
			if strategies[i].Name != name {
				t.Errorf("strategies[%d].Name = %q, want %q", i, strategies[i].Name, name)
			}
		}
	})

	t.Run("every strategy shares the base arguments", func(t *testing.T) {
		for _, s := range strategies {
			for _, arg := range []string{"--extract-audio", "--no-playlist", "/tmp/audio_123.%(ext)s", req.URL} {
				if !slices.Contains(s.Args, arg) {
					t.Errorf("strategy %s missing %q", s.Name, arg)
				}
			}
			if !hasArgPair(s.Args, "--audio-quality", "192K") {
				t.Errorf("strategy %s missing --audio-quality 192K", s.Name)
			}
			if !hasArgPair(s.Args, "--ffmpeg-location", "/usr/bin/ffmpeg") {
				t.Errorf("strategy %s missing --ffmpeg-location", s.Name)
			}
		}
	})

	t.Run("alternate clients set extractor args", func(t *testing.T) {
		if !hasArgPair(strategies[1].Args, "--extractor-args", "youtube:player_client=android") {
			t.Error("android strategy missing player_client=android")
		}
		if !hasArgPair(strategies[2].Args, "--extractor-args", "youtube:player_client=ios") {
			t.Error("ios strategy missing player_client=ios")
		}
		if !slices.Contains(strategies[2].Args, "--force-ipv4") {
			t.Error("ios strategy missing --force-ipv4")
		}
	})

	t.Run("web strategy sends browser identity", func(t *testing.T) {
		if !hasArgPair(strategies[0].Args, "--user-agent", desktopUserAgent) {
			t.Error("web strategy missing desktop user agent")
		}
		if !hasArgPair(strategies[0].Args, "--referer", "https://www.youtube.com/") {
			t.Error("web strategy missing referer")
		}
	})

	t.Run("empty ffmpeg path omits the flag", func(t *testing.T) {
		bare := BuildStrategies(req, "/tmp/audio_123.%(ext)s", "")
		for _, s := range bare {
			if slices.Contains(s.Args, "--ffmpeg-location") {
				t.Errorf("strategy %s carries --ffmpeg-location with no path configured", s.Name)
			}
		}
	})
}

func hasArgPair(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}
