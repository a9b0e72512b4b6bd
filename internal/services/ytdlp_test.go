package services_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/services"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
	th "github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/testing"
)

func TestYTDLPProbe(t *testing.T) {
	t.Run("parses title and duration from stdout", func(t *testing.T) {
		runner := &th.MockRunner{Results: []th.RunResult{
			{Result: &services.ProcessResult{Stdout: "Never Gonna Give You Up\n3:32\n"}},
		}}
		y := services.NewYTDLP(runner, "yt-dlp", nil, nil)

		title, duration, err := y.Probe(context.Background(), "https://youtu.be/abc")
		if err != nil {
			t.Fatalf("Probe() error = %v", err)
		}
		if title != "Never Gonna Give You Up" || duration != "3:32" {
			t.Errorf("got title=%q duration=%q", title, duration)
		}
	})

	t.Run("normalizes bare seconds to clock form", func(t *testing.T) {
		runner := &th.MockRunner{Results: []th.RunResult{
			{Result: &services.ProcessResult{Stdout: "Some Livestream VOD\n185\n"}},
		}}
		y := services.NewYTDLP(runner, "yt-dlp", nil, nil)

		_, duration, err := y.Probe(context.Background(), "https://youtu.be/abc")
		if err != nil {
			t.Fatalf("Probe() error = %v", err)
		}
		if duration != "3:05" {
			t.Errorf("duration = %q, want 3:05", duration)
		}
	})

	t.Run("tolerates missing duration line", func(t *testing.T) {
		runner := &th.MockRunner{Results: []th.RunResult{
			{Result: &services.ProcessResult{Stdout: "Only A Title\n"}},
		}}
		y := services.NewYTDLP(runner, "yt-dlp", nil, nil)

		title, duration, err := y.Probe(context.Background(), "https://youtu.be/abc")
		if err != nil {
			t.Fatalf("Probe() error = %v", err)
		}
		if title != "Only A Title" || duration != "" {
			t.Errorf("got title=%q duration=%q", title, duration)
		}
	})

	t.Run("passes metadata-only flags and the url", func(t *testing.T) {
		runner := &th.MockRunner{Results: []th.RunResult{
			{Result: &services.ProcessResult{Stdout: "t\n1:00\n"}},
		}}
		y := services.NewYTDLP(runner, "yt-dlp", nil, nil)

		if _, _, err := y.Probe(context.Background(), "https://youtu.be/abc"); err != nil {
			t.Fatal(err)
		}

		call := runner.Calls[0]
		if call.Name != "yt-dlp" {
			t.Errorf("Name = %q", call.Name)
		}
		for _, want := range []string{"--get-title", "--get-duration", "--no-playlist"} {
			if !slices.Contains(call.Args, want) {
				t.Errorf("args missing %q: %v", want, call.Args)
			}
		}
		if call.Args[len(call.Args)-1] != "https://youtu.be/abc" {
			t.Errorf("url should be the final argument: %v", call.Args)
		}
	})

	t.Run("wraps process failure", func(t *testing.T) {
		perr := &services.ProcessError{Tool: "yt-dlp", Stderr: "ERROR: Private video", Err: errors.New("exit status 1")}
		runner := &th.MockRunner{Results: []th.RunResult{{Result: &services.ProcessResult{}, Err: perr}}}
		y := services.NewYTDLP(runner, "yt-dlp", nil, nil)

		_, _, err := y.Probe(context.Background(), "https://youtu.be/abc")
		var got *services.ProcessError
		if !errors.As(err, &got) {
			t.Fatalf("error = %v, want wrapped ProcessError", err)
		}
		if got.Stderr != "ERROR: Private video" {
			t.Errorf("Stderr = %q", got.Stderr)
		}
	})
}

func TestYTDLPDownload(t *testing.T) {
	t.Run("does not mutate the caller's argument slice", func(t *testing.T) {
		headers := &shared.RequestHeaders{Headers: map[string]string{"Accept-Language": "en-US"}}
		runner := &th.MockRunner{Results: []th.RunResult{
			{Result: &services.ProcessResult{}},
		}}
		y := services.NewYTDLP(runner, "yt-dlp", headers, nil)

		args := make([]string, 1, 8)
		args[0] = "--extract-audio"
		original := args[:1:1]

		if _, err := y.Download(context.Background(), args); err != nil {
			t.Fatal(err)
		}

		if len(original) != 1 || original[0] != "--extract-audio" {
			t.Errorf("caller slice mutated: %v", original)
		}
		call := runner.Calls[0]
		if !slices.Contains(call.Args, "--add-header") {
			t.Errorf("browser headers not appended: %v", call.Args)
		}
	})
}
