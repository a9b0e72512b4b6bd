package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/convert"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
	tu "github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/testing"
)

// fakeConverter satisfies the converter interface without spawning
// external processes.
type fakeConverter struct {
	outcome *convert.Outcome
	info    *models.VideoInfo
	err     error
}

func (f *fakeConverter) Convert(ctx context.Context, req *models.ConvertRequest) (*convert.Outcome, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func (f *fakeConverter) Info(ctx context.Context, url string) (*models.VideoInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			conv := &fakeConverter{}

			runner := NewRunner(RunnerOpts{
				Config:    config,
				Logger:    logger,
				Output:    output,
				Converter: conv,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.converter != conv {
				t.Error("expected converter to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "/test/path/config.toml",
			})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("resolveConfig", func(t *testing.T) {
		t.Run("missing file falls back to current config", func(t *testing.T) {
			config := shared.DefaultConfig()
			runner := NewRunner(RunnerOpts{Config: config})

			resolved := runner.resolveConfig(filepath.Join(t.TempDir(), "missing.toml"))

			if resolved != config {
				t.Error("expected fallback to current config")
			}
		})

		t.Run("loads existing file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := shared.CreateConfigFile(path); err != nil {
				t.Fatalf("failed to create config file: %v", err)
			}

			runner := NewRunner(RunnerOpts{})
			resolved := runner.resolveConfig(path)

			if resolved == nil {
				t.Fatal("expected config to load")
			}
			if runner.configPath != path {
				t.Errorf("expected configPath %q, got %q", path, runner.configPath)
			}
		})
	})
}

func TestInfoAction(t *testing.T) {
	t.Run("prints metadata as text", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Converter: &fakeConverter{info: &models.VideoInfo{Title: "Test Video", Duration: "3:05"}},
			Output:    output,
		})

		cmd := infoCommand(runner)
		err := cmd.Run(context.Background(), []string{"info", "https://www.youtube.com/watch?v=abc123"})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Test Video") {
			t.Errorf("expected title in output, got %q", output.String())
		}
		if !strings.Contains(output.String(), "3:05") {
			t.Errorf("expected duration in output, got %q", output.String())
		}
	})

	t.Run("prints metadata as JSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Converter: &fakeConverter{info: &models.VideoInfo{Title: "Test Video", Duration: "3:05"}},
			Output:    output,
		})

		cmd := infoCommand(runner)
		err := cmd.Run(context.Background(), []string{"info", "--json", "https://www.youtube.com/watch?v=abc123"})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"title": "Test Video"`) {
			t.Errorf("expected JSON title, got %q", output.String())
		}
	})

	t.Run("rejects non-YouTube URL", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Converter: &fakeConverter{},
			Output:    &bytes.Buffer{},
		})

		cmd := infoCommand(runner)
		err := cmd.Run(context.Background(), []string{"info", "https://example.com/watch"})

		if !errors.Is(err, shared.ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
	})

	t.Run("wraps probe failure", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Converter: &fakeConverter{err: shared.ErrUnavailable},
			Output:    &bytes.Buffer{},
		})

		cmd := infoCommand(runner)
		err := cmd.Run(context.Background(), []string{"info", "https://www.youtube.com/watch?v=abc123"})

		if !errors.Is(err, shared.ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestConvertAction(t *testing.T) {
	newOutcome := func(t *testing.T, title string) *convert.Outcome {
		t.Helper()
		path := filepath.Join(t.TempDir(), "audio_test.mp3")
		if err := os.WriteFile(path, []byte("mp3 data"), 0644); err != nil {
			t.Fatalf("failed to write temp file: %v", err)
		}
		return convert.NewOutcome(path, title, 0, nil)
	}

	t.Run("moves file into output directory", func(t *testing.T) {
		output := &bytes.Buffer{}
		outcome := newOutcome(t, "My Song")
		outputDir := t.TempDir()

		runner := NewRunner(RunnerOpts{
			Converter: &fakeConverter{outcome: outcome},
			Output:    output,
		})

		cmd := convertCommand(runner)
		err := cmd.Run(context.Background(), []string{
			"convert", "--output", outputDir, "--quality", "192k",
			"https://www.youtube.com/watch?v=abc123",
		})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		dest := filepath.Join(outputDir, "My Song.mp3")
		if _, err := os.Stat(dest); err != nil {
			t.Errorf("expected converted file at %s: %v", dest, err)
		}
		if !strings.Contains(output.String(), "My Song") {
			t.Errorf("expected title in output, got %q", output.String())
		}
		if !strings.Contains(output.String(), "Quality: 192k") {
			t.Errorf("expected quality in output, got %q", output.String())
		}
	})

	t.Run("reports conversion failure", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Converter: &fakeConverter{err: shared.ErrExhausted},
			Output:    &bytes.Buffer{},
		})

		cmd := convertCommand(runner)
		err := cmd.Run(context.Background(), []string{
			"convert", "https://www.youtube.com/watch?v=abc123",
		})

		if !errors.Is(err, shared.ErrExhausted) {
			t.Errorf("expected ErrExhausted, got %v", err)
		}
	})

	t.Run("rejects invalid quality", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Converter: &fakeConverter{},
			Output:    &bytes.Buffer{},
		})

		cmd := convertCommand(runner)
		err := cmd.Run(context.Background(), []string{
			"convert", "--quality", "999k", "https://www.youtube.com/watch?v=abc123",
		})

		if !errors.Is(err, shared.ErrInvalidQuality) {
			t.Errorf("expected ErrInvalidQuality, got %v", err)
		}
	})
}
