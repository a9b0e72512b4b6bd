package convert

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/services"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// scriptedDownloader replays a fixed sequence of results, one per call.
type scriptedDownloader struct {
	script []scriptedCall
	calls  int
}

type scriptedCall struct {
	stdout string
	err    error
	hang   bool // block until the attempt context expires
}

func (d *scriptedDownloader) Download(ctx context.Context, args []string) (*services.ProcessResult, error) {
	if d.calls >= len(d.script) {
		return nil, errors.New("unexpected extra call")
	}
	call := d.script[d.calls]
	d.calls++
	if call.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if call.err != nil {
		return nil, call.err
	}
	return &services.ProcessResult{Stdout: call.stdout}, nil
}

func processErr(stderr string) error {
	return &services.ProcessError{Tool: "yt-dlp", Stderr: stderr, Err: errors.New("exit status 1")}
}

func testStrategies(n int) []Strategy {
	names := []string{"web", "android", "ios"}
	out := make([]Strategy, n)
	for i := range out {
		out[i] = Strategy{Name: names[i], Args: []string{"--fake"}}
	}
	return out
}

func newTestExecutor(d services.Downloader, attemptTimeout time.Duration) *Executor {
	return NewExecutor(d, attemptTimeout, shared.NewLogger(io.Discard))
}

func TestExecutorRun(t *testing.T) {
	t.Run("first success stops the sequence", func(t *testing.T) {
		d := &scriptedDownloader{script: []scriptedCall{
			{stdout: "[download] Destination: /tmp/audio_1.m4a\n[ExtractAudio] Destination: /tmp/Never Gonna Give You Up.mp3\n"},
		}}
		result, err := newTestExecutor(d, time.Second).Run(context.Background(), newStateMachine(), testStrategies(3))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if d.calls != 1 {
			t.Errorf("calls = %d, want 1", d.calls)
		}
		if result.Strategy != "web" || result.Attempts != 1 {
			t.Errorf("result = %+v, want strategy web, attempts 1", result)
		}
		if result.Title != "Never Gonna Give You Up" {
			t.Errorf("Title = %q, want scraped title", result.Title)
		}
	})

	t.Run("retryable failure advances to the next strategy", func(t *testing.T) {
		d := &scriptedDownloader{script: []scriptedCall{
			{err: processErr("ERROR: connection reset by peer")},
			{stdout: "[download] Destination: /tmp/audio_2.webm\n"},
		}}
		result, err := newTestExecutor(d, time.Second).Run(context.Background(), newStateMachine(), testStrategies(3))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if result.Strategy != "android" || result.Attempts != 2 {
			t.Errorf("result = %+v, want strategy android, attempts 2", result)
		}
	})

	t.Run("unavailable aborts immediately", func(t *testing.T) {
		d := &scriptedDownloader{script: []scriptedCall{
			{err: processErr("ERROR: [youtube] abc: Private video")},
		}}
		_, err := newTestExecutor(d, time.Second).Run(context.Background(), newStateMachine(), testStrategies(3))
		if !errors.Is(err, shared.ErrUnavailable) {
			t.Fatalf("Run() error = %v, want ErrUnavailable", err)
		}
		if d.calls != 1 {
			t.Errorf("calls = %d, want 1 (no further strategies after unavailable)", d.calls)
		}
	})

	t.Run("blocked is retried then reported after exhaustion", func(t *testing.T) {
		d := &scriptedDownloader{script: []scriptedCall{
			{err: processErr("ERROR: HTTP Error 403: Forbidden")},
			{err: processErr("ERROR: timeout")},
			{err: processErr("ERROR: Sign in to confirm you're not a bot")},
		}}
		_, err := newTestExecutor(d, time.Second).Run(context.Background(), newStateMachine(), testStrategies(3))
		if !errors.Is(err, shared.ErrBlocked) {
			t.Fatalf("Run() error = %v, want ErrBlocked", err)
		}
		if d.calls != 3 {
			t.Errorf("calls = %d, want 3 (blocking does not short-circuit)", d.calls)
		}
	})

	t.Run("all retryable failures exhaust the sequence", func(t *testing.T) {
		d := &scriptedDownloader{script: []scriptedCall{
			{err: processErr("ERROR: one")},
			{err: processErr("ERROR: two")},
			{err: processErr("ERROR: three")},
		}}
		_, err := newTestExecutor(d, time.Second).Run(context.Background(), newStateMachine(), testStrategies(3))
		if !errors.Is(err, shared.ErrExhausted) {
			t.Fatalf("Run() error = %v, want ErrExhausted", err)
		}
	})

	t.Run("attempt timeout advances instead of failing", func(t *testing.T) {
		d := &scriptedDownloader{script: []scriptedCall{
			{hang: true},
			{stdout: "[download] Destination: /tmp/audio_3.m4a\n"},
		}}
		result, err := newTestExecutor(d, 20*time.Millisecond).Run(context.Background(), newStateMachine(), testStrategies(3))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if result.Attempts != 2 {
			t.Errorf("Attempts = %d, want 2", result.Attempts)
		}
	})

	t.Run("overall deadline dominates the attempt timeout", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		d := &scriptedDownloader{script: []scriptedCall{{hang: true}, {hang: true}, {hang: true}}}
		_, err := newTestExecutor(d, time.Minute).Run(ctx, newStateMachine(), testStrategies(3))
		if !errors.Is(err, shared.ErrOverallTimeout) {
			t.Fatalf("Run() error = %v, want ErrOverallTimeout", err)
		}
		if d.calls != 1 {
			t.Errorf("calls = %d, want 1 (no attempts after the budget expires)", d.calls)
		}
	})

	t.Run("client cancellation surfaces as context.Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d := &scriptedDownloader{}
		_, err := newTestExecutor(d, time.Second).Run(ctx, newStateMachine(), testStrategies(3))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() error = %v, want context.Canceled", err)
		}
		if d.calls != 0 {
			t.Errorf("calls = %d, want 0", d.calls)
		}
	})

	t.Run("missing binary is terminal", func(t *testing.T) {
		d := &scriptedDownloader{script: []scriptedCall{
			{err: &services.ProcessError{Tool: "yt-dlp", Err: exec.ErrNotFound}},
		}}
		_, err := newTestExecutor(d, time.Second).Run(context.Background(), newStateMachine(), testStrategies(3))
		if !errors.Is(err, shared.ErrToolNotFound) {
			t.Fatalf("Run() error = %v, want ErrToolNotFound", err)
		}
		if d.calls != 1 {
			t.Errorf("calls = %d, want 1", d.calls)
		}
	})

	t.Run("empty strategy list is rejected", func(t *testing.T) {
		_, err := newTestExecutor(&scriptedDownloader{}, time.Second).Run(context.Background(), newStateMachine(), nil)
		if !errors.Is(err, shared.ErrInternal) {
			t.Fatalf("Run() error = %v, want ErrInternal", err)
		}
	})
}

func TestScrapeTitle(t *testing.T) {
	cases := []struct {
		name   string
		stdout string
		want   string
	}{
		{
			name:   "no destination line",
			stdout: "[youtube] Extracting URL\n",
			want:   "",
		},
		{
			name:   "download destination",
			stdout: "[download] Destination: /tmp/My Song.m4a\n",
			want:   "My Song",
		},
		{
			name:   "extract audio destination wins as the last line",
			stdout: "[download] Destination: /tmp/audio_1.m4a\n[ExtractAudio] Destination: /tmp/My Song.mp3\n",
			want:   "My Song",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scrapeTitle(tc.stdout); got != tc.want {
				t.Errorf("scrapeTitle() = %q, want %q", got, tc.want)
			}
		})
	}
}
