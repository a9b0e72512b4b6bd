// Package services wraps the external tools the conversion core depends on:
// the yt-dlp downloader and, indirectly, the ffmpeg transcoder it invokes.
//
// # Runner
//
// [Runner] is the only seam between the rest of the codebase and os/exec.
// [ExecRunner] is the production implementation; tests substitute a scripted
// fake. A run is argv in, exit code plus captured stdout/stderr out — the
// tools are opaque beyond that.
//
// # YTDLP
//
// [YTDLP] builds the two call shapes the core needs:
//   - Probe: metadata only (--get-title --get-duration), used to fail fast
//     on private or region-locked videos before spending the time budget.
//   - Download: a full extraction attempt with a strategy-prepared argv.
//
// Operator-supplied browser headers (shared.RequestHeaders) are appended to
// every invocation when configured.
//
// # Error Handling
//
// Failed invocations surface as [ProcessError], which carries the captured
// stderr for the classification table in internal/convert. Raw stderr is
// logged but never returned to API callers.
package services
