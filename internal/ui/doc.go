// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for one-off conversions:
//  1. [InputView] : Paste or type a video URL
//  2. [QualityView] : Pick the output bitrate
//  3. [ConvertingView] : Wait while the probe and download run
//  4. [ResultView] : Display the produced file, or the failure with retry guidance
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via package-private msg types.
// The conversion itself runs inside a tea.Cmd so the event loop never blocks on the external tools.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
