package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/convert"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/formatter"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	InputView ViewState = iota
	QualityView
	ConvertingView
	ResultView
)

// Converter runs conversions for the TUI. [convert.Orchestrator] is the
// production implementation.
type Converter interface {
	Convert(ctx context.Context, req *models.ConvertRequest) (*convert.Outcome, error)
	Info(ctx context.Context, url string) (*models.VideoInfo, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	converter Converter
	outputDir string
	width     int
	height    int

	urlInput    textinput.Model
	qualityList list.Model
	spin        spinner.Model

	url     string
	info    *models.VideoInfo
	summary *formatter.ConversionSummary
	err     error

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model. Finished files are moved into outputDir.
func NewModel(ctx context.Context, converter Converter, outputDir string) *Model {
	input := textinput.New()
	input.Placeholder = "https://www.youtube.com/watch?v=..."
	input.Focus()
	input.CharLimit = 200
	input.Width = 60

	qualities := list.New(qualityItems(), list.NewDefaultDelegate(), 0, 0)
	qualities.Title = "Audio Quality"
	qualities.SetShowStatusBar(false)
	qualities.SetFilteringEnabled(false)
	qualities.Select(1) // default quality

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	if outputDir == "" {
		outputDir = "."
	}

	return &Model{
		ctx:         ctx,
		view:        InputView,
		converter:   converter,
		outputDir:   outputDir,
		urlInput:    input,
		qualityList: qualities,
		spin:        spin,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init focuses the URL input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.qualityList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case InputView:
			return m.handleInputKeys(msg)
		case QualityView:
			return m.handleQualityKeys(msg)
		case ConvertingView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case infoFetchedMsg:
		if msg.err == nil {
			m.info = msg.info
		}
		return m, nil

	case conversionDoneMsg:
		m.summary = msg.summary
		m.err = msg.err
		m.view = ResultView
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case InputView:
		return m.renderInput()
	case QualityView:
		return m.renderQuality()
	case ConvertingView:
		return m.renderConverting()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		url := m.urlInput.Value()
		if _, err := models.ParseConvertRequest(url, ""); err != nil {
			m.err = err
			return m, nil
		}
		m.url = url
		m.err = nil
		m.view = QualityView
		return m, m.fetchInfo()
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m *Model) handleQualityKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = InputView
		return m, nil
	case "enter":
		selected := m.qualityList.SelectedItem()
		if item, ok := selected.(qualityItem); ok {
			m.view = ConvertingView
			return m, tea.Batch(m.spin.Tick, m.startConversion(item.quality))
		}
	}

	var cmd tea.Cmd
	m.qualityList, cmd = m.qualityList.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		m.view = InputView
		m.url = ""
		m.info = nil
		m.summary = nil
		m.err = nil
		m.urlInput.SetValue("")
		m.urlInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) fetchInfo() tea.Cmd {
	url := m.url
	return func() tea.Msg {
		info, err := m.converter.Info(m.ctx, url)
		return infoFetchedMsg{info: info, err: err}
	}
}

func (m *Model) startConversion(quality models.Quality) tea.Cmd {
	url := m.url
	return func() tea.Msg {
		req, err := models.ParseConvertRequest(url, string(quality))
		if err != nil {
			return conversionDoneMsg{err: err}
		}

		started := time.Now()
		outcome, err := m.converter.Convert(m.ctx, req)
		if err != nil {
			return conversionDoneMsg{err: err}
		}

		dest := filepath.Join(m.outputDir, outcome.Filename)
		size := int64(0)
		if info, err := os.Stat(outcome.FilePath); err == nil {
			size = info.Size()
		}
		if err := os.Rename(outcome.FilePath, dest); err != nil {
			outcome.Discard()
			return conversionDoneMsg{err: fmt.Errorf("failed to move output file: %w", err)}
		}

		return conversionDoneMsg{summary: &formatter.ConversionSummary{
			Title:     outcome.Title,
			FilePath:  dest,
			SizeBytes: size,
			Quality:   req.Quality,
			Elapsed:   time.Since(started),
		}}
	}
}

func (m *Model) renderInput() string {
	title := styles.title.Render("EcoTube — YouTube to MP3")
	prompt := "Paste a YouTube URL and press enter:"

	var errLine string
	if m.err != nil {
		errLine = "\n" + styles.err.Render("Not a valid YouTube URL")
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s", title, prompt, m.urlInput.View(), errLine, helpView)
}

func (m *Model) renderQuality() string {
	var infoLine string
	if m.info != nil {
		infoLine = styles.help.Render(fmt.Sprintf("%s · %s", m.info.Title, m.info.Duration)) + "\n\n"
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s%s\n\n%s", infoLine, m.qualityList.View(), helpView)
}

func (m *Model) renderConverting() string {
	title := styles.title.Render("Converting")
	name := m.url
	if m.info != nil {
		name = m.info.Title
	}
	return fmt.Sprintf("%s\n%s %s\n\n%s", title, m.spin.View(), name,
		styles.help.Render("This can take up to half a minute."))
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})

	if m.err != nil {
		title := styles.err.Render("✗ Conversion failed")
		return fmt.Sprintf("%s\n\n%v\n\n%s", title, m.err, helpView)
	}

	title := styles.ok.Render("✓ Conversion complete")
	body := string(formatter.SummaryToText(m.summary))
	return fmt.Sprintf("%s\n\n%s\n%s", title, body, helpView)
}
