package tui

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/sdq/internal/domain"
	"github.com/h0rv/sdq/internal/queue"
	"github.com/pkg/browser"
)

// openURL is swapped out in tests.
var openURL = browser.OpenURL

// AppScreen represents the different screens in the application flow.
type AppScreen int

const (
	ScreenLoading AppScreen = iota
	ScreenQueue
	ScreenError
)

// Fetcher performs the single queue lookup.
type Fetcher interface {
	Fetch(ctx context.Context, req queue.Request) domain.Result
}

// AppModel is the root Bubble Tea model.
// It runs one fetch, then shows the queue or the failure.
type AppModel struct {
	// Dependencies
	fetcher Fetcher
	ctx     context.Context

	queueURL string

	// Current state
	currentScreen AppScreen
	result        domain.Result
	done          bool
	showRaw       bool
	statusMsg     string

	// UI components
	spinner spinner.Model
	keys    KeyMap
	help    HelpModel

	width int
}

// NewAppModel creates a model that fetches queueURL once started.
func NewAppModel(fetcher Fetcher, ctx context.Context, queueURL string) AppModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	keys := DefaultKeyMap()
	return AppModel{
		fetcher:       fetcher,
		ctx:           ctx,
		queueURL:      queueURL,
		currentScreen: ScreenLoading,
		spinner:       sp,
		keys:          keys,
		help:          NewHelpModel(keys),
	}
}

// Init starts the spinner and the fetch.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

// Result returns the fetch result and whether the fetch has completed.
func (m AppModel) Result() (domain.Result, bool) {
	return m.result, m.done
}

// Screen returns the screen currently shown.
func (m AppModel) Screen() AppScreen {
	return m.currentScreen
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.currentScreen != ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FetchDoneMsg:
		m.result = msg.Result
		m.done = true
		if msg.Result.OK() {
			m.currentScreen = ScreenQueue
		} else {
			m.currentScreen = ScreenError
		}
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Failed to open browser: %v", msg.err)
		} else {
			m.statusMsg = "Opened in browser"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m AppModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.currentScreen != ScreenQueue {
			return m, nil
		}
		return m, m.openInBrowser()

	case key.Matches(msg, m.keys.Raw):
		if m.currentScreen == ScreenLoading {
			return m, nil
		}
		m.showRaw = !m.showRaw
		return m, nil
	}

	return m, nil
}

// View renders the current screen.
func (m AppModel) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var body string
	switch m.currentScreen {
	case ScreenLoading:
		return m.spinner.View() + " Fetching queue...\n\nPress q to quit"
	default:
		if m.showRaw {
			data, err := json.MarshalIndent(m.result, "", "  ")
			if err != nil {
				body = ErrorStyle.Render(err.Error())
			} else {
				body = string(data)
			}
		} else {
			body = RenderResult(m.result, width)
		}
	}

	if m.statusMsg != "" {
		body += "\n\n" + HintStyle.Render(m.statusMsg)
	}
	return body + "\n" + m.help.View(width)
}

// fetch creates a command that performs the queue lookup.
func (m AppModel) fetch() tea.Cmd {
	return func() tea.Msg {
		return FetchDoneMsg{Result: m.fetcher.Fetch(m.ctx, queue.Request{QueueURL: m.queueURL})}
	}
}

func (m AppModel) openInBrowser() tea.Cmd {
	u := m.queueURL
	return func() tea.Msg {
		return browserOpenedMsg{err: openURL(u)}
	}
}
