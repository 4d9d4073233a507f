package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/sdq/internal/domain"
	"github.com/h0rv/sdq/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQueueURL = "https://x.atlassian.net/jira/servicedesk/projects/SD/queues/custom/42"

// mockFetcher returns a canned result and counts calls
type mockFetcher struct {
	result domain.Result
	calls  int
	req    queue.Request
}

func (m *mockFetcher) Fetch(ctx context.Context, req queue.Request) domain.Result {
	m.calls++
	m.req = req
	return m.result
}

func testQueue() domain.Queue {
	return domain.Queue{
		Name:          "My Queue",
		JQL:           "project = SD AND status = Open",
		ServiceDeskID: "SD",
		QueueID:       "42",
		IssueTypes:    []json.RawMessage{json.RawMessage(`{"id":"1","name":"Incident"}`)},
		Columns:       []json.RawMessage{json.RawMessage(`"key"`), json.RawMessage(`"summary"`)},
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestAppModel_FetchCommandCallsFetcherOnce(t *testing.T) {
	f := &mockFetcher{result: domain.Succeeded(testQueue())}
	m := NewAppModel(f, context.Background(), testQueueURL)

	msg := m.fetch()()

	done, ok := msg.(FetchDoneMsg)
	require.True(t, ok)
	assert.True(t, done.Result.OK())
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, testQueueURL, f.req.QueueURL)
}

func TestAppModel_LoadingView(t *testing.T) {
	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)

	assert.Equal(t, ScreenLoading, m.Screen())
	assert.Contains(t, m.View(), "Fetching queue")

	_, done := m.Result()
	assert.False(t, done)
}

func TestAppModel_SuccessScreen(t *testing.T) {
	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, FetchDoneMsg{Result: domain.Succeeded(testQueue())})

	assert.Equal(t, ScreenQueue, m.Screen())
	view := m.View()
	assert.Contains(t, view, "My Queue")
	assert.Contains(t, view, "project = SD AND status = Open")
	assert.Contains(t, view, "Incident")
	assert.Contains(t, view, "summary")

	result, done := m.Result()
	assert.True(t, done)
	assert.True(t, result.OK())
}

func TestAppModel_ErrorScreen(t *testing.T) {
	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)
	m, _ = update(t, m, FetchDoneMsg{Result: domain.Failed(domain.ErrorKindUnknownError, "connection refused", domain.AccessHint)})

	assert.Equal(t, ScreenError, m.Screen())
	view := m.View()
	assert.Contains(t, view, "connection refused")
	assert.Contains(t, view, "you have access")
}

func TestAppModel_ToggleRaw(t *testing.T) {
	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)
	m, _ = update(t, m, FetchDoneMsg{Result: domain.Succeeded(testQueue())})

	m, _ = update(t, m, keyMsg("y"))
	assert.Contains(t, m.View(), `"queueName": "My Queue"`)

	m, _ = update(t, m, keyMsg("y"))
	assert.NotContains(t, m.View(), `"queueName"`)
}

func TestAppModel_RawIgnoredWhileLoading(t *testing.T) {
	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)
	m, _ = update(t, m, keyMsg("y"))
	assert.False(t, m.showRaw)
}

func TestAppModel_OpenInBrowser(t *testing.T) {
	var opened string
	old := openURL
	openURL = func(u string) error {
		opened = u
		return nil
	}
	defer func() { openURL = old }()

	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)
	m, _ = update(t, m, FetchDoneMsg{Result: domain.Succeeded(testQueue())})

	m, cmd := update(t, m, keyMsg("o"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, testQueueURL, opened)
	assert.Contains(t, m.View(), "Opened in browser")
}

func TestAppModel_OpenInBrowserFailure(t *testing.T) {
	old := openURL
	openURL = func(string) error { return errors.New("no display") }
	defer func() { openURL = old }()

	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)
	m, _ = update(t, m, FetchDoneMsg{Result: domain.Succeeded(testQueue())})

	m, cmd := update(t, m, keyMsg("o"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Contains(t, m.View(), "no display")
}

func TestAppModel_OpenDisabledOnError(t *testing.T) {
	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)
	m, _ = update(t, m, FetchDoneMsg{Result: domain.Failed(domain.ErrorKindParseError, "bad", "")})

	_, cmd := update(t, m, keyMsg("o"))
	assert.Nil(t, cmd)
}

func TestAppModel_Quit(t *testing.T) {
	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)

	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppModel_HelpToggle(t *testing.T) {
	m := NewAppModel(&mockFetcher{}, context.Background(), testQueueURL)
	m, _ = update(t, m, FetchDoneMsg{Result: domain.Succeeded(testQueue())})

	assert.False(t, m.help.Expanded())
	m, _ = update(t, m, keyMsg("?"))
	assert.True(t, m.help.Expanded())
	assert.Contains(t, m.View(), "open queue in browser")
}
