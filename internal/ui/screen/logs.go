package screen

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/router"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

const logRefreshInterval = time.Second

type logTickMsg time.Time

// LogsScreen shows the in-memory log buffer and follows new entries.
type LogsScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	viewer  *component.LogViewer
	helpBar *component.HelpBar
}

func NewLogsScreen(svc *ui.Services) *LogsScreen {
	keyMap := ui.DefaultKeyMap()
	return &LogsScreen{
		keyMap:  keyMap,
		viewer:  component.NewLogViewer(svc.Logs, 0),
		helpBar: component.NewHelpBar(keyMap.ContextualHelp(ui.RouteLogs)...),
	}
}

func (s *LogsScreen) Init() tea.Cmd {
	s.viewer.Refresh()
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(logRefreshInterval, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case logTickMsg:
		s.viewer.Refresh()
		return s, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.FilterInfo):
			s.viewer.ToggleLevel("info")
		case key.Matches(msg, s.keyMap.FilterWarn):
			s.viewer.ToggleLevel("warn")
		case key.Matches(msg, s.keyMap.FilterError):
			s.viewer.ToggleLevel("error")
		default:
			return s, s.viewer.Update(msg)
		}
	}
	return s, nil
}

func (s *LogsScreen) View() string {
	return frame(s.width, "Logs", s.viewer.View(), s.helpBar, style.MutedStyle.Render(s.viewer.FilterStatus()))
}

func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewer.SetSize(width-4, height-12)
}
