package component

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/logger"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

// LogFilter defines what log levels to show
type LogFilter struct {
	ShowError   bool
	ShowWarning bool
	ShowInfo    bool
	ShowDebug   bool
}

// LogViewer renders the in-memory log buffer in a scrolling viewport.
type LogViewer struct {
	buffer   *logger.LogBuffer
	viewport viewport.Model
	filter   LogFilter
	style    logViewerStyle
	limit    int
	follow   bool
}

type logViewerStyle struct {
	container lipgloss.Style
	timestamp lipgloss.Style
	fields    lipgloss.Style
	error     lipgloss.Style
	warning   lipgloss.Style
	info      lipgloss.Style
	debug     lipgloss.Style
}

// NewLogViewer creates a viewer over buffer showing at most limit entries.
func NewLogViewer(buffer *logger.LogBuffer, limit int) *LogViewer {
	palette := style.DefaultPalette()

	return &LogViewer{
		buffer: buffer,
		limit:  limit,
		follow: true,
		filter: LogFilter{
			ShowError:   true,
			ShowWarning: true,
			ShowInfo:    true,
		},
		style: logViewerStyle{
			container: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Info).
				Padding(0, 1),
			timestamp: lipgloss.NewStyle().Foreground(palette.TextMuted),
			fields:    lipgloss.NewStyle().Foreground(palette.TextSecondary),
			error:     lipgloss.NewStyle().Foreground(palette.Error).Bold(true),
			warning:   lipgloss.NewStyle().Foreground(palette.Warning).Bold(true),
			info:      lipgloss.NewStyle().Foreground(palette.Info),
			debug:     lipgloss.NewStyle().Foreground(palette.TextMuted),
		},
		viewport: viewport.New(60, 10),
	}
}

// SetSize sets the component dimensions
func (lv *LogViewer) SetSize(width, height int) {
	lv.viewport.Width = max(width-4, 10)
	lv.viewport.Height = max(height-2, 2)
	lv.Refresh()
}

// Filter returns the active level filter.
func (lv *LogViewer) Filter() LogFilter {
	return lv.filter
}

// ToggleLevel flips one level on or off.
func (lv *LogViewer) ToggleLevel(level string) {
	switch level {
	case "error":
		lv.filter.ShowError = !lv.filter.ShowError
	case "warn":
		lv.filter.ShowWarning = !lv.filter.ShowWarning
	case "info":
		lv.filter.ShowInfo = !lv.filter.ShowInfo
	case "debug":
		lv.filter.ShowDebug = !lv.filter.ShowDebug
	}
	lv.Refresh()
}

// Update scrolls the viewport. Scrolling up stops following new entries.
func (lv *LogViewer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	lv.viewport, cmd = lv.viewport.Update(msg)
	lv.follow = lv.viewport.AtBottom()
	return cmd
}

// Refresh reloads the buffer contents.
func (lv *LogViewer) Refresh() {
	if lv.buffer == nil {
		lv.viewport.SetContent("No log buffer available")
		return
	}

	var lines []string
	for _, entry := range lv.buffer.GetRecentLogs(lv.limit) {
		if lv.shows(entry.Level) {
			lines = append(lines, lv.format(entry))
		}
	}
	if len(lines) == 0 {
		lv.viewport.SetContent("No logs match current filter")
		return
	}
	lv.viewport.SetContent(strings.Join(lines, "\n"))
	if lv.follow {
		lv.viewport.GotoBottom()
	}
}

func (lv *LogViewer) shows(level string) bool {
	switch strings.ToLower(level) {
	case "error", "dpanic", "panic", "fatal":
		return lv.filter.ShowError
	case "warning", "warn":
		return lv.filter.ShowWarning
	case "debug":
		return lv.filter.ShowDebug
	default:
		return lv.filter.ShowInfo
	}
}

func (lv *LogViewer) format(entry logger.LogEntry) string {
	ts := lv.style.timestamp.Render(entry.Timestamp.Format("15:04:05"))

	var msg string
	switch strings.ToLower(entry.Level) {
	case "error", "dpanic", "panic", "fatal":
		msg = lv.style.error.Render(entry.Message)
	case "warning", "warn":
		msg = lv.style.warning.Render(entry.Message)
	case "debug":
		msg = lv.style.debug.Render(entry.Message)
	default:
		msg = lv.style.info.Render(entry.Message)
	}

	line := ts + " " + msg
	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, entry.Fields[k])
		}
		line += " " + lv.style.fields.Render(strings.Join(parts, " "))
	}
	return line
}

// FilterStatus describes the visible levels.
func (lv *LogViewer) FilterStatus() string {
	var active []string
	if lv.filter.ShowError {
		active = append(active, "Error")
	}
	if lv.filter.ShowWarning {
		active = append(active, "Warning")
	}
	if lv.filter.ShowInfo {
		active = append(active, "Info")
	}
	if lv.filter.ShowDebug {
		active = append(active, "Debug")
	}
	if len(active) == 0 {
		return "No filters active"
	}
	return "Showing: " + strings.Join(active, ", ")
}

// View renders the log viewer
func (lv *LogViewer) View() string {
	return lv.style.container.Render(lv.viewport.View())
}
