package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

// Steps renders a numbered progress line such as "✓ 1 Setup › ● 2 Review".
type Steps struct {
	labels  []string
	current int

	done    lipgloss.Style
	active  lipgloss.Style
	pending lipgloss.Style
}

func NewSteps(labels ...string) *Steps {
	palette := style.DefaultPalette()
	return &Steps{
		labels:  labels,
		done:    lipgloss.NewStyle().Foreground(palette.Success),
		active:  lipgloss.NewStyle().Foreground(palette.Primary).Bold(true),
		pending: lipgloss.NewStyle().Foreground(palette.TextMuted),
	}
}

// SetCurrent marks step i (zero based) as the active one.
func (s *Steps) SetCurrent(i int) {
	s.current = i
}

func (s *Steps) View() string {
	parts := make([]string, len(s.labels))
	for i, label := range s.labels {
		switch {
		case i < s.current:
			parts[i] = s.done.Render(fmt.Sprintf("✓ %d %s", i+1, label))
		case i == s.current:
			parts[i] = s.active.Render(fmt.Sprintf("● %d %s", i+1, label))
		default:
			parts[i] = s.pending.Render(fmt.Sprintf("○ %d %s", i+1, label))
		}
	}
	return strings.Join(parts, s.pending.Render(" › "))
}
