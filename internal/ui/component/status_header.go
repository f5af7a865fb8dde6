package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/domain"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

// StatusHeader shows the app title, the connected account and the active network.
type StatusHeader struct {
	account string
	network string
	style   statusHeaderStyle
	width   int
}

type statusHeaderStyle struct {
	container    lipgloss.Style
	title        lipgloss.Style
	account      lipgloss.Style
	connected    lipgloss.Style
	disconnected lipgloss.Style
}

// NewStatusHeader creates a new status header component
func NewStatusHeader() *StatusHeader {
	palette := style.DefaultPalette()

	return &StatusHeader{
		style: statusHeaderStyle{
			container: lipgloss.NewStyle().
				Foreground(palette.Text).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(0, 2).
				MarginBottom(1),
			title: lipgloss.NewStyle().
				Foreground(palette.Primary).
				Bold(true),
			account: lipgloss.NewStyle().
				Foreground(palette.TextSecondary),
			connected: lipgloss.NewStyle().
				Foreground(palette.Success).
				Bold(true),
			disconnected: lipgloss.NewStyle().
				Foreground(palette.Error).
				Bold(true),
		},
	}
}

// SetAccount updates the account display. An empty account shows as disconnected.
func (sh *StatusHeader) SetAccount(account string) {
	sh.account = account
}

func (sh *StatusHeader) SetNetwork(name string) {
	sh.network = name
}

// SetWidth sets the component width for responsive layout
func (sh *StatusHeader) SetWidth(width int) {
	sh.width = width
	if width > 4 {
		sh.style.container = sh.style.container.Width(width - 4)
	}
}

// View renders the status header
func (sh *StatusHeader) View() string {
	var wallet string
	if sh.account == "" {
		wallet = sh.style.disconnected.Render("● Not connected")
	} else {
		wallet = sh.style.connected.Render("● ") +
			sh.style.account.Render(domain.ShortAddress(sh.account))
	}

	network := sh.network
	if network == "" {
		network = "unknown network"
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Left,
		sh.style.title.Render("Launchpad"),
		" | ",
		wallet,
		" | ",
		sh.style.account.Render(fmt.Sprintf("Network: %s", network)),
	)
	return sh.style.container.Render(content)
}

// GetHeight returns the component height for layout calculations
func (sh *StatusHeader) GetHeight() int {
	return 4
}
