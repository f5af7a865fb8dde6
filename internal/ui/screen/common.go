package screen

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/component"
	"github.com/rovshanmuradov/launchpad/internal/ui/style"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

// run executes fn off the UI goroutine with a bounded context. A returned
// error becomes ui.ErrorMsg titled title.
func run(svc *ui.Services, title string, fn func(ctx context.Context) (tea.Msg, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := svc.Context()
		defer cancel()
		msg, err := fn(ctx)
		if err != nil {
			return ui.ErrorMsg{Error: err, Title: title}
		}
		return msg
	}
}

// account resolves the connected account inside a command.
func account(ctx context.Context, svc *ui.Services) (string, error) {
	return wallet.RequireAccount(ctx, svc.Wallet)
}

// notice is the one-line result banner shared by the screens.
type notice struct {
	text  string
	isErr bool
}

func (n *notice) error(err error) {
	n.text, n.isErr = errorText(err), true
}

func (n *notice) success(text string) {
	n.text, n.isErr = text, false
}

func (n *notice) clear() {
	n.text = ""
}

func (n notice) View() string {
	if n.text == "" {
		return ""
	}
	if n.isErr {
		return style.ErrorStyle.Render("✗ " + n.text)
	}
	return style.SuccessStyle.Render("✓ " + n.text)
}

func errorText(err error) string {
	switch {
	case errors.Is(err, wallet.ErrWalletNotConnected):
		return "Please connect your wallet first (Network screen)"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	}
	return err.Error()
}

// busy is a spinner shown while a command is in flight.
type busy struct {
	spinner spinner.Model
	label   string
	active  bool
}

func newBusy() busy {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.DefaultPalette().Primary)
	return busy{spinner: s}
}

func (b *busy) start(label string) tea.Cmd {
	b.label, b.active = label, true
	return b.spinner.Tick
}

func (b *busy) stop() {
	b.active = false
}

func (b *busy) update(msg tea.Msg) tea.Cmd {
	if !b.active {
		return nil
	}
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(msg)
	return cmd
}

func (b busy) View() string {
	if !b.active {
		return ""
	}
	return b.spinner.View() + " " + style.MutedStyle.Render(b.label)
}

// frame lays out a screen: title, body, status lines and the help bar.
func frame(width int, title string, body string, help *component.HelpBar, status ...string) string {
	var content strings.Builder
	content.WriteString(style.TitleStyle.Render(title))
	content.WriteString("\n")
	content.WriteString(body)
	for _, s := range status {
		if s != "" {
			content.WriteString("\n\n")
			content.WriteString(s)
		}
	}
	content.WriteString("\n")
	content.WriteString(help.SetWidth(width).View())
	return style.ContainerStyle.Render(content.String())
}
