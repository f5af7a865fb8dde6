package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/ui/screen"
)

func newTestApp(t *testing.T) *AppModel {
	t.Helper()
	m := NewAppModel(&ui.Services{Logger: zaptest.NewLogger(t)})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestAppNavigation(t *testing.T) {
	m := newTestApp(t)
	require.Equal(t, 1, m.router.Depth())

	m.Update(ui.RouterMsg{To: ui.RouteSales})
	assert.Equal(t, 2, m.router.Depth())
	assert.IsType(t, &screen.SalesScreen{}, m.router.Current())

	m.Update(ui.RouterMsg{To: ui.RouteSaleDetail, Param: "sale1"})
	assert.Equal(t, 3, m.router.Depth())
	assert.IsType(t, &screen.SaleDetailScreen{}, m.router.Current())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 2, m.router.Depth())

	m.Update(ui.RouterMsg{To: ui.RouteMainMenu})
	assert.Equal(t, 2, m.router.Depth())
	assert.IsType(t, &screen.MainMenuScreen{}, m.router.Current())
}

func TestAppEveryMenuRouteOpens(t *testing.T) {
	for _, item := range screen.MainMenuItems {
		m := newTestApp(t)
		m.Update(ui.RouterMsg{To: item.Route})
		assert.Equal(t, 2, m.router.Depth(), item.Label)
		assert.NotEmpty(t, m.View(), item.Label)
	}
}

func TestAppQuits(t *testing.T) {
	m := newTestApp(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppIgnoresUnknownRoute(t *testing.T) {
	m := newTestApp(t)
	_, cmd := m.Update(ui.RouterMsg{To: ui.Route(99)})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}
