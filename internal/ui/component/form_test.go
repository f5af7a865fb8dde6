package component

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(f *Form, text string) {
	for _, r := range text {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestFormTabCyclesFields(t *testing.T) {
	f := NewForm().
		AddField("name", FieldTypeText, "Name", true, "").
		AddField("symbol", FieldTypeText, "Symbol", true, "").
		AddCheckbox("flag", "Flag", false)

	assert.Equal(t, "name", f.Focused())
	f.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, "symbol", f.Focused())
	f.Update(keyMsg(tea.KeyEnter))
	assert.Equal(t, "flag", f.Focused())
	f.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, "name", f.Focused())
	f.Update(keyMsg(tea.KeyShiftTab))
	assert.Equal(t, "flag", f.Focused())
}

func TestFormTypingUpdatesValue(t *testing.T) {
	f := NewForm().AddField("name", FieldTypeText, "Name", true, "")
	f.SetError("name", "bad")

	typeText(f, "Moon")
	assert.Equal(t, "Moon", f.GetValue("name"))
	assert.NotContains(t, f.View(), "bad")
}

func TestFormSelectAndCheckbox(t *testing.T) {
	f := NewForm().
		AddSelect("currency", "Currency", []string{"Eth Sepolia", "Linea Sepolia"}).
		AddCheckbox("whitelist", "Whitelist", false)

	assert.Equal(t, "Eth Sepolia", f.GetValue("currency"))
	f.Update(keyMsg(tea.KeyDown))
	assert.Equal(t, "Linea Sepolia", f.GetValue("currency"))
	f.Update(keyMsg(tea.KeyDown))
	assert.Equal(t, "Eth Sepolia", f.GetValue("currency"))
	f.Update(keyMsg(tea.KeyUp))
	assert.Equal(t, "Linea Sepolia", f.GetValue("currency"))

	f.SetFieldValue("currency", "Eth Sepolia")
	f.Update(keyMsg(tea.KeyEnter))
	assert.Equal(t, "Linea Sepolia", f.GetValue("currency"), "enter cycles a select")

	f.Focus("whitelist")
	assert.False(t, f.Checked("whitelist"))
	f.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, f.Checked("whitelist"))
	assert.Contains(t, f.View(), "☑ Whitelist")
}

func TestFormValidateRequired(t *testing.T) {
	f := NewForm().
		AddField("name", FieldTypeText, "Name", true, "").
		AddField("website", FieldTypeText, "Website", false, "")

	assert.False(t, f.Validate())
	assert.Contains(t, f.View(), "This field is required")

	f.SetFieldValue("name", "Launch")
	assert.True(t, f.Validate())
}

func TestFormRemoveFieldKeepsFocus(t *testing.T) {
	f := NewForm().
		AddField("a", FieldTypeText, "A", false, "").
		AddField("b", FieldTypeText, "B", false, "").
		AddField("c", FieldTypeText, "C", false, "")

	f.Focus("c")
	f.RemoveField("c")
	require.Equal(t, 2, f.Len())
	assert.Equal(t, "b", f.Focused())

	f.RemoveField("missing")
	assert.Equal(t, 2, f.Len())
}

func TestFormReset(t *testing.T) {
	f := NewForm().
		AddField("name", FieldTypeText, "Name", true, "").
		AddSelect("currency", "Currency", []string{"A", "B"}).
		AddCheckbox("flag", "Flag", true)

	f.SetFieldValue("name", "x")
	f.SetFieldValue("currency", "B")
	f.Reset()

	assert.Equal(t, map[string]string{"name": "", "currency": "A", "flag": "false"}, f.GetValues())
	assert.Equal(t, "name", f.Focused())
}
