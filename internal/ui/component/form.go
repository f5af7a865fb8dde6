package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

// FieldType represents the type of form field
type FieldType int

const (
	FieldTypeText FieldType = iota
	FieldTypeNumber
	FieldTypeSelect
	FieldTypeCheckbox
)

// FormField represents a single form field
type FormField struct {
	Name        string
	Label       string
	Type        FieldType
	Value       string
	Options     []string // For select fields
	Placeholder string
	Required    bool
	Error       string

	textInput   textinput.Model
	selectedIdx int
}

func (f *FormField) editable() bool {
	return f.Type == FieldTypeText || f.Type == FieldTypeNumber
}

// Form is a vertical list of inputs with tab navigation. Values are kept as
// typed; validation belongs to the caller.
type Form struct {
	fields     []FormField
	focusIndex int
	width      int
	height     int

	labelStyle    lipgloss.Style
	inputStyle    lipgloss.Style
	focusedStyle  lipgloss.Style
	errorStyle    lipgloss.Style
	checkboxStyle lipgloss.Style
}

// NewForm creates a new form component
func NewForm() *Form {
	palette := style.DefaultPalette()

	return &Form{
		labelStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true).
			MarginRight(1),

		inputStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		focusedStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error),

		checkboxStyle: lipgloss.NewStyle().
			Foreground(palette.Primary),
	}
}

// AddField adds a text or number input.
func (f *Form) AddField(name string, fieldType FieldType, label string, required bool, placeholder string) *Form {
	ti := textinput.New()
	ti.Width = 40
	ti.Placeholder = placeholder
	if fieldType == FieldTypeNumber && placeholder == "" {
		ti.Placeholder = "0"
	}

	f.fields = append(f.fields, FormField{
		Name:        name,
		Label:       label,
		Type:        fieldType,
		Placeholder: placeholder,
		Required:    required,
		textInput:   ti,
	})
	if len(f.fields) == 1 {
		f.focus(0)
	}
	return f
}

// AddSelect adds a select field preset to its first option.
func (f *Form) AddSelect(name, label string, options []string) *Form {
	f.AddField(name, FieldTypeSelect, label, true, "")
	f.SetFieldOptions(name, options)
	return f
}

// AddCheckbox adds a boolean field whose value is "true" or "false".
func (f *Form) AddCheckbox(name, label string, checked bool) *Form {
	f.AddField(name, FieldTypeCheckbox, label, false, "")
	f.fields[len(f.fields)-1].Value = boolValue(checked)
	return f
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (f *Form) index(name string) int {
	for i := range f.fields {
		if f.fields[i].Name == name {
			return i
		}
	}
	return -1
}

// RemoveField deletes a field, keeping focus on a neighbour.
func (f *Form) RemoveField(name string) *Form {
	i := f.index(name)
	if i < 0 {
		return f
	}
	f.fields = append(f.fields[:i], f.fields[i+1:]...)
	if len(f.fields) == 0 {
		f.focusIndex = 0
		return f
	}
	next := f.focusIndex
	if next >= len(f.fields) {
		next = len(f.fields) - 1
	}
	f.focus(next)
	return f
}

// SetFieldValue sets the value of a field
func (f *Form) SetFieldValue(name, value string) *Form {
	i := f.index(name)
	if i < 0 {
		return f
	}
	field := &f.fields[i]
	field.Value = value
	switch field.Type {
	case FieldTypeSelect:
		for j, opt := range field.Options {
			if opt == value {
				field.selectedIdx = j
			}
		}
	case FieldTypeText, FieldTypeNumber:
		field.textInput.SetValue(value)
	}
	return f
}

// SetFieldOptions sets options for select fields
func (f *Form) SetFieldOptions(name string, options []string) *Form {
	i := f.index(name)
	if i < 0 || f.fields[i].Type != FieldTypeSelect {
		return f
	}
	field := &f.fields[i]
	field.Options = options
	field.selectedIdx = 0
	field.Value = ""
	if len(options) > 0 {
		field.Value = options[0]
	}
	return f
}

// SetError attaches a message to a field. An empty message clears it.
func (f *Form) SetError(name, message string) *Form {
	if i := f.index(name); i >= 0 {
		f.fields[i].Error = message
	}
	return f
}

// GetError returns the message attached to a field.
func (f *Form) GetError(name string) string {
	if i := f.index(name); i >= 0 {
		return f.fields[i].Error
	}
	return ""
}

// ClearErrors removes every field error.
func (f *Form) ClearErrors() *Form {
	for i := range f.fields {
		f.fields[i].Error = ""
	}
	return f
}

// Focused returns the name of the focused field.
func (f *Form) Focused() string {
	if f.focusIndex < len(f.fields) {
		return f.fields[f.focusIndex].Name
	}
	return ""
}

// Focus moves focus to the named field.
func (f *Form) Focus(name string) *Form {
	if i := f.index(name); i >= 0 {
		f.focus(i)
	}
	return f
}

func (f *Form) focus(i int) {
	if f.focusIndex < len(f.fields) {
		f.fields[f.focusIndex].textInput.Blur()
	}
	f.focusIndex = i
	if f.fields[i].editable() {
		f.fields[i].textInput.Focus()
	}
}

// Len returns the number of fields.
func (f *Form) Len() int {
	return len(f.fields)
}

// Update handles form input and updates
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		field := &f.fields[f.focusIndex]
		switch msg.String() {
		case "tab", "enter":
			if msg.String() == "enter" && field.Type == FieldTypeSelect {
				f.stepSelect(1)
				return f, nil
			}
			f.focus((f.focusIndex + 1) % len(f.fields))
			return f, nil
		case "shift+tab":
			f.focus((f.focusIndex - 1 + len(f.fields)) % len(f.fields))
			return f, nil
		case "up", "left":
			if field.Type == FieldTypeSelect {
				f.stepSelect(-1)
				return f, nil
			}
		case "down", "right":
			if field.Type == FieldTypeSelect {
				f.stepSelect(1)
				return f, nil
			}
		case " ":
			if field.Type == FieldTypeCheckbox {
				field.Value = boolValue(field.Value != "true")
				return f, nil
			}
		}
	}

	field := &f.fields[f.focusIndex]
	if !field.editable() {
		return f, nil
	}
	var cmd tea.Cmd
	field.textInput, cmd = field.textInput.Update(msg)
	if v := field.textInput.Value(); v != field.Value {
		field.Value = v
		field.Error = ""
	}
	return f, cmd
}

func (f *Form) stepSelect(delta int) {
	field := &f.fields[f.focusIndex]
	if len(field.Options) == 0 {
		return
	}
	field.selectedIdx = (field.selectedIdx + delta + len(field.Options)) % len(field.Options)
	field.Value = field.Options[field.selectedIdx]
}

// View renders the form
func (f *Form) View() string {
	if len(f.fields) == 0 {
		return "No fields defined"
	}

	var content strings.Builder
	for i, field := range f.fields {
		fieldStyle := f.inputStyle
		if i == f.focusIndex {
			fieldStyle = f.focusedStyle
		}

		if field.Type == FieldTypeCheckbox {
			box := "☐"
			if field.Value == "true" {
				box = "☑"
			}
			text := box + " " + field.Label
			if i == f.focusIndex {
				content.WriteString(f.focusedStyle.Render(text))
			} else {
				content.WriteString(f.checkboxStyle.Render(text))
			}
		} else {
			label := field.Label
			if field.Required {
				label += " *"
			}
			content.WriteString(f.labelStyle.Render(label))
			content.WriteString("\n")

			switch field.Type {
			case FieldTypeSelect:
				text := field.Value
				if text == "" {
					text = "(none)"
				}
				if i == f.focusIndex {
					text += " ▼"
				}
				content.WriteString(fieldStyle.Render(text))
			default:
				content.WriteString(fieldStyle.Render(field.textInput.View()))
			}
		}
		content.WriteString("\n")

		if field.Error != "" {
			content.WriteString(f.errorStyle.Render("⚠ " + field.Error))
			content.WriteString("\n")
		}
	}
	return content.String()
}

// Validate checks required fields only.
func (f *Form) Validate() bool {
	valid := true
	for i := range f.fields {
		field := &f.fields[i]
		field.Error = ""
		if field.Required && strings.TrimSpace(field.Value) == "" {
			field.Error = "This field is required"
			valid = false
		}
	}
	return valid
}

// GetValues returns all form field values as a map
func (f *Form) GetValues() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		values[field.Name] = field.Value
	}
	return values
}

// GetValue returns the value of a specific field
func (f *Form) GetValue(name string) string {
	if i := f.index(name); i >= 0 {
		return f.fields[i].Value
	}
	return ""
}

// Checked reports whether a checkbox field is set.
func (f *Form) Checked(name string) bool {
	return f.GetValue(name) == "true"
}

// Reset clears all form fields
func (f *Form) Reset() *Form {
	for i := range f.fields {
		field := &f.fields[i]
		field.Error = ""
		field.textInput.SetValue("")
		field.selectedIdx = 0
		switch field.Type {
		case FieldTypeSelect:
			field.Value = ""
			if len(field.Options) > 0 {
				field.Value = field.Options[0]
			}
		case FieldTypeCheckbox:
			field.Value = "false"
		default:
			field.Value = ""
		}
	}
	if len(f.fields) > 0 {
		f.focus(0)
	}
	return f
}

// SetSize sets the form dimensions
func (f *Form) SetSize(width, height int) *Form {
	f.width = width
	f.height = height

	inputWidth := width - 8
	if inputWidth > 60 {
		inputWidth = 60
	}
	if inputWidth > 10 {
		for i := range f.fields {
			f.fields[i].textInput.Width = inputWidth
		}
	}
	return f
}
