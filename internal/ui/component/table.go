package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/launchpad/internal/ui/style"
)

// TableColumn represents a column configuration
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// Table is a selectable, vertically scrolling table of strings.
type Table struct {
	columns     []TableColumn
	rows        [][]string
	width       int
	height      int
	selectedRow int
	offset      int

	headerStyle      lipgloss.Style
	rowStyle         lipgloss.Style
	selectedRowStyle lipgloss.Style
	borderStyle      lipgloss.Style

	selectable bool
}

// NewTable creates a new table component
func NewTable() *Table {
	palette := style.DefaultPalette()

	return &Table{
		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		selectedRowStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		selectable: true,
	}
}

// AddColumn adds a column to the table. A zero width shares the space left.
func (t *Table) AddColumn(header string, width int, align lipgloss.Position) *Table {
	t.columns = append(t.columns, TableColumn{Header: header, Width: width, Align: align})
	return t
}

// SetRows replaces all rows and clamps the selection.
func (t *Table) SetRows(rows [][]string) *Table {
	t.rows = rows
	if t.selectedRow >= len(rows) {
		t.selectedRow = len(rows) - 1
	}
	if t.selectedRow < 0 {
		t.selectedRow = 0
	}
	t.scroll()
	return t
}

// SetSize sets the table dimensions
func (t *Table) SetSize(width, height int) *Table {
	t.width = width
	t.height = height
	t.scroll()
	return t
}

// SetSelectable enables/disables row selection
func (t *Table) SetSelectable(selectable bool) *Table {
	t.selectable = selectable
	return t
}

// GetSelectedRow returns the currently selected row index
func (t *Table) GetSelectedRow() int {
	return t.selectedRow
}

// GetRowCount returns the number of rows
func (t *Table) GetRowCount() int {
	return len(t.rows)
}

func (t *Table) MoveUp() *Table {
	if t.selectable && t.selectedRow > 0 {
		t.selectedRow--
		t.scroll()
	}
	return t
}

func (t *Table) MoveDown() *Table {
	if t.selectable && t.selectedRow < len(t.rows)-1 {
		t.selectedRow++
		t.scroll()
	}
	return t
}

// visibleRows is the number of body rows that fit; 0 means unlimited.
func (t *Table) visibleRows() int {
	if t.height <= 0 {
		return 0
	}
	// border and header take four lines
	if n := t.height - 4; n > 0 {
		return n
	}
	return 1
}

func (t *Table) scroll() {
	n := t.visibleRows()
	if n == 0 {
		t.offset = 0
		return
	}
	if t.selectedRow < t.offset {
		t.offset = t.selectedRow
	}
	if t.selectedRow >= t.offset+n {
		t.offset = t.selectedRow - n + 1
	}
}

// View renders the table
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return "No columns defined"
	}
	widths := t.columnWidths()

	var content strings.Builder
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = renderCell(col.Header, widths[i], col.Align, t.headerStyle)
	}
	content.WriteString(strings.Join(cells, "│"))
	content.WriteString("\n")

	seps := make([]string, len(t.columns))
	for i := range t.columns {
		seps[i] = strings.Repeat("─", widths[i]+2)
	}
	content.WriteString(strings.Join(seps, "┼"))

	end := len(t.rows)
	if n := t.visibleRows(); n > 0 && t.offset+n < end {
		end = t.offset + n
	}
	for r := t.offset; r < end; r++ {
		rowStyle := t.rowStyle
		if t.selectable && r == t.selectedRow {
			rowStyle = t.selectedRowStyle
		}
		for i, col := range t.columns {
			value := ""
			if i < len(t.rows[r]) {
				value = t.rows[r][i]
			}
			cells[i] = renderCell(value, widths[i], col.Align, rowStyle)
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(cells, "│"))
	}

	return t.borderStyle.Render(content.String())
}

func renderCell(content string, width int, align lipgloss.Position, cellStyle lipgloss.Style) string {
	return cellStyle.Width(width + 2).Align(align).Render(Truncate(content, width))
}

// Truncate shortens s to width runes, ending in "...".
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width > 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	fixed, auto := 0, 0
	for i, col := range t.columns {
		widths[i] = col.Width
		if col.Width > 0 {
			fixed += col.Width
		} else {
			auto++
		}
	}
	if auto == 0 {
		return widths
	}

	// padding, separators and border
	avail := t.width - fixed - 3*len(t.columns) - 2
	share := 12
	if avail/auto > share {
		share = avail / auto
	}
	for i := range widths {
		if widths[i] <= 0 {
			widths[i] = share
		}
	}
	return widths
}
