package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/qrsheet/pkg/source"
)

// pickerSamples is how many data rows the column picker shows per column.
const pickerSamples = 3

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ColumnPickerModel - Interactive column selection
// =============================================================================

// ColumnPickerModel is the bubbletea model for choosing the code column of a
// spreadsheet. Selected stays -1 when the user quits without choosing.
type ColumnPickerModel struct {
	Table    *source.Table
	Cursor   int
	Selected int
}

// NewColumnPickerModel creates a picker over the headers of t.
func NewColumnPickerModel(t *source.Table) ColumnPickerModel {
	return ColumnPickerModel{Table: t, Selected: -1}
}

func (m ColumnPickerModel) Init() tea.Cmd {
	return nil
}

func (m ColumnPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k", "left", "h":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j", "right", "l":
		if m.Cursor < len(m.Table.Header)-1 {
			m.Cursor++
		}
	case "enter":
		if len(m.Table.Header) > 0 {
			m.Selected = m.Cursor
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m ColumnPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Code Column"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	headers := []string{"", "#", "Header"}
	for i := 0; i < pickerSamples; i++ {
		headers = append(headers, fmt.Sprintf("Row %d", i+1))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(columnRows(m.Table, m.Cursor)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHeader
			case row == m.Cursor:
				return listSelectedStyle
			case col > 2:
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Table.Header))))
	return b.String()
}

// columnRows turns a preview into one row per column: cursor marker, index,
// header and the first sample values. cursor < 0 draws no marker.
func columnRows(t *source.Table, cursor int) [][]string {
	rows := make([][]string, len(t.Header))
	for col, h := range t.Header {
		marker := "  "
		if col == cursor {
			marker = "▸ "
		}
		row := []string{marker, fmt.Sprint(col), h}
		for i := 0; i < pickerSamples; i++ {
			v := ""
			if i < len(t.Rows) && col < len(t.Rows[i]) {
				v = truncate(t.Rows[i][col], 24)
			}
			row = append(row, v)
		}
		rows[col] = row
	}
	return rows
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// pickColumn runs the interactive picker and returns the chosen column, or
// ok=false when the user quit.
func pickColumn(t *source.Table) (col int, ok bool, err error) {
	if len(t.Header) == 0 {
		return 0, false, nil
	}
	final, err := tea.NewProgram(NewColumnPickerModel(t)).Run()
	if err != nil {
		return 0, false, err
	}
	m := final.(ColumnPickerModel)
	if m.Selected < 0 {
		return 0, false, nil
	}
	return m.Selected, true, nil
}
