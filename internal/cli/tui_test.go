package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/qrsheet/pkg/source"
)

func testTable() *source.Table {
	return &source.Table{
		Header: []string{"Name", "SKU", "Notes"},
		Rows: [][]string{
			{"Widget", "ABC-123", "a very long note that will be truncated in the picker"},
			{"Gadget", "ABC-124"},
		},
	}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestColumnPickerSelect(t *testing.T) {
	m := press(NewColumnPickerModel(testTable()), "down", "enter").(ColumnPickerModel)
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestColumnPickerBounds(t *testing.T) {
	m := press(NewColumnPickerModel(testTable()), "up", "down", "down", "down", "down").(ColumnPickerModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}
}

func TestColumnPickerQuit(t *testing.T) {
	m := press(NewColumnPickerModel(testTable()), "down", "esc").(ColumnPickerModel)
	if m.Selected != -1 {
		t.Errorf("Selected = %d, want -1 after quitting", m.Selected)
	}
}

func TestColumnPickerView(t *testing.T) {
	view := NewColumnPickerModel(testTable()).View()
	for _, want := range []string{"Select Code Column", "SKU", "ABC-123", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestColumnRows(t *testing.T) {
	rows := columnRows(testTable(), 1)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1][0] != "▸ " || rows[0][0] != "  " {
		t.Errorf("cursor marker misplaced: %q %q", rows[0][0], rows[1][0])
	}
	if rows[2][3] != "a very long note that wi..." {
		t.Errorf("truncated note = %q", rows[2][3])
	}
	if rows[2][4] != "" {
		t.Errorf("ragged row should yield an empty cell, got %q", rows[2][4])
	}
}
