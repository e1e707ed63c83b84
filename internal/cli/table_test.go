// Package cli provides command-line interface utilities.
package cli

import (
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"Name", "Age", "City"})

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Name", "Age"})

	table.AddRow([]string{"Bob"})
	if len(table.rows[0]) != 2 || table.rows[0][1] != "" {
		t.Errorf("Expected short row to be padded, got %q", table.rows[0])
	}

	table.AddRow([]string{"Charlie", "25", "Extra"})
	if len(table.rows[1]) != 2 {
		t.Errorf("Expected long row to be truncated, got %q", table.rows[1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"SOURCE", "COLOURS"})
	table.AddRow([]string{"a.png", "12"})
	table.AddRow([]string{"longer-name.png", "3"})

	want := strings.Join([]string{
		"SOURCE           COLOURS",
		"---------------  -------",
		"a.png            12",
		"longer-name.png  3",
		"",
	}, "\n")

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}

	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() of a table without headers = %q, want empty", got)
	}
}
