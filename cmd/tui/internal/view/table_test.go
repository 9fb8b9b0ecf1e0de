package view

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableModel(t *testing.T) {
	var deleted []int64

	load := func(context.Context) ([]record, error) {
		return []record{
			{id: 4, cells: table.Row{"4", "Nakit", "cash"}},
			{id: 9, cells: table.Row{"9", "Borç", "debt"}},
		}, nil
	}
	remove := func(_ context.Context, id int64) error {
		deleted = append(deleted, id)
		return nil
	}

	m := newTableModel("Sources", []table.Column{{Title: "ID"}, {Title: "Name"}, {Title: "Type"}}, load, remove)
	assert.Contains(t, m.View(), "Loading Sources")

	next, _ := m.Update(m.Init()())
	m = next.(TableModel)
	assert.Contains(t, m.View(), "Sources (2)")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(TableModel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = next.(TableModel)
	require.NotNil(t, cmd)

	next, reload := m.Update(cmd())
	m = next.(TableModel)
	assert.Equal(t, []int64{9}, deleted)
	assert.Contains(t, m.View(), "Deleted #9")
	assert.NotNil(t, reload)

	_, back := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, back)
	assert.Equal(t, BackMsg{}, back())
}

func TestTableModel_DeleteError(t *testing.T) {
	load := func(context.Context) ([]record, error) {
		return []record{{id: 1, cells: table.Row{"1"}}}, nil
	}
	remove := func(context.Context, int64) error { return errors.New("source is used by 2 expense(s)") }

	m := newTableModel("Sources", []table.Column{{Title: "ID"}}, load, remove)
	next, _ := m.Update(m.Init()())
	m = next.(TableModel)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	next, _ = m.Update(cmd())

	assert.Contains(t, next.View(), "Error deleting: source is used by 2 expense(s)")
}
