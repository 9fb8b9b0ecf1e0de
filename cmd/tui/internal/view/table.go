package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// record is one table row and the id used to delete it.
type record struct {
	id    int64
	cells table.Row
}

// TableModel lists one kind of record and deletes the selected one on 'x'.
type TableModel struct {
	title  string
	load   func(ctx context.Context) ([]record, error)
	remove func(ctx context.Context, id int64) error

	table   table.Model
	records []record
	loading bool
	err     error
	status  string
}

func newTableModel(
	title string,
	columns []table.Column,
	load func(ctx context.Context) ([]record, error),
	remove func(ctx context.Context, id int64) error,
) TableModel {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TableModel{
		title:   title,
		load:    load,
		remove:  remove,
		table:   t,
		loading: true,
	}
}

func (m TableModel) Title() string { return m.title }

func (m TableModel) ShortHelp() string {
	return "Esc: back | r: refresh | x: delete"
}

func (m TableModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTableMsg:
		m.loading = false
		m.err = msg.err
		m.records = msg.records

		rows := make([]table.Row, len(msg.records))
		for i, r := range msg.records {
			rows[i] = r.cells
		}

		m.table.SetRows(rows)

		return m, nil

	case deleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Deleted #%d", msg.id)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TableModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Loading %s...", m.title))
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(
		fmt.Sprintf("%s (%d)", m.title, len(m.records)),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left, header, tableView,
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()))

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type loadTableMsg struct {
	records []record
	err     error
}

func (m TableModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		records, err := m.load(ctx)

		return loadTableMsg{records: records, err: err}
	}
}

type deleteMsg struct {
	id  int64
	err error
}

func (m TableModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if m.remove == nil || idx < 0 || idx >= len(m.records) {
		return nil
	}

	id := m.records[idx].id

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteMsg{id: id, err: m.remove(ctx, id)}
	}
}
