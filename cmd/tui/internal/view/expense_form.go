package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/budget/internal/expense"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

// ExpenseFormModel adds one expense through the same normalizers the API uses.
type ExpenseFormModel struct {
	sources  *source.Service
	expenses *expense.Service

	form    *huh.Form
	loading bool
	err     error
	saved   *expense.Expense

	// Bound by pointer so the values survive the model being copied.
	in *expenseInput
}

type expenseInput struct {
	description string
	amount      string
	date        string
	category    string
	notes       string
	sourceID    int64
}

func NewExpenseFormModel(sources *source.Service, expenses *expense.Service) ExpenseFormModel {
	return ExpenseFormModel{
		sources:  sources,
		expenses: expenses,
		loading:  true,
		in:       &expenseInput{date: normalize.DateOf(time.Now()).String()},
	}
}

func (m ExpenseFormModel) Title() string { return "Add Expense" }

func (m ExpenseFormModel) ShortHelp() string {
	if m.saved != nil || m.err != nil {
		return "Esc: back | n: add another"
	}

	return "Navigate form | Esc: cancel"
}

func (m ExpenseFormModel) Init() tea.Cmd {
	return m.loadSourcesCmd()
}

func (m ExpenseFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSourcesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		if len(msg.sources) == 0 {
			m.err = errors.New("create a source before adding expenses")
			return m, nil
		}

		m.form = m.buildForm(msg.sources)

		return m, m.form.Init()

	case saveExpenseMsg:
		m.saved, m.err = msg.expense, msg.err
		m.form = nil

		return m, nil

	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyEsc:
			return m, Back
		case m.form == nil && msg.String() == "n":
			fresh := NewExpenseFormModel(m.sources, m.expenses)
			return fresh, fresh.Init()
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ExpenseFormModel) buildForm(sources []*source.Source) *huh.Form {
	options := make([]huh.Option[int64], len(sources))
	for i, s := range sources {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", s.Name, s.Type), s.ID)
	}

	m.in.sourceID = sources[0].ID

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.in.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.in.amount).
				Validate(func(s string) error {
					_, err := normalize.AmountValue(s)
					return err
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.in.date).
				Validate(func(s string) error {
					_, err := normalize.DateValue(s)
					return err
				}),

			huh.NewSelect[int64]().
				Key("source").
				Title("Source").
				Options(options...).
				Value(&m.in.sourceID),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.in.category),

			huh.NewText().
				Key("notes").
				Title("Notes").
				Value(&m.in.notes),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExpenseFormModel) View() string {
	var body string

	switch {
	case m.loading:
		body = "Loading sources..."
	case m.err != nil:
		body = fmt.Sprintf("Error: %v", m.err)
	case m.saved != nil:
		body = fmt.Sprintf("Saved expense #%d: %s %s on %s",
			m.saved.ID, m.saved.Description, FormatAmount(m.saved.Amount), m.saved.Date)
	case m.form != nil:
		body = m.form.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(m.Title()),
		body,
		lipgloss.NewStyle().Faint(true).PaddingTop(1).Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type loadSourcesMsg struct {
	sources []*source.Source
	err     error
}

func (m ExpenseFormModel) loadSourcesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sources, err := m.sources.List(ctx)

		return loadSourcesMsg{sources: sources, err: err}
	}
}

type saveExpenseMsg struct {
	expense *expense.Expense
	err     error
}

func (m ExpenseFormModel) saveCmd() tea.Cmd {
	amount, err := normalize.AmountValue(m.in.amount)
	if err != nil {
		return func() tea.Msg { return saveExpenseMsg{err: err} }
	}

	date, err := normalize.DateValue(m.in.date)
	if err != nil {
		return func() tea.Msg { return saveExpenseMsg{err: err} }
	}

	params := expense.CreateParams{
		Description: strings.TrimSpace(m.in.description),
		Amount:      amount,
		Date:        date,
		Category:    optionalText(m.in.category),
		Notes:       optionalText(m.in.notes),
		SourceID:    m.in.sourceID,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.expenses.Create(ctx, params)

		return saveExpenseMsg{expense: e, err: err}
	}
}

func optionalText(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}

	return &s
}
