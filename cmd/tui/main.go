package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/budget/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/budget/internal/app"
	"github.com/MrJamesThe3rd/budget/internal/config"
	"github.com/MrJamesThe3rd/budget/internal/database"
)

type model struct {
	services *app.Services

	currentView View
	active      view.View
}

type View int

const (
	ViewMenu       View = 0
	ViewSources    View = 1
	ViewExpenses   View = 2
	ViewIncomes    View = 3
	ViewDebts      View = 4
	ViewAddExpense View = 5
)

func initialModel(db *database.DB) model {
	return model{
		services:    app.NewServices(db),
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v View) view.View {
	switch v {
	case ViewSources:
		return view.NewSourcesModel(m.services.Sources)
	case ViewExpenses:
		return view.NewExpensesModel(m.services.Expenses)
	case ViewIncomes:
		return view.NewIncomesModel(m.services.Incomes)
	case ViewDebts:
		return view.NewDebtsModel(m.services.Debts)
	case ViewAddExpense:
		return view.NewExpenseFormModel(m.services.Sources, m.services.Expenses)
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1", "2", "3", "4", "5":
				m.currentView = View(msg.String()[0] - '0')
				m.active = m.open(m.currentView)

				return m, m.active.Init()
			}

			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	m.active = next.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Budget TUI\n\n" +
				"1. Sources\n" +
				"2. Expenses\n" +
				"3. Incomes\n" +
				"4. Debts\n" +
				"5. Add Expense\n\n" +
				"q. Quit",
		)
	}

	return m.active.View()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dialect, err := cfg.Dialect()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn, err := cfg.DSN()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(dialect, dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(db), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
