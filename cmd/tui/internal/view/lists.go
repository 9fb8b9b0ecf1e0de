package view

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/MrJamesThe3rd/budget/internal/debt"
	"github.com/MrJamesThe3rd/budget/internal/expense"
	"github.com/MrJamesThe3rd/budget/internal/income"
	"github.com/MrJamesThe3rd/budget/internal/source"
)

func NewSourcesModel(svc *source.Service) TableModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 30},
		{Title: "Type", Width: 20},
	}

	load := func(ctx context.Context) ([]record, error) {
		sources, err := svc.List(ctx)
		if err != nil {
			return nil, err
		}

		records := make([]record, len(sources))
		for i, s := range sources {
			records[i] = record{id: s.ID, cells: table.Row{strconv.FormatInt(s.ID, 10), s.Name, s.Type}}
		}

		return records, nil
	}

	return newTableModel("Sources", columns, load, svc.Delete)
}

func NewExpensesModel(svc *expense.Service) TableModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 30},
		{Title: "Category", Width: 16},
		{Title: "Source", Width: 16},
		{Title: "Installment", Width: 12},
	}

	load := func(ctx context.Context) ([]record, error) {
		expenses, err := svc.List(ctx)
		if err != nil {
			return nil, err
		}

		records := make([]record, len(expenses))
		for i, e := range expenses {
			src := ""
			if e.Source != nil {
				src = e.Source.Name
			}

			inst := ""
			if e.Installment != nil {
				inst = strconv.Itoa(e.Installment.Number) + "/" + strconv.Itoa(e.Installment.Count)
			}

			records[i] = record{id: e.ID, cells: table.Row{
				FormatDate(&e.Date),
				FormatAmount(e.Amount),
				e.Description,
				FormatText(e.Category),
				src,
				inst,
			}}
		}

		return records, nil
	}

	return newTableModel("Expenses", columns, load, svc.Delete)
}

func NewIncomesModel(svc *income.Service) TableModel {
	columns := []table.Column{
		{Title: "Received", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Source", Width: 24},
		{Title: "Category", Width: 16},
		{Title: "Notes", Width: 30},
	}

	load := func(ctx context.Context) ([]record, error) {
		incomes, err := svc.List(ctx)
		if err != nil {
			return nil, err
		}

		records := make([]record, len(incomes))
		for i, in := range incomes {
			records[i] = record{id: in.ID, cells: table.Row{
				FormatDate(&in.ReceivedDate),
				FormatAmount(in.Amount),
				in.Source,
				FormatText(in.Category),
				FormatText(in.Notes),
			}}
		}

		return records, nil
	}

	return newTableModel("Incomes", columns, load, svc.Delete)
}

func NewDebtsModel(svc *debt.Service) TableModel {
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Creditor", Width: 24},
		{Title: "Status", Width: 12},
		{Title: "Notes", Width: 30},
	}

	load := func(ctx context.Context) ([]record, error) {
		debts, err := svc.List(ctx)
		if err != nil {
			return nil, err
		}

		records := make([]record, len(debts))
		for i, d := range debts {
			records[i] = record{id: d.ID, cells: table.Row{
				FormatDate(d.DueDate),
				FormatAmount(d.Amount),
				d.Creditor,
				FormatText(d.Status),
				FormatText(d.Notes),
			}}
		}

		return records, nil
	}

	return newTableModel("Debts", columns, load, svc.Delete)
}
