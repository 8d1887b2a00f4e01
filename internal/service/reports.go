package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lromero/cajaclinic/internal/model"
	"github.com/lromero/cajaclinic/internal/reconcile"
	"github.com/lromero/cajaclinic/internal/repository"
)

// ReconciledCut is one listing row: the stored cut plus its normalized
// variant and the discrepancy triples for every channel.
type ReconciledCut struct {
	Cut              model.Cut               `json:"cut"`
	SchemaVariant    reconcile.SchemaVariant `json:"schema_variant"`
	AdjustmentsTotal decimal.Decimal         `json:"adjustments_total"`
	Reconciliation   reconcile.RowReport     `json:"reconciliation"`
}

// Summary is the period report: per-cut rows, reporting breakdowns and, for
// month periods, the net cash balance including global expenses.
type Summary struct {
	Period     reconcile.Period         `json:"period"`
	Rows       []ReconciledCut          `json:"rows"`
	Categories []reconcile.BreakdownRow `json:"categories"`
	Methods    []reconcile.BreakdownRow `json:"methods"`
	NetCash    *decimal.Decimal         `json:"net_cash,omitempty"`
}

type ReportService struct {
	cuts     repository.CutRepo
	expenses repository.ExpenseRepo
}

func NewReportService(cuts repository.CutRepo, expenses repository.ExpenseRepo) *ReportService {
	return &ReportService{cuts: cuts, expenses: expenses}
}

// fetchRange reads cuts and expenses for the same bounds concurrently: a
// plain fan-out/fan-in with no ordering between the two reads and no
// retries — either failure fails the caller.
func fetchRange(ctx context.Context, cuts repository.CutRepo, expenses repository.ExpenseRepo,
	cf repository.CutFilter, ef repository.ExpenseFilter) ([]model.Cut, []model.Expense, error) {

	var (
		wg       sync.WaitGroup
		cutRows  []model.Cut
		expRows  []model.Expense
		cutErr   error
		expErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cutRows, cutErr = cuts.List(ctx, cf)
	}()
	go func() {
		defer wg.Done()
		expRows, expErr = expenses.List(ctx, ef)
	}()
	wg.Wait()

	if cutErr != nil {
		return nil, nil, cutErr
	}
	if expErr != nil {
		return nil, nil, expErr
	}
	return cutRows, expRows, nil
}

func reconcileRows(cuts []model.Cut, expenses []model.Expense) []ReconciledCut {
	idx := reconcile.IndexByDate(expenses)
	rows := make([]ReconciledCut, 0, len(cuts))
	for _, n := range reconcile.NormalizeAll(cuts) {
		sameDay := idx[reconcile.DateKey(n.ValidDate)]
		rows = append(rows, ReconciledCut{
			Cut:              findCut(cuts, n.ID),
			SchemaVariant:    n.Variant,
			AdjustmentsTotal: n.AdjustmentsTotal(),
			Reconciliation:   reconcile.Report(n, sameDay),
		})
	}
	return rows
}

func findCut(cuts []model.Cut, id string) model.Cut {
	for i := range cuts {
		if cuts[i].ID == id {
			return cuts[i]
		}
	}
	return model.Cut{}
}

// Summary builds the period report. includeNetCash is set by the caller when
// the period came from a month selector; that is the only aggregate where
// global expenses count.
func (s *ReportService) Summary(ctx context.Context, period reconcile.Period, includeNetCash bool) (*Summary, error) {
	cf := repository.CutFilter{From: &period.Start, To: &period.End, Ascending: true}
	ef := repository.ExpenseFilter{From: &period.Start, To: &period.End, Ascending: true}

	cuts, expenses, err := fetchRange(ctx, s.cuts, s.expenses, cf, ef)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Period:     period,
		Rows:       reconcileRows(cuts, expenses),
		Categories: reconcile.BreakdownByCategory(expenses),
		Methods:    reconcile.BreakdownByMethod(expenses),
	}
	if includeNetCash {
		net := reconcile.MonthlyNetCash(reconcile.NormalizeAll(cuts), expenses, period)
		summary.NetCash = &net
	}
	return summary, nil
}
