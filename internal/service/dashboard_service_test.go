package service

import (
	"context"
	"testing"
	"time"

	"finboard/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func yearTx(txType models.TransactionType, category string, amount float64, date time.Time) models.Transaction {
	return models.Transaction{
		ID:       uuid.New(),
		Type:     txType,
		Category: category,
		Amount:   amount,
		Date:     date,
	}
}

func TestSummaryTotals(t *testing.T) {
	store := &stubStore{yearTransactions: []models.Transaction{
		yearTx(models.TypeIncome, "Sales", 1000, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)),
		yearTx(models.TypeIncome, "Freelance", 250.50, time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)),
		yearTx(models.TypeExpense, "Software", 99.99, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)),
		yearTx(models.TypeExpense, "Utilities", 150, time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)),
	}}
	svc := NewDashboardService(store, zap.NewNop())

	resp, err := svc.Summary(context.Background(), uuid.New(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := resp.Summary
	if s.TotalRevenue != 1250.50 {
		t.Errorf("totalRevenue: want 1250.50 got %v", s.TotalRevenue)
	}
	if s.TotalExpenses != 249.99 {
		t.Errorf("totalExpenses: want 249.99 got %v", s.TotalExpenses)
	}
	if s.NetProfit != s.TotalRevenue-s.TotalExpenses {
		t.Errorf("netProfit: want %v got %v", s.TotalRevenue-s.TotalExpenses, s.NetProfit)
	}
	if s.TotalTransactions != 4 {
		t.Errorf("totalTransactions: want 4 got %d", s.TotalTransactions)
	}
}

func TestSummaryMonthlyPartition(t *testing.T) {
	// Every transaction falls in exactly one month bucket, so the monthly
	// series must sum back to the yearly totals.
	var txs []models.Transaction
	for m := time.January; m <= time.December; m++ {
		txs = append(txs,
			yearTx(models.TypeIncome, "Sales", float64(100*int(m)), time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC)),
			yearTx(models.TypeExpense, "Software", float64(10*int(m)), time.Date(2024, m, 28, 23, 59, 0, 0, time.UTC)),
		)
	}
	store := &stubStore{yearTransactions: txs}
	svc := NewDashboardService(store, zap.NewNop())

	resp, err := svc.Summary(context.Background(), uuid.New(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.ChartData) != 12 {
		t.Fatalf("want 12 month buckets, got %d", len(resp.ChartData))
	}

	wantLabels := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	var revenueSum, expenseSum float64
	for i, point := range resp.ChartData {
		if point.Month != wantLabels[i] {
			t.Errorf("bucket %d: want label %s got %s", i, wantLabels[i], point.Month)
		}
		if point.Revenue != float64(100*(i+1)) {
			t.Errorf("bucket %s: want revenue %v got %v", point.Month, float64(100*(i+1)), point.Revenue)
		}
		revenueSum += point.Revenue
		expenseSum += point.Expenses
	}

	if revenueSum != resp.Summary.TotalRevenue {
		t.Errorf("monthly revenue sum %v != totalRevenue %v", revenueSum, resp.Summary.TotalRevenue)
	}
	if expenseSum != resp.Summary.TotalExpenses {
		t.Errorf("monthly expense sum %v != totalExpenses %v", expenseSum, resp.Summary.TotalExpenses)
	}
}

func TestSummaryMarchExample(t *testing.T) {
	store := &stubStore{yearTransactions: []models.Transaction{
		yearTx(models.TypeIncome, "Sales", 100, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)),
	}}
	svc := NewDashboardService(store, zap.NewNop())

	resp, err := svc.Summary(context.Background(), uuid.New(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ChartData[2].Month != "Mar" || resp.ChartData[2].Revenue != 100 {
		t.Errorf("March bucket: want revenue 100, got %+v", resp.ChartData[2])
	}
	if resp.Summary.TotalRevenue < 100 {
		t.Errorf("totalRevenue: want >= 100 got %v", resp.Summary.TotalRevenue)
	}
}

func TestSummaryCategoryBreakdownUnnetted(t *testing.T) {
	// Income and expense amounts are added together per category, not netted.
	// Intentional: the category chart shows gross volume per category.
	store := &stubStore{yearTransactions: []models.Transaction{
		yearTx(models.TypeIncome, "Sales", 300, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)),
		yearTx(models.TypeExpense, "Sales", 200, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)),
		yearTx(models.TypeExpense, "Software", 50, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)),
	}}
	svc := NewDashboardService(store, zap.NewNop())

	resp, err := svc.Summary(context.Background(), uuid.New(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.CategoryData) != 2 {
		t.Fatalf("want 2 categories, got %d", len(resp.CategoryData))
	}
	if resp.CategoryData[0].Name != "Sales" || resp.CategoryData[0].Value != 500 {
		t.Errorf("Sales slice: want 500 (300+200, unnetted), got %+v", resp.CategoryData[0])
	}

	var total float64
	for _, slice := range resp.CategoryData {
		total += slice.Value
	}
	if total != 550 {
		t.Errorf("category values must sum to all amounts combined: want 550 got %v", total)
	}
}

func TestSummaryPaletteCycles(t *testing.T) {
	// More categories than palette entries wraps around modulo 8.
	var txs []models.Transaction
	for i, cat := range models.Categories {
		txs = append(txs, yearTx(models.TypeExpense, cat, 10, time.Date(2024, time.July, i+1, 0, 0, 0, 0, time.UTC)))
	}
	store := &stubStore{yearTransactions: txs}
	svc := NewDashboardService(store, zap.NewNop())

	resp, err := svc.Summary(context.Background(), uuid.New(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.CategoryData) != len(models.Categories) {
		t.Fatalf("want %d categories, got %d", len(models.Categories), len(resp.CategoryData))
	}
	for i, slice := range resp.CategoryData {
		want := categoryPalette[i%len(categoryPalette)]
		if slice.Color != want {
			t.Errorf("category %d (%s): want color %s got %s", i, slice.Name, want, slice.Color)
		}
	}
	if resp.CategoryData[8].Color != resp.CategoryData[0].Color {
		t.Error("ninth category should reuse the first palette color")
	}
}

func TestSummaryEmptyYear(t *testing.T) {
	store := &stubStore{}
	svc := NewDashboardService(store, zap.NewNop())

	resp, err := svc.Summary(context.Background(), uuid.New(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Summary.TotalTransactions != 0 || resp.Summary.NetProfit != 0 {
		t.Errorf("empty year summary: %+v", resp.Summary)
	}
	if len(resp.ChartData) != 12 {
		t.Errorf("want 12 empty buckets, got %d", len(resp.ChartData))
	}
	if len(resp.CategoryData) != 0 {
		t.Errorf("want no category slices, got %d", len(resp.CategoryData))
	}
}

func TestRecentUsesFixedLimit(t *testing.T) {
	store := &stubStore{recentTransactions: []models.Transaction{{}, {}}}
	svc := NewDashboardService(store, zap.NewNop())

	txs, err := svc.Recent(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastRecentLimit != 5 {
		t.Errorf("want limit 5, got %d", store.lastRecentLimit)
	}
	if len(txs) != 2 {
		t.Errorf("want 2 transactions, got %d", len(txs))
	}
}
