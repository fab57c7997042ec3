package service

import (
	"context"
	"time"

	"finboard/internal/dto"
	"finboard/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recentTransactionCount = 5

// categoryPalette is cycled over categories in first-encountered order.
var categoryPalette = []string{
	"#3B82F6", "#8B5CF6", "#10B981", "#F59E0B",
	"#EF4444", "#06B6D4", "#84CC16", "#F97316",
}

type DashboardService struct {
	store  TransactionStore
	logger *zap.Logger
}

func NewDashboardService(store TransactionStore, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		logger: logger,
	}
}

// Summary recomputes the dashboard aggregates from the owner's full set of
// transactions for the given calendar year. Per-user volumes are small, so a
// full recompute per call is deliberate; there is no materialized aggregate.
func (s *DashboardService) Summary(ctx context.Context, userID uuid.UUID, year int) (*dto.DashboardSummaryResponse, error) {
	transactions, err := s.store.ListByYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	var totalRevenue, totalExpenses float64
	for _, tx := range transactions {
		switch tx.Type {
		case models.TypeIncome:
			totalRevenue += tx.Amount
		case models.TypeExpense:
			totalExpenses += tx.Amount
		}
	}

	chartData := make([]dto.MonthlyPoint, 12)
	for m := time.January; m <= time.December; m++ {
		chartData[m-1] = dto.MonthlyPoint{
			Month: time.Date(year, m, 1, 0, 0, 0, 0, time.UTC).Format("Jan"),
		}
	}
	for _, tx := range transactions {
		point := &chartData[tx.Date.Month()-1]
		switch tx.Type {
		case models.TypeIncome:
			point.Revenue += tx.Amount
		case models.TypeExpense:
			point.Expenses += tx.Amount
		}
	}

	// Income and expense amounts are added together per category, not netted.
	// That mirrors the product's dashboard behavior.
	totals := make(map[string]float64)
	var order []string
	for _, tx := range transactions {
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] += tx.Amount
	}

	categoryData := make([]dto.CategorySlice, 0, len(order))
	for i, name := range order {
		categoryData = append(categoryData, dto.CategorySlice{
			Name:  name,
			Value: totals[name],
			Color: categoryPalette[i%len(categoryPalette)],
		})
	}

	return &dto.DashboardSummaryResponse{
		Summary: dto.SummaryMetrics{
			TotalRevenue:      totalRevenue,
			TotalExpenses:     totalExpenses,
			NetProfit:         totalRevenue - totalExpenses,
			TotalTransactions: len(transactions),
		},
		ChartData:    chartData,
		CategoryData: categoryData,
	}, nil
}

// Recent returns the owner's five newest transactions, newest first.
func (s *DashboardService) Recent(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	return s.store.ListRecent(ctx, userID, recentTransactionCount)
}
