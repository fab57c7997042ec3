package dto

type SummaryMetrics struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalExpenses     float64 `json:"totalExpenses"`
	NetProfit         float64 `json:"netProfit"`
	TotalTransactions int     `json:"totalTransactions"`
}

type MonthlyPoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

type CategorySlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type DashboardSummaryResponse struct {
	Summary      SummaryMetrics  `json:"summary"`
	ChartData    []MonthlyPoint  `json:"chartData"`
	CategoryData []CategorySlice `json:"categoryData"`
}

type RecentTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
