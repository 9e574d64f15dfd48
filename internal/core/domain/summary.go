package domain

// SalesSummary totals a set of transactions.
type SalesSummary struct {
	Count      int   `json:"count"`
	TotalSales int64 `json:"total_sales"`
	TotalCost  int64 `json:"total_cost"`
	Profit     int64 `json:"profit"`
}

// Summarize folds txs into totals. An empty input yields ErrNoTransactions so
// callers can tell "nothing sold yet" apart from sales that sum to zero.
func Summarize(txs []TransactionRecord) (SalesSummary, error) {
	if len(txs) == 0 {
		return SalesSummary{}, ErrNoTransactions
	}
	var s SalesSummary
	for _, tx := range txs {
		s.Count++
		s.TotalSales += tx.AmountCharged
		s.TotalCost += tx.CostBasis
	}
	s.Profit = s.TotalSales - s.TotalCost
	return s, nil
}
