package receipt

import "github.com/shopspring/decimal"

// Analytics summarizes all stored receipts.
type Analytics struct {
	TotalReceipts       int         `json:"totalReceipts"`
	AveragePoints       float64     `json:"averagePoints"`
	HighestTotalReceipt *TopReceipt `json:"highestTotalReceipt"`
}

// TopReceipt identifies the receipt with the highest valid total.
type TopReceipt struct {
	ID     string `json:"id"`
	Total  string `json:"total"`
	Points int    `json:"points"`
}

// analyzeReceipts computes count, mean points, and the highest-total
// receipt over a store snapshot. Only parseable, non-negative totals
// are candidates for the top receipt; when none qualify the field stays
// nil. An empty snapshot yields a zero mean rather than a division by
// zero.
func analyzeReceipts(entries []Entry) *Analytics {
	analytics := &Analytics{TotalReceipts: len(entries)}
	if len(entries) == 0 {
		return analytics
	}

	sum := 0
	for _, entry := range entries {
		points, err := Points(entry.Receipt)
		if err != nil {
			continue
		}
		sum += points
	}
	analytics.AveragePoints = float64(sum) / float64(len(entries))

	var best *Entry
	var bestTotal decimal.Decimal
	for i, entry := range entries {
		if entry.Receipt == nil {
			continue
		}
		value, err := decimal.NewFromString(entry.Receipt.Total)
		if err != nil || value.IsNegative() {
			continue
		}
		if best == nil || value.GreaterThan(bestTotal) {
			best = &entries[i]
			bestTotal = value
		}
	}
	if best != nil {
		points, _ := Points(best.Receipt)
		analytics.HighestTotalReceipt = &TopReceipt{
			ID:     best.ID,
			Total:  best.Receipt.Total,
			Points: points,
		}
	}

	return analytics
}
