package receipt

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SortCriteria selects the ordering for a receipt listing.
type SortCriteria string

const (
	SortByTotal  SortCriteria = "total"
	SortByDate   SortCriteria = "date"
	SortByPoints SortCriteria = "points"
)

// SortedReceipt is one row of a sorted listing. Blank totals and dates
// are projected as "0.00" and "N/A".
type SortedReceipt struct {
	ID     string `json:"id"`
	Total  string `json:"total"`
	Date   string `json:"date"`
	Points int    `json:"points"`
}

// sortReceipts orders store entries by the given criteria: total
// ascending by numeric value, date descending with malformed dates
// after all valid ones, or points descending. Points are recomputed
// per call. Entries without a receipt are skipped rather than emitted
// as empty rows.
func sortReceipts(entries []Entry, criteria SortCriteria) ([]SortedReceipt, error) {
	switch criteria {
	case SortByTotal, SortByDate, SortByPoints:
	default:
		return nil, &InvalidArgumentError{
			Reason: fmt.Sprintf("invalid sorting criteria: %q (valid: total, date, points)", string(criteria)),
		}
	}

	rows := make([]SortedReceipt, 0, len(entries))
	for _, entry := range entries {
		if entry.Receipt == nil {
			continue
		}
		points, err := Points(entry.Receipt)
		if err != nil {
			continue
		}
		total := entry.Receipt.Total
		if total == "" {
			total = "0.00"
		}
		date := entry.Receipt.PurchaseDate
		if date == "" {
			date = "N/A"
		}
		rows = append(rows, SortedReceipt{
			ID:     entry.ID,
			Total:  total,
			Date:   date,
			Points: points,
		})
	}

	switch criteria {
	case SortByTotal:
		sort.SliceStable(rows, func(i, j int) bool {
			return totalValue(rows[i].Total).LessThan(totalValue(rows[j].Total))
		})
	case SortByDate:
		sort.SliceStable(rows, func(i, j int) bool {
			return dateRanksBefore(rows[i].Date, rows[j].Date)
		})
	case SortByPoints:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Points > rows[j].Points
		})
	}

	return rows, nil
}

// totalValue parses a total for ordering, treating unparseable values
// as zero so the sort never fails.
func totalValue(total string) decimal.Decimal {
	value, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// dateRanksBefore orders dates most recent first. Well-formed ISO dates
// compare lexicographically; malformed dates rank after all valid ones,
// ordered among themselves by raw string for determinism.
func dateRanksBefore(a, b string) bool {
	_, errA := time.Parse(dateLayout, a)
	_, errB := time.Parse(dateLayout, b)
	if (errA == nil) != (errB == nil) {
		return errA == nil
	}
	return a > b
}
