package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tags attached by the classification rules.
const (
	TagInvalidReceipt      = "Invalid Receipt"
	TagLoyalCustomer       = "Loyal Customer"
	TagBigSpender          = "Big Spender"
	TagMissingTotal        = "Missing Total Amount"
	TagWeekendShopper      = "Weekend Shopper"
	TagMissingPurchaseDate = "Missing Purchase Date"
)

var bigSpenderThreshold = decimal.NewFromInt(100)

// Tags classifies a receipt into descriptive labels, evaluated in a
// fixed order. Unlike Points, a total or purchase date that is present
// but unparseable is a hard ValidationError here rather than a zero
// contribution.
func Tags(r *Receipt) ([]string, error) {
	if r == nil {
		return []string{TagInvalidReceipt}, nil
	}

	var tags []string

	if len(nonAlphanumeric.ReplaceAllString(r.Retailer, "")) > 10 {
		tags = append(tags, TagLoyalCustomer)
	}

	if strings.TrimSpace(r.Total) != "" {
		amount, err := decimal.NewFromString(r.Total)
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("invalid total amount format: %s", r.Total)}
		}
		if amount.GreaterThan(bigSpenderThreshold) {
			tags = append(tags, TagBigSpender)
		}
	} else {
		tags = append(tags, TagMissingTotal)
	}

	if strings.TrimSpace(r.PurchaseDate) != "" {
		date, err := time.Parse(dateLayout, r.PurchaseDate)
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("invalid purchase date format: %s", r.PurchaseDate)}
		}
		if day := date.Weekday(); day == time.Saturday || day == time.Sunday {
			tags = append(tags, TagWeekendShopper)
		}
	} else {
		tags = append(tags, TagMissingPurchaseDate)
	}

	return tags, nil
}
