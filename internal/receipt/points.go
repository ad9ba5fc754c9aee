package receipt

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
	roundTotal      = regexp.MustCompile(`^\d+\.00$`)

	quarter       = decimal.New(25, -2) // 0.25
	itemBonusRate = decimal.New(2, -1)  // 0.2
)

// Points calculates the total reward points for a receipt. The result
// is the sum of independent sub-rules; each sub-rule absorbs missing or
// malformed data as a zero contribution, so the only error is a nil
// receipt.
func Points(r *Receipt) (int, error) {
	if r == nil {
		return 0, &InvalidInputError{Reason: "receipt cannot be nil"}
	}

	points := retailerPoints(r.Retailer)
	points += totalPoints(r.Total)
	points += itemPoints(r.Items)
	points += purchaseDayPoints(r.PurchaseDate)
	points += purchaseTimePoints(r.PurchaseTime)

	return points, nil
}

// retailerPoints awards one point per alphanumeric character in the
// retailer name.
func retailerPoints(retailer string) int {
	return len(nonAlphanumeric.ReplaceAllString(retailer, ""))
}

// totalPoints awards 50 points when the total is literally written as
// digits followed by ".00" and 25 points when its value is a multiple
// of 0.25. The round-total check is textual: "10.0" and "10" do not
// qualify even though they equal 10.00.
func totalPoints(total string) int {
	if total == "" {
		return 0
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return 0
	}

	points := 0
	if roundTotal.MatchString(total) {
		points += 50
	}
	if amount.Mod(quarter).IsZero() {
		points += 25
	}
	return points
}

// itemPoints awards 5 points per two items, plus ceil(price * 0.2) for
// each item whose trimmed description length is a multiple of 3. Items
// missing a description or a parseable price are skipped without
// aborting the loop. An empty trimmed description has length 0, which
// is a multiple of 3.
func itemPoints(items []Item) int {
	if len(items) == 0 {
		return 0
	}

	points := len(items) / 2 * 5

	for _, item := range items {
		if item.ShortDescription == nil || item.Price == nil {
			continue
		}
		price, err := decimal.NewFromString(*item.Price)
		if err != nil {
			continue
		}
		desc := strings.TrimSpace(*item.ShortDescription)
		if utf8.RuneCountInString(desc)%3 == 0 {
			points += int(price.Mul(itemBonusRate).Ceil().IntPart())
		}
	}
	return points
}

// purchaseDayPoints awards 6 points when the purchase day of month is
// odd.
func purchaseDayPoints(purchaseDate string) int {
	if purchaseDate == "" {
		return 0
	}
	date, err := time.Parse(dateLayout, purchaseDate)
	if err != nil {
		return 0
	}
	if date.Day()%2 == 1 {
		return 6
	}
	return 0
}

// purchaseTimePoints awards 10 points for purchases strictly between
// 14:00 and 16:00. Both boundaries are exclusive.
func purchaseTimePoints(purchaseTime string) int {
	if purchaseTime == "" {
		return 0
	}
	t, err := time.Parse(timeLayout, purchaseTime)
	if err != nil {
		return 0
	}
	minutes := t.Hour()*60 + t.Minute()
	if minutes > 14*60 && minutes < 16*60 {
		return 10
	}
	return 0
}
