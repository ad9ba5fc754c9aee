package receipt

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Item is a single line item on a receipt. Description and price are
// pointers because the reward rules treat a missing field differently
// from an empty one.
type Item struct {
	ShortDescription *string `json:"shortDescription,omitempty"`
	Price            *string `json:"price,omitempty"`
}

// Receipt represents a submitted purchase receipt. Date, time and total
// are kept as the raw strings the caller sent; the engines parse them
// per rule and decide how to treat malformed values.
type Receipt struct {
	Retailer     string   `json:"retailer,omitempty"`
	PurchaseDate string   `json:"purchaseDate,omitempty"`
	PurchaseTime string   `json:"purchaseTime,omitempty"`
	Total        string   `json:"total,omitempty"`
	Items        []Item   `json:"items"`
	Tags         []string `json:"tags,omitempty"`
}

// ValidatePrices checks that every item price that is present parses as
// a non-negative decimal. A nil price passes; a malformed or negative
// one rejects the whole receipt.
func (r *Receipt) ValidatePrices() error {
	for _, item := range r.Items {
		if item.Price == nil {
			continue
		}
		price, err := decimal.NewFromString(*item.Price)
		if err != nil {
			return &ValidationError{Reason: fmt.Sprintf("invalid price format: %s", *item.Price)}
		}
		if price.IsNegative() {
			return &ValidationError{Reason: fmt.Sprintf("item price cannot be negative: %s", *item.Price)}
		}
	}
	return nil
}

// ValidatePurchaseDate rejects a purchase date that falls on a calendar
// day after now. A blank or unparseable date passes; the engines handle
// those downstream.
func (r *Receipt) ValidatePurchaseDate(now time.Time) error {
	if r.PurchaseDate == "" {
		return nil
	}
	date, err := time.Parse(dateLayout, r.PurchaseDate)
	if err != nil {
		return nil
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return &ValidationError{Reason: fmt.Sprintf("purchase date cannot be in the future: %s", r.PurchaseDate)}
	}
	return nil
}

// AddTag appends a tag unless it is empty or already present. Matching
// is exact string equality.
func (r *Receipt) AddTag(tag string) {
	if tag == "" {
		return
	}
	for _, existing := range r.Tags {
		if existing == tag {
			return
		}
	}
	r.Tags = append(r.Tags, tag)
}

// clone returns a deep copy so store reads and writes never share
// mutable state with callers.
func (r *Receipt) clone() *Receipt {
	if r == nil {
		return nil
	}
	c := *r
	c.Items = make([]Item, len(r.Items))
	for i, item := range r.Items {
		c.Items[i] = Item{
			ShortDescription: cloneString(item.ShortDescription),
			Price:            cloneString(item.Price),
		}
	}
	c.Tags = append([]string(nil), r.Tags...)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
