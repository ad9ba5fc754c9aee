package receipt

import (
	"fmt"
	"time"
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// TagResult is the outcome of classifying a receipt: its id and the
// full tag set after the new tags were merged in.
type TagResult struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

// InventoryUpdate is the outcome of replacing a receipt's item list.
type InventoryUpdate struct {
	ID     string `json:"id"`
	Items  []Item `json:"items"`
	Points int    `json:"points"`
}

// Service handles receipt operations
type Service struct {
	store      Store
	timeSource TimeSource
}

// NewService creates a new Service with the default time source
func NewService(store Store) *Service {
	return &Service{
		store:      store,
		timeSource: &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with a custom time source for testing
func NewServiceWithDeps(store Store, timeSrc TimeSource) *Service {
	return &Service{
		store:      store,
		timeSource: timeSrc,
	}
}

// SubmitReceipt validates a receipt and stores it, returning the
// generated id. Item prices must be non-negative and parseable; a
// parseable purchase date must not be in the future. Nothing else is
// validated at submission.
func (s *Service) SubmitReceipt(r *Receipt) (string, error) {
	if r == nil {
		return "", &ValidationError{Reason: "receipt cannot be nil"}
	}
	if err := r.ValidatePrices(); err != nil {
		return "", err
	}
	if err := r.ValidatePurchaseDate(s.timeSource.Now()); err != nil {
		return "", err
	}

	id, err := s.store.SaveReceipt(r)
	if err != nil {
		return "", fmt.Errorf("saving receipt: %w", err)
	}
	return id, nil
}

// GetReceipt retrieves a receipt by ID
func (s *Service) GetReceipt(id string) (*Receipt, error) {
	r, err := s.store.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return r, nil
}

// ListReceipts returns all stored receipts with their ids
func (s *Service) ListReceipts() ([]Entry, error) {
	entries, err := s.store.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return entries, nil
}

// ReceiptPoints recomputes the reward points for a stored receipt.
func (s *Service) ReceiptPoints(id string) (int, error) {
	r, err := s.store.GetReceipt(id)
	if err != nil {
		return 0, fmt.Errorf("getting receipt: %w", err)
	}
	points, err := Points(r)
	if err != nil {
		return 0, fmt.Errorf("calculating points: %w", err)
	}
	return points, nil
}

// TagReceipt classifies a stored receipt, merges the resulting tags
// into its tag set with exact-string dedup, persists the update, and
// returns the full tag list.
func (s *Service) TagReceipt(id string) (*TagResult, error) {
	r, err := s.store.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}

	tags, err := Tags(r)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		r.AddTag(tag)
	}

	if err := s.store.UpdateReceipt(id, r); err != nil {
		return nil, fmt.Errorf("updating receipt tags: %w", err)
	}

	// Always return an array, not nil
	merged := r.Tags
	if merged == nil {
		merged = []string{}
	}
	return &TagResult{ID: id, Tags: merged}, nil
}

// SortedReceipts lists all receipts ordered by the given criteria.
func (s *Service) SortedReceipts(criteria SortCriteria) ([]SortedReceipt, error) {
	entries, err := s.store.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return sortReceipts(entries, criteria)
}

// UpdateInventory replaces a receipt's item list, revalidates the new
// prices, recomputes points, and persists the change. Other fields are
// left untouched and the purchase date is not revalidated.
func (s *Service) UpdateInventory(id string, items []Item) (*InventoryUpdate, error) {
	r, err := s.store.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}

	if items == nil {
		items = []Item{}
	}
	r.Items = items
	if err := r.ValidatePrices(); err != nil {
		return nil, err
	}

	points, err := Points(r)
	if err != nil {
		return nil, fmt.Errorf("calculating points: %w", err)
	}

	if err := s.store.UpdateReceipt(id, r); err != nil {
		return nil, fmt.Errorf("updating receipt items: %w", err)
	}
	return &InventoryUpdate{ID: id, Items: r.Items, Points: points}, nil
}

// Analytics aggregates count, mean points, and the highest-total
// receipt across all stored receipts.
func (s *Service) Analytics() (*Analytics, error) {
	entries, err := s.store.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return analyzeReceipts(entries), nil
}
