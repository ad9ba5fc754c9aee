package receipt

import (
	"sync"

	"github.com/google/uuid"
)

// Entry pairs a stored receipt with its identifier. Enumerations return
// entries directly so callers never have to reverse-look-up an id from
// a receipt value.
type Entry struct {
	ID      string   `json:"id"`
	Receipt *Receipt `json:"receipt"`
}

// Store defines the interface for receipt storage.
type Store interface {
	// SaveReceipt stores a receipt and returns its generated id
	SaveReceipt(r *Receipt) (string, error)

	// GetReceipt retrieves a receipt by id
	GetReceipt(id string) (*Receipt, error)

	// UpdateReceipt replaces the receipt stored under an existing id
	UpdateReceipt(id string, r *Receipt) error

	// ListReceipts returns a point-in-time snapshot of all entries
	ListReceipts() ([]Entry, error)

	// Close closes the store
	Close() error
}

// MemoryStore implements Store with an in-process map. Receipts are
// deep-copied on every read and write, so a listing taken during a
// concurrent submit is a consistent snapshot and callers can never
// mutate stored state through a returned pointer.
type MemoryStore struct {
	mu       sync.RWMutex
	receipts map[string]*Receipt
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		receipts: make(map[string]*Receipt),
	}
}

// SaveReceipt stores a copy of the receipt under a fresh UUID.
func (m *MemoryStore) SaveReceipt(r *Receipt) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[id] = r.clone()
	return id, nil
}

// GetReceipt retrieves a receipt by id.
func (m *MemoryStore) GetReceipt(id string) (*Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.receipts[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return r.clone(), nil
}

// UpdateReceipt replaces the receipt stored under id.
func (m *MemoryStore) UpdateReceipt(id string, r *Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.receipts[id]; !ok {
		return &NotFoundError{ID: id}
	}
	m.receipts[id] = r.clone()
	return nil
}

// ListReceipts returns a snapshot of all stored entries.
func (m *MemoryStore) ListReceipts() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]Entry, 0, len(m.receipts))
	for id, r := range m.receipts {
		entries = append(entries, Entry{ID: id, Receipt: r.clone()})
	}
	return entries, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
