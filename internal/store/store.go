// Package store holds process-lifetime document records.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/claims"
)

// Record pairs extracted raw text with its parsed claim data, keyed by a
// generated identifier. Records are immutable once stored.
type Record struct {
	ID      string
	RawText string
	Claim   claims.ClaimData
}

// DocumentStore is the process-wide mapping from identifier to record.
// Implementations must support concurrent Put and Get. Nothing is persisted
// and nothing expires; contents end with the process.
type DocumentStore interface {
	Put(rawText string, claim claims.ClaimData) string
	Get(id string) (Record, bool)
	Count() int
}

// MemoryStore is a mutex-guarded in-memory DocumentStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Put inserts a record under a fresh identifier and returns it. Every call
// generates its own key, so existing entries are never overwritten.
func (s *MemoryStore) Put(rawText string, claim claims.ClaimData) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.records[id] = Record{ID: id, RawText: rawText, Claim: claim}
	s.mu.Unlock()
	return id
}

// Get is a pure lookup; no mutation, no expiry.
func (s *MemoryStore) Get(id string) (Record, bool) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	return rec, ok
}

// Count reports the number of stored records.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
