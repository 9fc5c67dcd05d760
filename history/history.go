// Package history persists prompt/response pairs in one append-only document
// per user and turns whatever is stored back into display-ready entries.
package history

import (
	"context"
	"errors"
	"sort"

	"github.com/raushankrgupta/virtual-closet/models"
)

// ErrMissingUser is returned when an operation is attempted without a user id
var ErrMissingUser = errors.New("history: user id is required")

// Outcome says which branch an append took
type Outcome int

const (
	// Failed means neither the append nor the create fallback succeeded
	Failed Outcome = iota
	// Updated means the entry was pushed onto an existing document
	Updated
	// Created means the document did not exist and was created with the entry
	Created
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Created:
		return "created"
	default:
		return "failed"
	}
}

// AppendResult reports the outcome of AppendOrCreate. Reason is set when the
// outcome is Failed.
type AppendResult struct {
	Outcome Outcome
	Reason  string
}

// Store is the per-user history document
type Store interface {
	// Read returns the stored entries in append order, normalized
	Read(ctx context.Context, userID string) ([]models.HistoryEntry, error)
	// AppendOrCreate appends entry, creating the document on first use
	AppendOrCreate(ctx context.Context, userID string, entry models.HistoryEntry) (AppendResult, error)
}

// SortAscending orders entries oldest first. Equal timestamps keep append order.
func SortAscending(entries []models.HistoryEntry) []models.HistoryEntry {
	out := append([]models.HistoryEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

// SortDescending orders entries newest first. Equal timestamps keep append order.
func SortDescending(entries []models.HistoryEntry) []models.HistoryEntry {
	out := append([]models.HistoryEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// Recent returns at most n entries, newest first
func Recent(entries []models.HistoryEntry, n int) []models.HistoryEntry {
	out := SortDescending(entries)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
