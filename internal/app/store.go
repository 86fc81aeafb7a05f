// Package app contains the quote collection store and the use cases that
// mutate it. The store mirrors the backend's records with optimistic local
// updates: mutations apply to the collection immediately, round-trip to the
// backend, and roll back if the backend rejects them.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nordsym/guldkant/internal/domain"
	"github.com/nordsym/guldkant/internal/ports"
)

// DefaultPageSize is the number of quotes fetched per page.
const DefaultPageSize = 12

// Store holds the in-memory quote collection and its sync state. All state
// transitions happen under one mutex; network calls happen outside it, so a
// slow backend never blocks readers. Overlapping saves of the same quote are
// therefore resolved last-write-wins, same as the backend itself.
type Store struct {
	gateway  ports.QuoteGateway
	notifier ports.Notifier
	logger   *slog.Logger
	pageSize int
	now      func() time.Time
	tempID   func() string

	mu           sync.Mutex
	quotes       []*domain.Quote
	lastID       string
	hasMore      bool
	loading      bool
	syncing      bool
	fetchingMore bool
	fetchErr     error
}

// StoreConfig contains configuration for the store.
type StoreConfig struct {
	Gateway  ports.QuoteGateway
	Notifier ports.Notifier
	Logger   *slog.Logger

	// PageSize overrides DefaultPageSize. Zero means the default.
	PageSize int

	// Now and TempID exist for tests. Nil means time.Now and a
	// millisecond-timestamp placeholder.
	Now    func() time.Time
	TempID func() string
}

// NewStore creates a store. Panics if Gateway or Notifier is nil.
func NewStore(cfg StoreConfig) *Store {
	if cfg.Gateway == nil {
		panic("Store: Gateway is required")
	}

	if cfg.Notifier == nil {
		panic("Store: Notifier is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	tempID := cfg.TempID
	if tempID == nil {
		tempID = func() string {
			return fmt.Sprintf("temp-%d", time.Now().UnixMilli())
		}
	}

	return &Store{
		gateway:  cfg.Gateway,
		notifier: cfg.Notifier,
		logger:   logger,
		pageSize: pageSize,
		now:      now,
		tempID:   tempID,
		hasMore:  true,
	}
}

// LoadFirstPage replaces the collection with the first page from the
// backend. A failure empties the collection and records the error for
// FetchError; the previous contents are not kept because they could be
// arbitrarily stale.
func (s *Store) LoadFirstPage(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.fetchErr = nil
	s.mu.Unlock()

	page, err := s.gateway.FetchPage(ctx, s.pageSize, "")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false

	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load quotes", slog.Any("error", err))
		s.fetchErr = err
		s.quotes = nil
		s.hasMore = false

		return err
	}

	s.quotes = page.Records
	s.lastID = page.LastID
	s.hasMore = len(page.Records) == s.pageSize

	s.logger.InfoContext(ctx, "loaded first page",
		slog.Int("count", len(page.Records)),
		slog.Bool("has_more", s.hasMore))

	return nil
}

// LoadNextPage appends the next page to the collection. A no-op when the
// backend has no more records or another page fetch is already running.
func (s *Store) LoadNextPage(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasMore || s.fetchingMore {
		s.mu.Unlock()
		return nil
	}

	s.fetchingMore = true
	afterID := s.lastID
	s.mu.Unlock()

	page, err := s.gateway.FetchPage(ctx, s.pageSize, afterID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetchingMore = false

	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load more quotes", slog.Any("error", err))
		s.notifier.Error(ctx, "Kunde inte ladda fler ärenden.")

		return err
	}

	s.quotes = append(s.quotes, page.Records...)
	s.lastID = page.LastID
	s.hasMore = len(page.Records) == s.pageSize

	return nil
}

// Refresh re-reads the loaded portion of the collection in the background.
// It skips entirely while any load or mutation is in flight; a refresh
// landing mid-mutation would clobber optimistic state.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.loading || s.syncing || s.fetchingMore {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "refresh skipped, store busy")

		return nil
	}

	limit := len(s.quotes)
	if limit < s.pageSize {
		limit = s.pageSize
	}
	s.mu.Unlock()

	page, err := s.gateway.FetchPage(ctx, limit, "")
	if err != nil {
		// Background refreshes fail silently; the user never asked for them.
		s.logger.WarnContext(ctx, "background refresh failed", slog.Any("error", err))

		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A mutation may have started while the fetch was in flight. Its
	// optimistic state wins; this refresh is simply dropped.
	if s.loading || s.syncing || s.fetchingMore {
		s.logger.DebugContext(ctx, "refresh result dropped, store busy")

		return nil
	}

	s.quotes = page.Records
	s.lastID = page.LastID
	s.hasMore = len(page.Records) == limit

	return nil
}

// Quotes returns a deep copy of the collection in display order.
func (s *Store) Quotes() []*domain.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneAll(s.quotes)
}

// Filtered returns a deep copy of the quotes matching the given filter and
// search term, in collection order.
func (s *Store) Filtered(filter, term string) []*domain.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneAll(domain.Project(s.quotes, filter, term))
}

// Get returns a copy of one quote, or nil if it is not loaded.
func (s *Store) Get(id string) *domain.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findLocked(id).Clone()
}

// Summary computes dashboard counts over the loaded collection.
func (s *Store) Summary() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Summarize(s.quotes)
}

// IsLoading reports whether the initial page load is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// IsSyncing reports whether a mutation is in flight.
func (s *Store) IsSyncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.syncing
}

// IsFetchingMore reports whether a next-page fetch is in flight.
func (s *Store) IsFetchingMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fetchingMore
}

// HasMore reports whether the backend likely has more records. True whenever
// the last fetched page came back full.
func (s *Store) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hasMore
}

// FetchError returns the error from the last failed first-page load, or nil.
func (s *Store) FetchError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fetchErr
}

// findLocked returns the live record with the given id. Callers hold s.mu.
func (s *Store) findLocked(id string) *domain.Quote {
	for _, q := range s.quotes {
		if q.ID == id {
			return q
		}
	}

	return nil
}

func cloneAll(quotes []*domain.Quote) []*domain.Quote {
	out := make([]*domain.Quote, len(quotes))
	for i, q := range quotes {
		out[i] = q.Clone()
	}

	return out
}
