// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrValidation, etc.)
//   - Methods represent business operations, not CRUD operations
package ports

import (
	"context"

	"github.com/nordsym/guldkant/internal/domain"
)

// QuotePage is one page of quotes from the backend, with the cursor for
// the next page. LastID is empty when the backend did not supply one.
type QuotePage struct {
	Records []*domain.Quote
	LastID  string
}

// QuoteGateway is the contract for the remote quote backend. Adapters
// normalize the backend's inconsistent response envelopes behind this
// interface; callers never see wire shapes.
//
// The gateway never retries on its own. Failures surface as domain errors
// and the caller decides whether to roll back optimistic state.
type QuoteGateway interface {
	// FetchPage retrieves up to limit quotes. afterID is the opaque
	// cursor from the previous page's LastID; empty for the first page.
	FetchPage(ctx context.Context, limit int, afterID string) (*QuotePage, error)

	// FetchByID retrieves a single quote.
	// Returns domain.ErrNotFound when the backend sends an empty payload.
	FetchByID(ctx context.Context, id string) (*domain.Quote, error)

	// Save persists a quote, creating or updating based on whether it
	// carries a server identity. Returns the backend's canonical record,
	// which may differ from what was sent, or nil when the backend
	// acknowledged without returning one.
	Save(ctx context.Context, q *domain.Quote) (*domain.Quote, error)

	// Archive marks a quote archived. This is the only delete operation
	// the backend exposes; records are never hard-deleted.
	Archive(ctx context.Context, id string) (*domain.Quote, error)

	// DispatchProposal asks the backend to email the proposal to the
	// customer. Returns domain.ErrValidation before any network call when
	// the quote lacks a contact email or an offer identifier.
	DispatchProposal(ctx context.Context, q *domain.Quote) error
}

// Notifier is the sink for transient user-facing notifications. The HTTP
// adapter surfaces these as dismissible toasts; tests use a recording fake.
type Notifier interface {
	// Success reports that an operation completed.
	Success(ctx context.Context, message string)

	// Error reports a user-actionable failure. Never used for silent
	// internal errors - those go to the logger.
	Error(ctx context.Context, message string)
}
