package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nordsym/guldkant/internal/domain"
)

// Save persists a quote, optimistically updating the collection first. A new
// quote (one without an ID) is prepended under a temporary placeholder ID
// and swapped for the backend's record once it exists; an existing quote is
// replaced in place. On failure the collection reverts to its pre-save state
// and the error is reported through the notifier.
//
// The total and the lastUpdated stamp are recomputed here; whatever the
// caller left in those fields is never trusted.
func (s *Store) Save(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	if q == nil {
		return nil, domain.NewValidationError("quote", "quote is required")
	}

	stamped := q.Clone()
	stamped.Total = domain.ComputeTotal(stamped)
	stamped.LastUpdated = s.now()

	isNew := stamped.ID == ""
	tempID := ""

	optimistic := stamped.Clone()
	if isNew {
		tempID = s.tempID()
		optimistic.ID = tempID
	}

	s.logger.InfoContext(ctx, "saving quote",
		slog.String("quote_id", stamped.ID),
		slog.Bool("new", isNew))

	saved, err := runOptimistic(ctx, s,
		func(quotes []*domain.Quote) []*domain.Quote {
			if isNew {
				// New quotes go first so they are visible immediately.
				return append([]*domain.Quote{optimistic}, quotes...)
			}

			return replaceByID(quotes, optimistic.ID, optimistic)
		},
		func(ctx context.Context) (*domain.Quote, error) {
			// The temporary ID stays local; the backend sees the quote
			// exactly as the caller identified it.
			return s.gateway.Save(ctx, stamped)
		},
		func(quotes []*domain.Quote, saved *domain.Quote) []*domain.Quote {
			if saved == nil {
				// Backend acknowledged without a record; the optimistic
				// entry is the best truth available.
				return quotes
			}

			if isNew {
				return replaceByID(quotes, tempID, saved.Clone())
			}

			return replaceByID(quotes, saved.ID, saved.Clone())
		},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save quote",
			slog.String("quote_id", stamped.ID),
			slog.Any("error", err))
		s.notifier.Error(ctx, fmt.Sprintf("Kunde inte spara: %v", err))

		return nil, err
	}

	if isNew {
		s.notifier.Success(ctx, "Ärende skapat!")
	} else {
		s.notifier.Success(ctx, "Ändringar sparade!")
	}

	if saved == nil {
		return optimistic.Clone(), nil
	}

	return saved.Clone(), nil
}

// AddNew creates and saves a blank draft dated today.
func (s *Store) AddNew(ctx context.Context) (*domain.Quote, error) {
	return s.Save(ctx, domain.NewDraft(s.now()))
}

// Copy saves a fresh draft derived from the quote with the given id,
// stripping identity, totals and audit history.
func (s *Store) Copy(ctx context.Context, id string) (*domain.Quote, error) {
	src := s.Get(id)
	if src == nil {
		return nil, domain.NewNotFoundError("quote", id)
	}

	return s.Save(ctx, domain.CopyOf(src, s.now()))
}

// ChangeStatus saves the quote with the given id under a new status.
func (s *Store) ChangeStatus(ctx context.Context, id string, status domain.Status) (*domain.Quote, error) {
	q := s.Get(id)
	if q == nil {
		return nil, domain.NewNotFoundError("quote", id)
	}

	q.Status = status

	return s.Save(ctx, q)
}

// Archive optimistically removes the quote from the collection and asks the
// backend to archive it. On failure the quote reappears.
func (s *Store) Archive(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "archiving quote", slog.String("quote_id", id))

	_, err := runOptimistic(ctx, s,
		func(quotes []*domain.Quote) []*domain.Quote {
			return removeByID(quotes, id)
		},
		func(ctx context.Context) (*domain.Quote, error) {
			return s.gateway.Archive(ctx, id)
		},
		func(quotes []*domain.Quote, _ *domain.Quote) []*domain.Quote {
			return quotes
		},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to archive quote",
			slog.String("quote_id", id),
			slog.Any("error", err))
		s.notifier.Error(ctx, fmt.Sprintf("Kunde inte arkivera: %v", err))

		return err
	}

	s.notifier.Success(ctx, fmt.Sprintf("Ärende %s har arkiverats.", id))

	return nil
}

// SendProposal asks the backend to email the proposal for the quote with
// the given id. There is no optimistic step: the email either goes out or
// it does not, and nothing local can predict which. Only after the backend
// confirms does the local status move to proposal-sent.
func (s *Store) SendProposal(ctx context.Context, id string) error {
	q := s.Get(id)
	if q == nil {
		return domain.NewNotFoundError("quote", id)
	}

	s.mu.Lock()
	s.syncing = true
	s.mu.Unlock()

	err := s.gateway.DispatchProposal(ctx, q)

	s.mu.Lock()
	s.syncing = false

	if err == nil {
		if live := s.findLocked(id); live != nil {
			live.Status = domain.StatusProposalSent
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.ErrorContext(ctx, "failed to dispatch proposal",
			slog.String("quote_id", id),
			slog.Any("error", err))
		s.notifier.Error(ctx, fmt.Sprintf("Kunde inte skicka offert: %v", err))

		return err
	}

	s.notifier.Success(ctx, "Offert har skickats till kund!")

	return nil
}

// ApproveProposal marks a sent proposal as approved by the customer.
func (s *Store) ApproveProposal(ctx context.Context, id string) (*domain.Quote, error) {
	return s.ChangeStatus(ctx, id, domain.StatusApproved)
}

// replaceByID swaps the quote with the given id for repl. Order is kept.
// No-op when the id is not present.
func replaceByID(quotes []*domain.Quote, id string, repl *domain.Quote) []*domain.Quote {
	for i, q := range quotes {
		if q.ID == id {
			quotes[i] = repl
			break
		}
	}

	return quotes
}

// removeByID drops the quote with the given id, keeping order.
func removeByID(quotes []*domain.Quote, id string) []*domain.Quote {
	out := quotes[:0]
	for _, q := range quotes {
		if q.ID != id {
			out = append(out, q)
		}
	}

	return out
}
