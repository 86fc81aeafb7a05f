// Package mocks provides hand-maintained test doubles for the port
// interfaces. They follow the plain testify/mock style: arrange with On,
// verify with AssertExpectations.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nordsym/guldkant/internal/domain"
	"github.com/nordsym/guldkant/internal/ports"
)

// QuoteGateway is a mock implementation of ports.QuoteGateway.
type QuoteGateway struct {
	mock.Mock
}

var _ ports.QuoteGateway = (*QuoteGateway)(nil)

func (m *QuoteGateway) FetchPage(ctx context.Context, limit int, afterID string) (*ports.QuotePage, error) {
	args := m.Called(ctx, limit, afterID)

	page, _ := args.Get(0).(*ports.QuotePage)

	return page, args.Error(1)
}

func (m *QuoteGateway) FetchByID(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)

	q, _ := args.Get(0).(*domain.Quote)

	return q, args.Error(1)
}

func (m *QuoteGateway) Save(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	args := m.Called(ctx, q)

	saved, _ := args.Get(0).(*domain.Quote)

	return saved, args.Error(1)
}

func (m *QuoteGateway) Archive(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)

	archived, _ := args.Get(0).(*domain.Quote)

	return archived, args.Error(1)
}

func (m *QuoteGateway) DispatchProposal(ctx context.Context, q *domain.Quote) error {
	args := m.Called(ctx, q)

	return args.Error(0)
}

// Notifier is a mock implementation of ports.Notifier.
type Notifier struct {
	mock.Mock
}

var _ ports.Notifier = (*Notifier)(nil)

func (m *Notifier) Success(ctx context.Context, message string) {
	m.Called(ctx, message)
}

func (m *Notifier) Error(ctx context.Context, message string) {
	m.Called(ctx, message)
}
