package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nordsym/guldkant/internal/adapters/clients"
	"github.com/nordsym/guldkant/internal/domain"
	"github.com/nordsym/guldkant/internal/platform/logging"
	"github.com/nordsym/guldkant/internal/ports"
)

const (
	// serverIDPrefix marks backend-assigned quote identifiers. A quote whose
	// ID carries this prefix exists on the server.
	serverIDPrefix = "GULDKANT-"

	pathQuotes   = "/quotes"
	pathIntake   = "/guldkant-offer-intake-v2"
	pathDispatch = "/quote/dispatch"

	modeCreate = "create"
	modeUpdate = "update"
	modeAuto   = "auto"
)

// QuoteGatewayConfig contains configuration for the quote gateway.
type QuoteGatewayConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the n8n webhook root.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger

	// Now supplies submission timestamps. Defaults to time.Now.
	Now func() time.Time
}

// QuoteGateway implements ports.QuoteGateway against the n8n webhook
// backend. It translates between the backend's wire dialect and domain
// types, and normalizes the workflow's inconsistent response envelopes.
type QuoteGateway struct {
	client *clients.Client
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.QuoteGateway = (*QuoteGateway)(nil)

// NewQuoteGateway creates a new quote gateway adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteGateway(cfg QuoteGatewayConfig) *QuoteGateway {
	if cfg.Client == nil {
		panic("QuoteGateway: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &QuoteGateway{
		client: cfg.Client,
		logger: logger,
		now:    now,
	}
}

// serviceName identifies the backend in errors, logs and health output.
const serviceName = "guldkant-backend"

// FetchPage retrieves up to limit quotes starting after afterID.
// Implements ports.QuoteGateway.
func (g *QuoteGateway) FetchPage(ctx context.Context, limit int, afterID string) (*ports.QuotePage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if afterID != "" {
		params.Set("offsetId", afterID)
	}

	path := pathQuotes + "?" + params.Encode()
	g.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := g.client.Get(ctx, path)
	if err != nil {
		return nil, domain.NewUnavailableError(serviceName, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(serviceName, resp, g.logger)
	}

	env, err := readEnvelope(serviceName, resp, g.logger)
	if err != nil {
		return nil, err
	}

	raws, lastID := env.records(g.logger)

	page := &ports.QuotePage{LastID: lastID}
	for _, raw := range raws {
		var rec quoteRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			g.logger.Warn("skipping malformed quote record", slog.String("record", truncate(string(raw))))
			continue
		}

		page.Records = append(page.Records, recordToDomain(&rec))
	}

	g.logger.DebugContext(ctx, "fetched quote page",
		slog.Int("count", len(page.Records)),
		slog.String("last_id", page.LastID))

	return page, nil
}

// FetchByID retrieves a single quote.
// Implements ports.QuoteGateway.
func (g *QuoteGateway) FetchByID(ctx context.Context, id string) (*domain.Quote, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "quote id is required")
	}

	params := url.Values{}
	params.Set("id", id)
	path := pathQuotes + "?" + params.Encode()

	g.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("path", pathQuotes),
		slog.String("quote_id", id))

	resp, err := g.client.Get(ctx, path)
	if err != nil {
		return nil, domain.NewUnavailableError(serviceName, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.NewNotFoundError("quote", id)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(serviceName, resp, g.logger)
	}

	env, err := readEnvelope(serviceName, resp, g.logger)
	if err != nil {
		return nil, err
	}

	rec := env.record()
	if rec == nil {
		// The workflow answers 200 with an empty payload for unknown IDs.
		return nil, domain.NewNotFoundError("quote", id)
	}

	return recordToDomain(rec), nil
}

// Save persists a quote through the intake webhook. The create/update mode
// travels in the payload so the workflow's branching never has to guess
// from the presence of fields alone.
// Implements ports.QuoteGateway.
func (g *QuoteGateway) Save(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	if q == nil {
		return nil, domain.NewValidationError("quote", "quote is required")
	}

	payload := domainToIntake(q, detectMode(q), g.now())
	if payload.Mode == modeCreate && isPlaceholderID(payload.ID) {
		// Placeholder identifiers must never reach a create; the workflow
		// would try to update a record that does not exist.
		payload.ID = ""
	}

	g.logger.DebugContext(ctx, "saving quote",
		slog.String("quote_id", q.ID),
		slog.String("mode", payload.Mode))

	rec, err := g.postIntake(ctx, payload)
	if err != nil {
		return nil, err
	}

	if rec == nil {
		// Generic success without a record; the caller keeps its own copy.
		return nil, nil
	}

	return recordToDomain(rec), nil
}

// Archive marks a quote archived through the intake webhook. The backend
// has no delete; archiving is a status update with a timestamp.
// Implements ports.QuoteGateway.
func (g *QuoteGateway) Archive(ctx context.Context, id string) (*domain.Quote, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "quote id is required")
	}

	payload := &intakePayload{
		ID:         id,
		Status:     string(domain.StatusArchived),
		ArchivedAt: formatWireTime(g.now()),
		Mode:       modeUpdate,
		Timestamp:  g.now().UTC().Format(time.RFC3339),
	}

	g.logger.DebugContext(ctx, "archiving quote", slog.String("quote_id", id))

	rec, err := g.postIntake(ctx, payload)
	if err != nil {
		return nil, err
	}

	if rec == nil {
		return nil, nil
	}

	return recordToDomain(rec), nil
}

// DispatchProposal asks the backend to email the proposal to the customer.
// Validation happens before any network call; a dispatch without an offer ID
// or recipient would make the workflow send a broken email.
// Implements ports.QuoteGateway.
func (g *QuoteGateway) DispatchProposal(ctx context.Context, q *domain.Quote) error {
	if q == nil {
		return domain.NewValidationError("quote", "quote is required")
	}

	if q.ContactEmail == "" {
		return domain.NewValidationError("contactEmail", "a contact email is required to send a proposal")
	}

	if q.ID == "" {
		return domain.NewValidationError("id", "an offer id is required to send a proposal")
	}

	body, err := json.Marshal(dispatchPayload{
		Action:        "dispatch",
		OfferID:       q.ID,
		CustomerEmail: q.ContactEmail,
	})
	if err != nil {
		return fmt.Errorf("encoding dispatch payload: %w", err)
	}

	g.logger.DebugContext(ctx, "dispatching proposal",
		slog.String("quote_id", q.ID))

	resp, err := g.client.Post(ctx, pathDispatch, bytes.NewReader(body))
	if err != nil {
		return domain.NewUnavailableError(serviceName, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(serviceName, resp, g.logger)
	}

	// The dispatch response carries no data worth keeping.
	if _, err := readEnvelope(serviceName, resp, g.logger); err != nil {
		return err
	}

	return nil
}

// postIntake sends a payload to the intake webhook and extracts the record
// from whatever envelope comes back.
func (g *QuoteGateway) postIntake(ctx context.Context, payload *intakePayload) (*quoteRecord, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding intake payload: %w", err)
	}

	resp, err := g.client.Post(ctx, pathIntake, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewUnavailableError(serviceName, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(serviceName, resp, g.logger)
	}

	env, err := readEnvelope(serviceName, resp, g.logger)
	if err != nil {
		return nil, err
	}

	return env.record(), nil
}

// detectMode decides the intake mode for a quote. A quote with a server
// identity is an update; one with no identity, or still carrying the blank
// draft name, is a create. Anything in between is left to the workflow's
// own branching.
func detectMode(q *domain.Quote) string {
	if q.RawID != "" || strings.HasPrefix(q.ID, serverIDPrefix) {
		return modeUpdate
	}

	if q.ID == "" || q.CustomerName == "Nytt ärende" {
		return modeCreate
	}

	return modeAuto
}

// isPlaceholderID reports whether id is a client-side stand-in rather than
// a real identifier.
func isPlaceholderID(id string) bool {
	return id == "" || id == "new" || strings.HasPrefix(id, "temp-")
}

// Name returns the health check name for this gateway.
// Implements ports.HealthChecker.
func (g *QuoteGateway) Name() string {
	return serviceName
}

// Check verifies connectivity by fetching a minimal page.
// Implements ports.HealthChecker.
func (g *QuoteGateway) Check(ctx context.Context) error {
	resp, err := g.client.Get(ctx, pathQuotes+"?limit=1")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	return nil
}
