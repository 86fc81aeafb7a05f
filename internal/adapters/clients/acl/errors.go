package acl

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/nordsym/guldkant/internal/domain"
)

// statusError maps a non-2xx webhook response to a domain error. The body is
// logged but never surfaced to callers; webhook error bodies regularly
// contain workflow internals.
func statusError(service string, resp *http.Response, logger *slog.Logger) error {
	body, _ := io.ReadAll(resp.Body)

	logger.Warn("backend error response",
		slog.String("service", service),
		slog.Int("status_code", resp.StatusCode),
		slog.String("body", truncate(string(body))))

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.NewConflictError("quote", fmt.Sprintf("HTTP %d", resp.StatusCode))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewValidationError("payload", fmt.Sprintf("rejected with HTTP %d", resp.StatusCode))
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return domain.NewUnavailableError(service, fmt.Sprintf("HTTP %d", resp.StatusCode))
	default:
		return domain.NewUnavailableError(service, fmt.Sprintf("unexpected HTTP %d", resp.StatusCode))
	}
}
