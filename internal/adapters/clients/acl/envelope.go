package acl

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/nordsym/guldkant/internal/domain"
)

// maxBodyLog caps how much of a bad response body ends up in logs and errors.
const maxBodyLog = 2048

// envelope is a parsed webhook response. The n8n workflows are not
// consistent about what they return: some nodes emit JSON, some emit plain
// text, some emit nothing at all. An envelope with a nil payload is a
// success that carried no data.
type envelope struct {
	payload json.RawMessage
}

// listEnvelope covers the object form of the list response.
type listEnvelope struct {
	Quotes []json.RawMessage `json:"quotes"`
	LastID string            `json:"lastId"`
}

// singleEnvelope covers the wrappers some workflow nodes put around a
// single record.
type singleEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Quote json.RawMessage `json:"quote"`
}

// readEnvelope consumes a 2xx response body and classifies it.
//
//   - empty body: success with no payload
//   - JSON content type, valid JSON: payload kept for extraction
//   - JSON content type, invalid JSON: ParseError carrying the body
//   - any other content type: success with no payload, body logged
func readEnvelope(service string, resp *http.Response, logger *slog.Logger) (*envelope, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(service, "reading response: "+err.Error())
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return &envelope{}, nil
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		logger.Debug("non-JSON response treated as success",
			slog.String("service", service),
			slog.String("body", truncate(text)))

		return &envelope{}, nil
	}

	if !json.Valid([]byte(text)) {
		logger.Error("response claimed JSON but failed to parse",
			slog.String("service", service),
			slog.String("body", truncate(text)))

		return nil, domain.NewParseError(service, resp.StatusCode, truncate(text), nil)
	}

	return &envelope{payload: json.RawMessage(text)}, nil
}

// records extracts the quote list and pagination cursor. The workflow has
// returned both `{"quotes": [...], "lastId": ...}` and a bare array over
// time; anything else is logged and treated as an empty page.
func (e *envelope) records(logger *slog.Logger) ([]json.RawMessage, string) {
	if e.payload == nil {
		return nil, ""
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(e.payload, &bare); err == nil {
		return bare, ""
	}

	var wrapped listEnvelope
	if err := json.Unmarshal(e.payload, &wrapped); err == nil && wrapped.Quotes != nil {
		return wrapped.Quotes, wrapped.LastID
	}

	logger.Warn("unexpected list response shape", slog.String("body", truncate(string(e.payload))))

	return nil, ""
}

// record extracts a single quote, unwrapping the data/quote envelopes some
// nodes add. Returns nil when the payload holds no usable record.
func (e *envelope) record() *quoteRecord {
	if e.payload == nil {
		return nil
	}

	payload := e.payload

	var wrapper singleEnvelope
	if err := json.Unmarshal(payload, &wrapper); err == nil {
		if wrapper.Data != nil {
			payload = wrapper.Data
		} else if wrapper.Quote != nil {
			payload = wrapper.Quote
		}
	}

	var rec quoteRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil
	}

	if rec.ID == "" && rec.RawID == "" {
		return nil
	}

	return &rec
}

func truncate(s string) string {
	if len(s) > maxBodyLog {
		return s[:maxBodyLog]
	}

	return s
}
