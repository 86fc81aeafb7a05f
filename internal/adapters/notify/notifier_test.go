package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifierSuccess(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	notifier.Success(context.Background(), "Ärende skapat!")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "success", entry["kind"])
	assert.Equal(t, "Ärende skapat!", entry["message"])
}

func TestLogNotifierError(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	notifier.Error(context.Background(), "Kunde inte spara: timeout")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "error", entry["kind"])
}

func TestLogNotifierNilLogger(t *testing.T) {
	notifier := NewLogNotifier(nil)
	assert.NotNil(t, notifier.logger)
}
