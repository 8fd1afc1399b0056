package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	cblog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themer/internal/ports"
)

func decodeLine(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	payload := make(map[string]interface{})
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(line)), &payload))
	return payload
}

func TestLoggerIncludesCorrelationIDAndLayer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:     &buf,
		Level:      "debug",
		Formatter:  cblog.JSONFormatter,
		Layer:      "infrastructure",
		Component:  "loader",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	})
	require.NoError(t, err)

	ctx := ports.WithCorrelationID(context.Background(), "abc123")
	logger.Info(ctx, "themes loaded", "source", "/themes.json")

	payload := decodeLine(t, buf.String())
	require.Equal(t, "infrastructure", payload["layer"])
	require.Equal(t, "loader", payload["component"])
	require.Equal(t, "abc123", payload["correlation_id"])
	require.Equal(t, "/themes.json", payload["source"])
	require.Equal(t, "themes loaded", payload["msg"])
}

func TestLoggerWithAddsFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Format: "json"})
	require.NoError(t, err)

	child := logger.With("component", "orchestrator").(*Logger)
	child.Warn(context.Background(), "theme not found", "theme", "missing")

	payload := decodeLine(t, buf.String())
	require.Equal(t, "orchestrator", payload["component"])
	require.Equal(t, "missing", payload["theme"])
	require.Equal(t, "infrastructure", payload["layer"])
}

func TestLoggerRejectsUnknownSettings(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)

	_, err = New(Options{Format: "xml"})
	require.Error(t, err)
}

func TestLoggerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "warn", Format: "json"})
	require.NoError(t, err)

	logger.Debug(context.Background(), "resolving")
	logger.Info(context.Background(), "resolved")
	require.Zero(t, buf.Len())

	logger.Error(context.Background(), "export failed")
	require.NotZero(t, buf.Len())
}

func TestNoOpLogger(t *testing.T) {
	t.Parallel()

	noOp := NewNoOpLogger()
	noOp.Info(context.Background(), "hello world")
	require.Equal(t, noOp, noOp.With("key", "value"))
}

func TestCommandContextKeepsExistingID(t *testing.T) {
	t.Parallel()

	ctx, id := CommandContext(context.Background())
	require.NotEmpty(t, id)
	require.Equal(t, id, ports.GetCorrelationID(ctx))

	again, sameID := CommandContext(ctx)
	require.Equal(t, id, sameID)
	require.Equal(t, ctx, again)

	_, fresh := CommandContext(context.Background())
	require.NotEqual(t, id, fresh)
}
