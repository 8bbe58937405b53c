package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/observability"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

func newErrorApp(handler fiber.Handler) (*fiber.App, *observability.Metrics) {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	app := NewApp(config.Config{}, logger)
	RegisterMiddlewares(app, config.Config{}, logger, metrics)
	app.Get("/boom", handler)
	return app, metrics
}

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestErrorResponseHidesInternalCause(t *testing.T) {
	app, metrics := newErrorApp(func(*fiber.Ctx) error {
		return errors.New("pq: connection refused to 10.0.0.5")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "INTERNAL_ERROR", body["error"])
	assert.NotContains(t, body["message"], "10.0.0.5")
	assert.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))
	assert.NotEmpty(t, metrics.Snapshot().Errors)
}

func TestErrorResponseListsFieldErrors(t *testing.T) {
	app, _ := newErrorApp(func(*fiber.Ctx) error {
		return apperrors.NewValidationError("Validation failed", []string{"title is required"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, []any{"title is required"}, body["errors"])
}

func TestPanicIsRecovered(t *testing.T) {
	app, _ := newErrorApp(func(*fiber.Ctx) error {
		panic("unexpected")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", decodeBody(t, resp.Body)["error"])
}
