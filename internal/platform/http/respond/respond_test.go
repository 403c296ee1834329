package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mdobak/go-xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction_backend/internal/platform/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/x", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	return w
}

func TestError(t *testing.T) {
	w := serve(func(c *gin.Context) { Error(c, http.StatusConflict, "listing is closed") })

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"listing is closed"}`, w.Body.String())
}

func TestFieldErrors(t *testing.T) {
	w := serve(func(c *gin.Context) {
		FieldErrors(c, validation.FieldErrors{"title": "this field is required"})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"validation failed","fields":{"title":"this field is required"}}`, w.Body.String())
}

func TestBindError_NonValidatorError(t *testing.T) {
	w := serve(func(c *gin.Context) { BindError(c, errors.New("unexpected EOF")) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"body": "invalid request body"}, body["fields"])
}

func TestServerError_LogsStack(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	w := serve(func(c *gin.Context) { ServerError(c, xerrors.New("disk on fire")) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "disk on fire")
	assert.Contains(t, buf.String(), `"stack"`)
}
