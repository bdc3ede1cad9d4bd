package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golfimprover/golfimprover/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxy_MissingPrompt(t *testing.T) {
	h := NewAIHandler(service.NewAIService("", "gpt-test"))

	cases := []string{
		``,
		`{}`,
		`{"prompt": "   "}`,
		`not json`,
	}

	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/openai", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Proxy(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestProxy_MethodNotAllowed(t *testing.T) {
	h := NewAIHandler(service.NewAIService("", "gpt-test"))

	req := httptest.NewRequest(http.MethodGet, "/api/openai", nil)
	rec := httptest.NewRecorder()

	h.Proxy(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// Without an API key the provider is unavailable; the proxy reports a server
// error rather than succeeding with nothing.
func TestProxy_ProviderUnavailable(t *testing.T) {
	h := NewAIHandler(service.NewAIService("", "gpt-test"))

	req := httptest.NewRequest(http.MethodPost, "/api/openai", strings.NewReader(`{"prompt": "hello", "type": "plan"}`))
	rec := httptest.NewRecorder()

	h.Proxy(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}
