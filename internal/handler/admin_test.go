package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The recap job is nil in these tests: any path that wrongly reached it would
// panic, so a clean 401/405 also proves the job was never invoked.
func TestGenerateRecaps_Unauthorized(t *testing.T) {
	h := NewAdminHandler(nil, nil, "secret-key")

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong key", "Bearer wrong"},
		{"not bearer", "secret-key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/generate-recaps", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			h.GenerateRecaps(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized", body["error"])
		})
	}
}

func TestGenerateRecaps_MethodNotAllowed(t *testing.T) {
	h := NewAdminHandler(nil, nil, "secret-key")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/generate-recaps", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	rec := httptest.NewRecorder()

	h.GenerateRecaps(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// An unset admin key denies everything instead of opening the endpoint.
func TestGenerateRecaps_NoKeyConfigured(t *testing.T) {
	h := NewAdminHandler(nil, nil, "")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/generate-recaps", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()

	h.GenerateRecaps(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminFeedback_Unauthorized(t *testing.T) {
	h := NewAdminHandler(nil, nil, "secret-key")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/feedback", nil)
	rec := httptest.NewRecorder()

	h.Feedback(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
