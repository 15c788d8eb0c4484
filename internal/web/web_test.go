package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake/internal/submission"
)

func TestHandlerServesForm(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `fetch("/api/submit"`)
	assert.Contains(t, body, `id="personal-form"`)
}

// The browser must enforce the same rules as the server.
func TestFormMirrorsServerRules(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()

	assert.Contains(t, body, "const EMAIL_PATTERN = /^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$/;")
	assert.Contains(t, body, `const GENDERS = ["male", "female", "other"];`)
	assert.Contains(t, body, "const MIN_AGE = 1;")
	assert.Contains(t, body, "const MAX_AGE = 150;")
	assert.Equal(t, 1, submission.MinAge)
	assert.Equal(t, 150, submission.MaxAge)
}

func TestHandlerUnknownAsset(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
