package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCORSRouter(t *testing.T, enabled bool, origins string) *gin.Engine {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := gin.New()
	if middleware := createCORSMiddleware(enabled, origins, logger); middleware != nil {
		router.Use(middleware)
	}
	router.PUT("/projects/add-user", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Success_Disabled", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(false, "https://editor.example.com", logger))
	})

	t.Run("Success_EnabledWithoutOrigins", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, " , ", logger))
	})

	t.Run("Success_WildcardOnly", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, "*", logger))
	})

	t.Run("Success_Enabled", func(t *testing.T) {
		assert.NotNil(t, createCORSMiddleware(true, "https://editor.example.com", logger))
	})
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{
			name:     "trims whitespace and trailing slash",
			input:    " https://editor.example.com/ , http://localhost:3000 ",
			expected: []string{"https://editor.example.com", "http://localhost:3000"},
		},
		{
			name:     "drops duplicates and wildcard",
			input:    "https://editor.example.com,*,https://editor.example.com",
			expected: []string{"https://editor.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOrigins(tt.input))
		})
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	router := newCORSRouter(t, true, "https://editor.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/projects/add-user", nil)
	req.Header.Set("Origin", "https://editor.example.com")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://editor.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_DisabledAddsNoHeaders(t *testing.T) {
	router := newCORSRouter(t, false, "https://editor.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/projects/add-user", nil)
	req.Header.Set("Origin", "https://editor.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	router := newCORSRouter(t, true, "https://editor.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/projects/add-user", nil)
	req.Header.Set("Origin", "https://editor.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}
