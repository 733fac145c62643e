package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vijayfix/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRoleMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/any", RoleMiddleware(), func(c *gin.Context) {
		role, _ := RoleFrom(c)
		c.String(http.StatusOK, string(role))
	})
	r.GET("/tech", RoleMiddleware(models.SenderTechnician), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		path, role string
		status     int
		body       string
	}{
		{"/any", "customer", http.StatusOK, "CUSTOMER"},
		{"/any", "Technician", http.StatusOK, "TECHNICIAN"},
		{"/any", "", http.StatusBadRequest, ""},
		{"/any", "admin", http.StatusBadRequest, ""},
		{"/tech", "customer", http.StatusForbidden, ""},
		{"/tech", "technician", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.role != "" {
			req.Header.Set("role", tt.role)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tt.status, w.Code, "%s as %q", tt.path, tt.role)
		if tt.body != "" {
			assert.Equal(t, tt.body, w.Body.String())
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "/ping", entries[0].ContextMap()["path"])
}
