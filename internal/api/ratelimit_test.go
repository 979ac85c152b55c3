package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIPIgnoresForwardHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.RemoteAddr = "203.0.113.9:61234"
	r.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	r.Header.Set("X-Real-IP", "10.9.9.9")

	// RealIP middleware owns header handling; the bucket key must come
	// from the resolved connection address only.
	assert.Equal(t, "203.0.113.9", clientIP(r))
}

func TestClientIPWithoutPort(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.RemoteAddr = "203.0.113.9"

	assert.Equal(t, "203.0.113.9", clientIP(r))
}
