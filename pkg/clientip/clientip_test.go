package clientip

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newRequest(remote string, headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = remote
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func TestRealClientIP(t *testing.T) {
	assert.Equal(t, "10.0.0.1", RealClientIP(newRequest("10.0.0.1:5123", nil)))
	assert.Equal(t, "10.0.0.1", RealClientIP(newRequest("10.0.0.1", nil)))
	assert.Equal(t, "10.0.0.1", RealClientIP(newRequest("10.0.0.1:5123", map[string]string{
		"X-Forwarded-For": "203.0.113.9",
	})))
}

func TestForwardedClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "first forwarded hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.2"}, want: "203.0.113.9"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.4"}, want: "198.51.100.4"},
		{name: "remote addr", want: "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForwardedClientIP(newRequest("10.0.0.1:5123", tt.headers)))
		})
	}
}

func TestResolver(t *testing.T) {
	r := newRequest("10.0.0.1:5123", map[string]string{"X-Forwarded-For": "203.0.113.9"})
	assert.Equal(t, "203.0.113.9", Resolver(true)(r))
	assert.Equal(t, "10.0.0.1", Resolver(false)(r))
}
