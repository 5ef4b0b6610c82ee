package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/guard"
)

func TestHeader(t *testing.T) {
	tcs := []struct {
		name     string
		guard    guard.Guard
		expected bool
	}{
		{"Exact-Value", guard.Header("Content-Type", "text/plain"), true},
		{"Lowered-Name-Canonicalized", guard.Header("content-type", "text/plain"), true},
		{"Wrong-Value", guard.Header("Content-Type", "text/json"), false},
		{"Missing-Header", guard.Header("X-Missing", "anything"), false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			r.Header.Set("Content-Type", "text/plain")

			// Act + Assert
			require.Equal(t, tc.expected, tc.guard.Accept(r))
		})
	}
}

func TestHeaderExists(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.Header.Set("X-Request-Id", "abc-123")

	// Act + Assert
	require.True(t, guard.HeaderExists("X-Request-Id").Accept(r))
	require.True(t, guard.HeaderExists("x-request-id").Accept(r))
	require.False(t, guard.HeaderExists("X-Missing").Accept(r))
}

func TestHost(t *testing.T) {
	tcs := []struct {
		name     string
		reqHost  string
		expected bool
	}{
		{"Exact", "example.com", true},
		{"Ignores-Port", "example.com:8080", true},
		{"Case-Insensitive", "EXAMPLE.com", true},
		{"Other-Host", "example.org", false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			r.Host = tc.reqHost

			// Act + Assert
			require.Equal(t, tc.expected, guard.Host("example.com").Accept(r))
		})
	}
}
