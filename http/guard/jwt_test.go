package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/guard"
)

func TestJWT(t *testing.T) {
	// Arrange
	key := []byte("test-signing-key")
	g := guard.JWT(key)

	signed := func(t *testing.T, method jwt.SigningMethod, key []byte, exp time.Time) string {
		t.Helper()
		tok, err := jwt.NewWithClaims(method, jwt.MapClaims{"exp": exp.Unix()}).SignedString(key)
		require.Nil(t, err)
		return tok
	}

	future := time.Now().Add(time.Hour)

	tcs := []struct {
		name     string
		header   string
		query    string
		expected bool
	}{
		{"No-Token", "", "", false},
		{"Bearer-Valid", "Bearer " + signed(t, jwt.SigningMethodHS256, key, future), "", true},
		{"Query-Valid", "", signed(t, jwt.SigningMethodHS256, key, future), true},
		{"Wrong-Key", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other-key"), future), "", false},
		{"Wrong-Alg", "Bearer " + signed(t, jwt.SigningMethodHS512, key, future), "", false},
		{"Expired", "Bearer " + signed(t, jwt.SigningMethodHS256, key, time.Now().Add(-time.Hour)), "", false},
		{"Not-A-Token", "Bearer definitely.not.jwt", "", false},
		{"Basic-Credential-Ignored", "Basic dXNlcjpwYXNz", "", false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			target := "/internal/report"
			if tc.query != "" {
				target += "?jwt=" + tc.query
			}

			r := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			// Act + Assert
			require.Equal(t, tc.expected, g.Accept(r))
		})
	}
}
