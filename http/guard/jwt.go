package guard

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// JWT accepts requests presenting a token signed with the provided HMAC-SHA256 key.
//
// The token is read from the Authorization header as a Bearer credential
// or, failing that, from the "jwt" query param.
func JWT(key []byte) Guard {
	parser := &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	return Func(func(r *http.Request) bool {
		tok := bearerToken(r)
		if tok == "" {
			tok = r.URL.Query().Get("jwt")
		}

		if tok == "" {
			return false
		}

		_, err := parser.Parse(tok, func(_ *jwt.Token) (any, error) {
			return key, nil
		})

		return err == nil
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) < len("Bearer ") || !strings.EqualFold(auth[:len("Bearer ")], "Bearer ") {
		return ""
	}

	return auth[len("Bearer "):]
}
