package middleware

import (
	"net/http"

	"github.com/xy-planning-network/switchback/http/resource"
)

// InjectData links dm into every request's context as the enclosing
// data scope, making its values available to handlers through
// [resource.Data]. A resource carrying its own value of a type
// shadows the one in dm.
//
// If dm is empty, NoopAdapter returns and this middleware does nothing.
func InjectData(dm resource.DataMap) Adapter {
	if len(dm) == 0 {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, r.Clone(dm.Link(r.Context())))
		})
	}
}
