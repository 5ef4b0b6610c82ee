package resource

import (
	"net/http"

	"github.com/xy-planning-network/switchback/http/guard"
)

// A Route pairs a Handler with the Guards a request must satisfy
// for the Handler to serve it.
type Route struct {
	// Guards must all accept a request for the Route to match it.
	// A Route with no Guards matches every request.
	Guards []guard.Guard

	// Handler serves the requests the Route matches.
	Handler http.Handler
}

// match reports whether every Guard accepts r.
func (rt Route) match(r *http.Request) bool {
	for _, g := range rt.Guards {
		if !g.Accept(r) {
			return false
		}
	}

	return true
}
