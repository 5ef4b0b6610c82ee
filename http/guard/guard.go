package guard

import (
	"net/http"
	"strings"
)

// A Guard is a precondition a request must satisfy before a route's handler serves it.
//
// Accept must not consume the request body and must not write a response.
// Rejecting a request is not an error: dispatch simply moves on to the next route.
type Guard interface {
	Accept(r *http.Request) bool
}

// The Func type is an adapter allowing an ordinary function to be used as a Guard.
type Func func(*http.Request) bool

// Accept calls fn(r).
func (fn Func) Accept(r *http.Request) bool { return fn(r) }

// Method accepts requests made with the provided HTTP method.
func Method(method string) Guard {
	method = strings.ToUpper(method)
	return Func(func(r *http.Request) bool {
		return r.Method == method
	})
}

// Connect accepts CONNECT requests.
func Connect() Guard { return Method(http.MethodConnect) }

// Delete accepts DELETE requests.
func Delete() Guard { return Method(http.MethodDelete) }

// Get accepts GET requests.
func Get() Guard { return Method(http.MethodGet) }

// Head accepts HEAD requests.
func Head() Guard { return Method(http.MethodHead) }

// Options accepts OPTIONS requests.
func Options() Guard { return Method(http.MethodOptions) }

// Patch accepts PATCH requests.
func Patch() Guard { return Method(http.MethodPatch) }

// Post accepts POST requests.
func Post() Guard { return Method(http.MethodPost) }

// Put accepts PUT requests.
func Put() Guard { return Method(http.MethodPut) }

// Trace accepts TRACE requests.
func Trace() Guard { return Method(http.MethodTrace) }

// Any accepts a request when at least one of the provided Guards accepts it.
//
// Any with no Guards rejects every request.
func Any(guards ...Guard) Guard {
	return Func(func(r *http.Request) bool {
		for _, g := range guards {
			if g.Accept(r) {
				return true
			}
		}

		return false
	})
}

// All accepts a request only when every provided Guard accepts it.
//
// All with no Guards accepts every request.
func All(guards ...Guard) Guard {
	return Func(func(r *http.Request) bool {
		for _, g := range guards {
			if !g.Accept(r) {
				return false
			}
		}

		return true
	})
}

// Not accepts a request when the provided Guard rejects it.
func Not(g Guard) Guard {
	return Func(func(r *http.Request) bool {
		return !g.Accept(r)
	})
}
