package guard

import (
	"net"
	"net/http"
	"strings"
)

// Header accepts requests carrying the provided header with exactly the provided value.
func Header(name, value string) Guard {
	return Func(func(r *http.Request) bool {
		return r.Header.Get(name) == value
	})
}

// HeaderExists accepts requests carrying the provided header, whatever its value.
func HeaderExists(name string) Guard {
	name = http.CanonicalHeaderKey(name)
	return Func(func(r *http.Request) bool {
		_, ok := r.Header[name]
		return ok
	})
}

// Host accepts requests addressed to the provided host, ignoring any port.
func Host(host string) Guard {
	return Func(func(r *http.Request) bool {
		got := r.Host
		if h, _, err := net.SplitHostPort(got); err == nil {
			got = h
		}

		return strings.EqualFold(got, host)
	})
}
