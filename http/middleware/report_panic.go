package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/switchback"
)

// ReportPanic recovers and reports panicking handlers to Sentry,
// returning a 500 to the client instead of tearing the connection down.
//
// In development, NoopAdapter returns so panics surface locally
// with their full stack.
func ReportPanic(env switchback.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(handler http.Handler) http.Handler {
		return sh.Handle(handler)
	}
}
