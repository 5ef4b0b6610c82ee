/*
The middleware package defines what a middleware is in switchback and a set of basic middlewares.

The available middlewares are:
- CORS
- ForceHTTPS
- InjectData
- InjectIPAddress
- LogRequest
- RateLimit
- Replay
- ReportPanic
- RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.ReportPanic(env),
	}
*/
package middleware
