/*
Package guard provides match preconditions for routes registered through
[github.com/xy-planning-network/switchback/http/resource].

A [Guard] inspects an *http.Request and reports whether the route it is
attached to should serve that request. Guards never write responses;
a rejection only moves dispatch along to the next candidate route.

The most common Guards pick requests by method:

	rsc.Route(resource.Route{
		Guards:  []guard.Guard{guard.Get()},
		Handler: listHandler,
	})

Guards compose with [Any], [All] and [Not]:

	guard.All(
		guard.Any(guard.Get(), guard.Head()),
		guard.Header("Content-Type", "application/json"),
	)

[JWT] gates a route on a signed token, for wiring internal endpoints
that only trusted services may call.
*/
package guard
