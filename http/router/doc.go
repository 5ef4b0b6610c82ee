/*
Package router mounts resources and plain routes on a gorilla/mux backend.

A [*Router] is the resource.ServiceRegistrar a [resource.Resource] registers
itself against. Each registration mounts the resource's compiled service at
one pattern, gated by the resource's guards. Because a resource registers
both its slash and non-slash pattern variants, a [*Router] serves both
without redirecting between them.

For endpoints that don't need resource semantics, a [Route] pairs a path
and an HTTP method with an [http.HandlerFunc] directly.
Before a request gets to a handler,
any middlewares added to the Route are called in the order they appear.

It is often the case that many routes for a web server share identical middleware stacks,
which aid in directing, redirecting, or adding contextual information to a request.
Thus, a [*Router] provides conveniences for registering many logically associated Routes
in a single call and for applying a stack to every request it serves.
*/
package router
