package router

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/guard"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resource"
)

var _ resource.ServiceRegistrar = (*Router)(nil)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router mounts resources and plain Routes on a gorilla/mux backend.
type Router struct {
	Env           switchback.Environment
	everyReqStack []middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
func New(env switchback.Environment) *Router {
	return &Router{Env: env, r: mux.NewRouter()}
}

// RegisterService mounts svc at def.Pattern.
//
// Every guard must accept a request before it reaches svc;
// a rejected request falls through to later registrations and,
// failing those, the not-found handler. No guards means no checks.
//
// An empty pattern mounts svc at the root. A non-empty def.Name makes
// the registration addressable through URL.
//
// RegisterService implements [resource.ServiceRegistrar].
func (r *Router) RegisterService(def resource.Def, guards []guard.Guard, svc http.Handler) {
	pattern := def.Pattern
	if pattern == "" {
		pattern = "/"
	}

	rt := r.r.Handle(pattern, middleware.Chain(svc, r.everyReqStack...))
	if len(guards) > 0 {
		rt.MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
			for _, g := range guards {
				if !g.Accept(req) {
					return false
				}
			}

			return true
		})
	}

	if def.Name != "" {
		rt.Name(def.Name)
	}
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.Env)(handler),
			r.everyReqStack...,
		),
	)
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.everyReqStack...,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(r.everyReqStack, middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(middleware.ReportPanic(r.Env)(route.Handler), mws...)
		r.r.Handle(route.Path, handler).Methods(route.Method)
	}
}

// Host constructs a [*Router] that handles requests matching the host.
//
// e.g., r.Host("api.example.com") handles requests to that subdomain only.
func (r *Router) Host(host string) *Router {
	return &Router{
		Env:           r.Env,
		r:             r.r.Host(host).Subrouter(),
		everyReqStack: r.everyReqStack,
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Middlewares appended after a Route or resource is registered
// do not apply to it.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// Prefix constructs a [*Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Prefix("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Prefix(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		everyReqStack: r.everyReqStack,
	}
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// URL builds a *url.URL for the named registration,
// substituting each {wildcard} in its pattern with
// the value following the wildcard's name in pairs.
//
// URL returns switchback.ErrNotExist when no registration matches name.
func (r *Router) URL(name string, pairs ...string) (*url.URL, error) {
	rt := r.r.Get(name)
	if rt == nil {
		return nil, fmt.Errorf("%w: no registration named %q", switchback.ErrNotExist, name)
	}

	return rt.URL(pairs...)
}
