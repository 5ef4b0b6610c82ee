package resource

import (
	"net/http"

	"github.com/xy-planning-network/switchback/http/guard"
	"github.com/xy-planning-network/switchback/logger"
)

// A Def identifies one registration made on behalf of a Resource.
type Def struct {
	// Pattern is the path pattern requests are matched against.
	Pattern string

	// Name optionally names the registration for URL generation.
	// Only the pattern as registered carries the name,
	// never its slash-toggled twin.
	Name string
}

// A ServiceRegistrar accepts the finalized registrations a Resource
// produces. Match precedence between patterns from different Resources
// is the registrar's business.
//
// [github.com/xy-planning-network/switchback/http/router.Router] implements ServiceRegistrar.
type ServiceRegistrar interface {
	RegisterService(def Def, guards []guard.Guard, svc http.Handler)
}

// A Resource collects the routes, guards, scoped data and middleware
// for one path pattern and then registers the whole set under both the
// trailing-slash and non-trailing-slash forms of that pattern.
//
// Both forms share a single compiled service, so they cannot drift apart.
// Middleware added with Wrap composes around a stable front-end handler
// whose dispatch table only arrives when Register fills it in; callers
// are free to order Wrap, Route and the rest however reads best.
//
// A Resource is for building: it is not safe for concurrent use and is
// spent once Register returns.
type Resource struct {
	pattern    string
	name       string
	guards     []guard.Guard
	routes     []Route
	data       DataMap
	wraps      []func(http.Handler) http.Handler
	newDefault func() (http.Handler, error)
	l          logger.Logger

	slot     *slot
	endpoint *endpoint
}

// New begins a Resource for the provided path pattern.
func New(pattern string) *Resource {
	s := new(slot)
	return &Resource{
		pattern:  pattern,
		slot:     s,
		endpoint: &endpoint{slot: s},
	}
}

// Name names the Resource for URL generation.
func (rsc *Resource) Name(name string) *Resource {
	rsc.name = name
	return rsc
}

// Guard adds a match precondition the whole Resource is gated behind.
//
// Registrars evaluate these before the Resource's service is considered
// at all, letting multiple Resources share a pattern and divide requests
// between them:
//
//	resource.New("/app").
//		Guard(guard.Header("Content-Type", "text/plain")).
//		To(plainHandler).
//		Register(r)
//	resource.New("/app").
//		Guard(guard.Header("Content-Type", "application/json")).
//		To(jsonHandler).
//		Register(r)
func (rsc *Resource) Guard(g guard.Guard) *Resource {
	rsc.guards = append(rsc.guards, g)
	return rsc
}

// Route adds a Route to the Resource. Routes are tried in the order
// they were added; the first whose Guards all accept serves the request.
func (rsc *Resource) Route(rt Route) *Resource {
	rsc.routes = append(rsc.routes, rt)
	return rsc
}

// To adds a Route matching every request, a shortcut for
// Route(Route{Handler: handler}).
func (rsc *Resource) To(handler http.Handler) *Resource {
	return rsc.Route(Route{Handler: handler})
}

// Data makes v available to every route handler through [Data],
// keyed by v's type. Inserting a second value of the same type
// replaces the first. A value stored here shadows one of the same
// type provided by the enclosing application.
func (rsc *Resource) Data(v any) *Resource {
	if rsc.data == nil {
		rsc.data = make(DataMap)
	}
	rsc.data.Insert(v)
	return rsc
}

// Wrap records a middleware layer for the Resource. Layers apply in
// opposite order of their registration: the last one wrapped sees the
// request first and the response last.
func (rsc *Resource) Wrap(mw func(http.Handler) http.Handler) *Resource {
	rsc.wraps = append(rsc.wraps, mw)
	return rsc
}

// DefaultService sets the factory for the fallback service handling
// requests no Route matches. Without one such requests get a plain
// 405 Method Not Allowed. The Resource never falls back to any
// application-level default.
//
// The factory runs once, inside Register. If it fails, the failure is
// logged and the Resource behaves as if no default were set.
func (rsc *Resource) DefaultService(fn func() (http.Handler, error)) *Resource {
	rsc.newDefault = fn
	return rsc
}

// Logger sets the Logger Register reports default service construction
// failures on. Without one, a stock SwitchbackLogger is used.
func (rsc *Resource) Logger(l logger.Logger) *Resource {
	rsc.l = l
	return rsc
}

// Register finalizes the Resource, compiling its routes, data and
// default into the service both pattern forms share, and registers
// that service with sr: first the normalized pattern under the
// Resource's name, then its slash-toggled twin, unnamed. Both carry
// the same guards.
//
// Register must be called exactly once and before the registrar serves
// traffic; calling it again panics.
func (rsc *Resource) Register(sr ServiceRegistrar) {
	var defaultSvc http.Handler
	if rsc.newDefault != nil {
		svc, err := rsc.newDefault()
		if err != nil {
			if rsc.l == nil {
				rsc.l = logger.NewLogger()
			}
			rsc.l.Error("cannot construct default service", &logger.LogContext{
				Error: err,
				Data:  map[string]any{"pattern": rsc.pattern},
			})
		} else {
			defaultSvc = svc
		}
	}

	// the builder's map stays mutable until here; the service gets its own
	var data DataMap
	if len(rsc.data) > 0 {
		data = make(DataMap, len(rsc.data))
		for k, v := range rsc.data {
			data[k] = v
		}
	}

	rsc.slot.fill(&service{
		data:       data,
		routes:     rsc.routes,
		defaultSvc: defaultSvc,
	})

	var h http.Handler = rsc.endpoint
	for _, mw := range rsc.wraps {
		h = mw(h)
	}

	primary := normalize(rsc.pattern)
	sr.RegisterService(Def{Pattern: primary, Name: rsc.name}, rsc.guards, h)
	sr.RegisterService(Def{Pattern: toggleSlash(primary)}, rsc.guards, h)
}
