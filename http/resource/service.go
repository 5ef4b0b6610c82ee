package resource

import "net/http"

// A slot is the write-once cell joining the front-end handler a
// Resource hands out at construction time with the service compiled
// at Register time. Register is the publish barrier: it completes
// before the registrar serves traffic, so request-time reads need
// no synchronization.
type slot struct {
	svc http.Handler
}

// fill stores svc in the slot. Filling a slot twice is a sequencing
// bug in the calling code and panics.
func (s *slot) fill(svc http.Handler) {
	if s.svc != nil {
		panic("resource: Register called twice")
	}

	s.svc = svc
}

// An endpoint is the stable front-end standing in for a Resource's
// service before the service exists. Middleware composes around the
// endpoint; dispatch flows through to whatever Register put in the
// slot.
type endpoint struct {
	slot *slot
}

func (e *endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if e.slot.svc == nil {
		panic("resource: dispatch before Register")
	}

	e.slot.svc.ServeHTTP(w, r)
}

// A service is the compiled form of a Resource: the frozen route
// table, scoped data and fallback shared by both registered patterns.
type service struct {
	data       DataMap
	routes     []Route
	defaultSvc http.Handler
}

func (s *service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if len(s.data) > 0 {
		r = r.WithContext(s.data.Link(r.Context()))
	}

	for _, rt := range s.routes {
		if !rt.match(r) {
			continue
		}

		rt.Handler.ServeHTTP(w, r)
		return
	}

	if s.defaultSvc != nil {
		s.defaultSvc.ServeHTTP(w, r)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
