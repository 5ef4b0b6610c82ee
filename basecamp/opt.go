package basecamp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resource"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
)

// An Option configures a *Basecamp either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some Options require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Basecamp is updated with the enclosed value.
//
// WithRouter is an example of the second.
// An unexported field on the passed in *Basecamp
// is updated only when the closure it returns is called.
type Option func(bc *Basecamp) (OptFollowup, error)
type OptFollowup func() error

// setupLog records configuration steps while a *Basecamp is under construction.
var setupLog logger.Logger

// WithBaseURL parses raw and exposes the resulting *url.URL to the switchback app.
//
// The URL's port, when present, is where the default web server listens.
func WithBaseURL(raw string) Option {
	return func(bc *Basecamp) (OptFollowup, error) {
		u, err := url.ParseRequestURI(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot parse base URL %q: %s", raw, err)
		}

		bc.url = u
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using base URL %s", u), nil)
		}

		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the switchback app.
//
// The web server derives request contexts from it
// and shutting the app down cancels them.
func WithContext(ctx context.Context) Option {
	return func(bc *Basecamp) (OptFollowup, error) {
		bc.ctx = ctx
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using context %T", ctx), nil)
		}

		return nil, nil
	}
}

// WithData makes v available to every route handler through [resource.Data],
// keyed by v's type. A resource carrying its own value of the same type
// shadows v within that resource.
func WithData(v any) Option {
	return func(bc *Basecamp) (OptFollowup, error) {
		if bc.data == nil {
			bc.data = make(resource.DataMap)
		}

		bc.data.Insert(v)
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using app data %T", v), nil)
		}

		return nil, nil
	}
}

// WithDefaultService sets the handler answering requests
// no mounted resource or registered route matches.
//
// A resource's own default service takes precedence for requests
// matching that resource's patterns.
func WithDefaultService(h http.Handler) Option {
	return func(bc *Basecamp) (OptFollowup, error) {
		bc.defaultSvc = h
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using default service %T", h), nil)
		}

		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
// WithEnv then exposes that Environment to the switchback app.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) Option {
	e := switchback.Environment(envVar)
	err := e.Valid()
	if err == nil {
		return func(bc *Basecamp) (OptFollowup, error) {
			bc.env = e
			if setupLog != nil {
				setupLog.Debug(fmt.Sprintf("using env %s", e), nil)
			}

			return nil, nil
		}
	}

	return func(bc *Basecamp) (OptFollowup, error) {
		bc.env = switchback.EnvVarOrEnv(environmentEnvVar, switchback.Development)
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using env %s", bc.env), nil)
		}

		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the switchback app.
func WithLogger(l logger.Logger) Option {
	return func(bc *Basecamp) (OptFollowup, error) {
		bc.l = l
		if setupLog == nil {
			setupLog = l
		}

		setupLog.Debug(fmt.Sprintf("using logger %T", l), nil)

		return nil, nil
	}
}

// WithMiddlewares appends the middlewares to the stack the router
// applies to every request.
func WithMiddlewares(mws ...middleware.Adapter) Option {
	return func(bc *Basecamp) (OptFollowup, error) {
		bc.mws = append(bc.mws, mws...)
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using %d app middlewares", len(mws)), nil)
		}

		return nil, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes the *router.Router to the switchback app.
func WithRouter(r *router.Router) Option {
	return func(bc *Basecamp) (OptFollowup, error) {
		return func() error {
			if bc.srv == nil {
				bc.srv = defaultServer(bc.ctx, bc.url.Port())
			}

			bc.Router = r
			bc.srv.Handler = r

			if setupLog != nil {
				setupLog.Debug(fmt.Sprintf("using router %T", r), nil)
				setupLog.Debug(fmt.Sprintf("using server %T", bc.srv), nil)
			}

			return nil
		}, nil
	}
}

// WithServer exposes the *http.Server to the switchback app.
func WithServer(s *http.Server) Option {
	return func(bc *Basecamp) (OptFollowup, error) {
		old := bc.srv
		bc.srv = s

		if old != nil {
			bc.srv.Handler = old.Handler
		}

		return nil, nil
	}
}

// withDefaultRouter constructs a followup option that, when called,
// mounts a stock *router.Router unless another option provided one.
func withDefaultRouter() Option {
	return func(bc *Basecamp) (OptFollowup, error) {
		return func() error {
			if bc.Router != nil {
				return nil
			}

			if bc.srv == nil {
				bc.srv = defaultServer(bc.ctx, bc.url.Port())
			}

			bc.Router = defaultRouter(bc.env)
			bc.srv.Handler = bc.Router

			return nil
		}, nil
	}
}
