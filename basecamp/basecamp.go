package basecamp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resource"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
)

// A Basecamp manages and exposes all components of a switchback app to one another.
type Basecamp struct {
	*router.Router

	ctx        context.Context
	cancel     context.CancelFunc
	data       resource.DataMap
	defaultSvc http.Handler
	env        switchback.Environment
	l          logger.Logger
	mws        []middleware.Adapter
	srv        *http.Server
	url        *url.URL
}

// New constructs a Basecamp from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...Option) (*Basecamp, error) {
	bc := new(Basecamp)
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Basecamp under construction.
	// Some options require data from other options.
	// These options, therefore, must delay configuring the *Basecamp
	// until either (1) user supplied Options or (2) default Options
	// configure the *Basecamp first.
	// They return an OptFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(bc)
		if err != nil {
			return bc, fmt.Errorf("%w: %s", switchback.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	base := bc.ctx
	if base == nil {
		base = context.Background()
	}
	bc.ctx, bc.cancel = context.WithCancel(base)

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", switchback.ErrBadConfig, err)
		}
	}

	if len(bc.data) > 0 {
		bc.Router.OnEveryRequest(middleware.InjectData(bc.data))
	}
	bc.Router.OnEveryRequest(bc.mws...)

	if bc.defaultSvc != nil {
		bc.Router.HandleNotFound(bc.defaultSvc.ServeHTTP)
	}

	return bc, nil
}

func (bc *Basecamp) EmitBaseURL() *url.URL     { return bc.url }
func (bc *Basecamp) EmitLogger() logger.Logger { return bc.l }

// Mount registers each resource against the Basecamp's router,
// activating both pattern forms of each.
func (bc *Basecamp) Mount(resources ...*resource.Resource) {
	for _, rsc := range resources {
		rsc.Register(bc.Router)
	}
}

// Guide begins the web server.
//
// These, and (*Basecamp).Shutdown, stop Guide:
//
// - os.Interrupt
// - os.Kill
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (bc *Basecamp) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		os.Kill,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	go func() {
		select {
		case s := <-ch:
			bc.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			bc.cancel()
		case <-bc.ctx.Done():
		}
	}()

	go func() {
		bc.l.Info(fmt.Sprintf("running web server at %s", bc.srv.Addr), nil)
		bc.srv.Handler = bc.Router
		if err := bc.srv.ListenAndServe(); err != http.ErrServerClosed {
			err = fmt.Errorf("could not listen: %w", err)
			bc.l.Error(err.Error(), nil)
		}
	}()

	<-bc.ctx.Done()
	return bc.Shutdown()
}

// Shutdown shutdowns the web server.
func (bc *Basecamp) Shutdown() error {
	if bc.cancel != nil {
		bc.cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bc.l.Info("shutting down web server", nil)
	err := bc.srv.Shutdown(shutdownCtx)
	if err == http.ErrServerClosed {
		bc.l.Info("web server shutdown successfully", nil)
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	bc.l.Info("web server shutdown successfully", nil)
	return nil
}

// MaintModeHandler responds 503 Service Unavailable,
// telling clients to retry in ten minutes.
//
// Pair it with (*router.Router).CatchAll to take an app offline
// during a maintenance window.
func MaintModeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "600")
	w.WriteHeader(http.StatusServiceUnavailable)
}
