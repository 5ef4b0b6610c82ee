package basecamp

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"
	defaultLogLvl  = "INFO"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
)

// defaultOpts returns the set of Options New applies
// before any user supplied ones.
func defaultOpts() []Option {
	return []Option{
		WithEnv(os.Getenv(environmentEnvVar)),
		WithLogger(defaultLogger()),
		WithBaseURL(defaultBaseURL()),
		withDefaultRouter(),
	}
}

// defaultBaseURL assembles the base URL from the HOST and PORT
// environment variables, falling back to http://localhost:3000.
func defaultBaseURL() string {
	host := switchback.EnvVarOrString(hostEnvVar, DefaultHost)
	port := switchback.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return switchback.EnvVarOrString(BaseURLEnvVar, "http://"+host+port)
}

// defaultLogger constructs a logger.Logger at the level
// the LOG_LEVEL environment variable calls for.
func defaultLogger() logger.Logger {
	ll := logger.NewLogLevel(switchback.EnvVarOrString(logLevelEnvVar, defaultLogLvl))
	if ll == logger.LogLevelUnk {
		ll = logger.LogLevelInfo
	}

	return logger.NewLogger(logger.WithLevel(ll))
}

// defaultRouter constructs a *router.Router to be used by the web server.
func defaultRouter(env switchback.Environment) *router.Router {
	return router.New(env)
}

// defaultServer constructs a default *http.Server listening on port,
// or, when port is empty, on the PORT environment variable.
func defaultServer(ctx context.Context, port string) *http.Server {
	if port == "" {
		port = switchback.EnvVarOrString(portEnvVar, DefaultPort)
	}
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  switchback.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  switchback.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: switchback.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
