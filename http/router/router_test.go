package router_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/guard"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resource"
	"github.com/xy-planning-network/switchback/http/router"
)

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

func TestRouterServesBothPatternForms(t *testing.T) {
	// Arrange
	var served int
	r := router.New(switchback.Development)
	resource.New("/test").
		Route(resource.Route{Guards: []guard.Guard{guard.Get()}, Handler: http.HandlerFunc(func(w http.ResponseWriter, rx *http.Request) {
			served++
			w.WriteHeader(http.StatusOK)
		})}).
		Register(r)

	for _, target := range []string{"/test", "/test/"} {
		w := httptest.NewRecorder()

		// Act
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com"+target, nil))

		// Assert
		require.Equal(t, http.StatusOK, w.Code, target)
	}

	require.Equal(t, 2, served)
}

func TestRouterResourceGuardsSplitPattern(t *testing.T) {
	// Arrange
	r := router.New(switchback.Development)
	resource.New("/app").
		Guard(guard.Header("Content-Type", "text/plain")).
		To(statusHandler(http.StatusOK)).
		Register(r)
	resource.New("/app").
		Guard(guard.Header("Content-Type", "application/json")).
		To(statusHandler(http.StatusCreated)).
		Register(r)

	tcs := []struct {
		name        string
		contentType string
		expected    int
	}{
		{"Plain", "text/plain", http.StatusOK},
		{"JSON", "application/json", http.StatusCreated},
		{"Neither", "text/csv", http.StatusNotFound},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "https://example.com/app", nil)
			req.Header.Set("Content-Type", tc.contentType)

			// Act
			r.ServeHTTP(w, req)

			// Assert
			require.Equal(t, tc.expected, w.Code)
		})
	}
}

func TestRouterNotFoundSkipsResourceDefault(t *testing.T) {
	// Arrange
	r := router.New(switchback.Development)
	r.HandleNotFound(func(w http.ResponseWriter, rx *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	resource.New("/test").
		Route(resource.Route{Guards: []guard.Guard{guard.Get()}, Handler: statusHandler(http.StatusOK)}).
		DefaultService(func() (http.Handler, error) { return statusHandler(http.StatusBadRequest), nil }).
		Register(r)

	// Act
	matched := httptest.NewRecorder()
	r.ServeHTTP(matched, httptest.NewRequest(http.MethodGet, "https://example.com/test", nil))

	defaulted := httptest.NewRecorder()
	r.ServeHTTP(defaulted, httptest.NewRequest(http.MethodPost, "https://example.com/test", nil))

	missed := httptest.NewRecorder()
	r.ServeHTTP(missed, httptest.NewRequest(http.MethodGet, "https://example.com/other", nil))

	// Assert
	require.Equal(t, http.StatusOK, matched.Code)
	require.Equal(t, http.StatusBadRequest, defaulted.Code)
	require.Equal(t, http.StatusTeapot, missed.Code)
}

func TestRouterURL(t *testing.T) {
	// Arrange
	r := router.New(switchback.Development)
	resource.New("/user/{id}").
		Name("user.show").
		To(statusHandler(http.StatusOK)).
		Register(r)

	// Act
	u, err := r.URL("user.show", "id", "5")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "/user/5", u.Path)

	// Act
	_, err = r.URL("missing")

	// Assert
	require.ErrorIs(t, err, switchback.ErrNotExist)
}

func TestRouterHandleRoutes(t *testing.T) {
	// Arrange
	var order []string
	tag := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, rx *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, rx)
			})
		}
	}

	r := router.New(switchback.Development)
	r.OnEveryRequest(tag("every"))
	r.HandleRoutes([]router.Route{{
		Path:        "/ping",
		Method:      http.MethodGet,
		Handler:     func(w http.ResponseWriter, rx *http.Request) { fmt.Fprint(w, "pong") },
		Middlewares: []middleware.Adapter{tag("route")},
	}}, tag("shared"))

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/ping", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())
	require.Equal(t, []string{"every", "shared", "route"}, order)

	// Arrange
	w = httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "https://example.com/ping", nil))

	// Assert
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterOnEveryRequestCoversResources(t *testing.T) {
	// Arrange
	r := router.New(switchback.Development)
	r.OnEveryRequest(func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, rx *http.Request) {
			w.Header().Set("X-Every", "yes")
			h.ServeHTTP(w, rx)
		})
	})
	resource.New("/test").To(statusHandler(http.StatusOK)).Register(r)

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/test", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "yes", w.Header().Get("X-Every"))
}

func TestRouterPrefix(t *testing.T) {
	// Arrange
	r := router.New(switchback.Development)
	api := r.Prefix("/api/v1")
	resource.New("/thing").To(statusHandler(http.StatusOK)).Register(api)

	for _, target := range []string{"/api/v1/thing", "/api/v1/thing/"} {
		w := httptest.NewRecorder()

		// Act
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com"+target, nil))

		// Assert
		require.Equal(t, http.StatusOK, w.Code, target)
	}

	// Arrange
	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/thing", nil))

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterHost(t *testing.T) {
	// Arrange
	r := router.New(switchback.Development)
	api := r.Host("api.example.com")
	resource.New("/thing").To(statusHandler(http.StatusOK)).Register(api)

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://api.example.com/thing", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	// Arrange
	w = httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/thing", nil))

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterCatchAll(t *testing.T) {
	// Arrange
	r := router.New(switchback.Development)
	r.CatchAll(func(w http.ResponseWriter, rx *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for _, target := range []string{"/", "/test", "/deeply/nested/path"} {
		w := httptest.NewRecorder()

		// Act
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com"+target, nil))

		// Assert
		require.Equal(t, http.StatusServiceUnavailable, w.Code, target)
	}
}
