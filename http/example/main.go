/*
Package main provides a toy example use of switchback's http stack.

It mounts two resources and one plain route:

  - /hello/{name} greets by name, pulling scoped data out of the
    request context; /hello/{name}/ serves identically.
  - /echo repeats POST bodies back and, wrapped in middleware.Replay,
    answers repeats of a request under one Idempotency-Key with the
    stored response.
  - /ping answers pong.
*/
package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback/basecamp"
	"github.com/xy-planning-network/switchback/http/guard"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resource"
	"github.com/xy-planning-network/switchback/http/router"
)

// A release is app-scoped data every handler can read.
type release struct {
	Version string
}

// A greeting is resource-scoped data; it shadows nothing here,
// but a second resource could carry its own.
type greeting struct {
	Text string
}

func hello(w http.ResponseWriter, r *http.Request) {
	g, err := resource.Data[greeting](r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rel, err := resource.Data[release](r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "%s, %s! (%s)\n", g.Text, mux.Vars(r)["name"], rel.Version)
}

func echo(w http.ResponseWriter, r *http.Request) {
	io.Copy(w, r.Body)
}

func main() {
	bc, err := basecamp.New(basecamp.WithData(release{Version: "v1.0.0"}))
	if err != nil {
		fmt.Println(err)
		return
	}

	bc.Mount(
		resource.New("/hello/{name}").
			Name("hello").
			Data(greeting{Text: "Howdy"}).
			Route(resource.Route{
				Guards:  []guard.Guard{guard.Get()},
				Handler: http.HandlerFunc(hello),
			}),
		resource.New("/echo").
			Route(resource.Route{
				Guards:  []guard.Guard{guard.Post()},
				Handler: http.HandlerFunc(echo),
			}).
			Wrap(middleware.Replay(nil, nil)),
	)

	bc.Handle(router.Route{
		Path:    "/ping",
		Method:  http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "pong") },
	})

	if err := bc.Guide(); err != nil {
		fmt.Println(err)
		return
	}
}
