/*
Package resource registers one set of routes under both the
trailing-slash and non-trailing-slash forms of a path pattern, so
"/users" and "/users/" cannot drift apart.

A [Resource] is a builder. It collects guarded routes, scoped data,
middleware and an optional fallback for a single pattern, and on
[Resource.Register] compiles them into one service registered twice
with a [ServiceRegistrar]:

	rsc := resource.New("/users").
		Name("users").
		Route(resource.Route{
			Guards:  []guard.Guard{guard.Get()},
			Handler: listUsers,
		}).
		Route(resource.Route{
			Guards:  []guard.Guard{guard.Post()},
			Handler: createUser,
		})
	rsc.Register(router)

Registering "/users" also registers "/users/"; registering "/users/"
also registers "/users". Runs of slashes collapse first, so a pattern
assembled from prefixes, like "//users///", registers as "/users/" and
"/users".

# Dispatch

A request reaching the Resource's service tries each [Route] in the
order added. The first Route all of whose Guards accept the request
handles it. When none match, the [Resource.DefaultService] handles it,
or absent one the service answers 405 Method Not Allowed. Application
fallbacks never see requests for a Resource's patterns.

# Middleware and the deferred service

[Resource.Wrap] layers middleware around a front-end handler created
with the Resource itself, before any routes exist. The dispatch table
behind that front-end is filled in exactly once, by Register. Serving
a request through an unregistered Resource panics, as does a second
Register: both are sequencing bugs in application assembly, not
runtime conditions to tolerate.

# Scoped data

[Resource.Data] attaches values to every request the Resource serves,
keyed by type and read back with [Data]:

	rsc.Data(&mailer{...})

	func handle(w http.ResponseWriter, r *http.Request) {
		m, err := resource.Data[*mailer](r.Context())
		...
	}

Values attached here shadow application-scope values of the same type;
other types fall through to the enclosing scope.
*/
package resource
