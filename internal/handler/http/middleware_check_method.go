package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod builds the router's MethodNotAllowed handler.
//
// By default chi answers 405 when a registered path is hit with an
// unregistered method. This handler answers 404 instead, so probing an
// endpoint with the wrong verb does not confirm that the route exists.
//
// The check walks the router's registered routes and compares each route's
// pattern against the raw request path ([http.Request.URL.Path]). Only exact
// pattern matches are considered; parameterised segments are not expanded
// during this check.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		// Search for a route whose pattern exactly matches the requested path.
		allRoutes := router.Routes()
		var foundRoute chi.Route
		for _, route := range allRoutes {
			if route.Pattern == requestedURL {
				foundRoute = route
				break
			}
		}

		// The matched route does not handle the requested HTTP method.
		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
