package handler

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Route is one entry of the GET / listing.
type Route struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// ListRoutes walks router and returns every route with the methods it
// answers, sorted by path. Routes under one of the skip prefixes are left
// out.
func ListRoutes(router chi.Routes, skip ...string) ([]Route, error) {
	methods := make(map[string][]string)

	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		for _, prefix := range skip {
			if strings.HasPrefix(route, prefix) {
				return nil
			}
		}
		for _, m := range methods[route] {
			if m == method {
				return nil
			}
		}
		methods[route] = append(methods[route], method)
		return nil
	})
	if err != nil {
		return nil, err
	}

	routes := make([]Route, 0, len(methods))
	for path, ms := range methods {
		sort.Strings(ms)
		routes = append(routes, Route{Path: path, Methods: ms})
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })
	return routes, nil
}

// RoutesHandler serves GET /, the discovery listing.
type RoutesHandler struct {
	router chi.Routes
	skip   []string
	logger *slog.Logger
}

// NewRoutesHandler lists the routes of router, minus the skip prefixes.
// The walk happens per request, so routes added after construction
// (including GET / itself) are included.
func NewRoutesHandler(router chi.Routes, logger *slog.Logger, skip ...string) *RoutesHandler {
	return &RoutesHandler{
		router: router,
		skip:   skip,
		logger: logger,
	}
}

// HandleList answers with [{"path": "/login", "methods": ["POST"]}, ...].
func (h *RoutesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	routes, err := ListRoutes(h.router, h.skip...)
	if err != nil {
		h.logger.Error("failed to walk routes", slog.String("error", err.Error()))
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, routes)
}
