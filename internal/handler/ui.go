// Package handler contains the HTTP request handlers.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (URL params, body, headers)
// 2. Call the service layer
// 3. Write the HTTP response (status code, headers, body)
//
// Handlers hold no business logic; they are the glue between HTTP and the
// services.
package handler

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Pages of the browser UI. Each one is rendered from base.html plus the
// page's own file, which fills in the "content" block.
const (
	PageHome     = "home"
	PageRegister = "register"
	PageLogin    = "login"
	PageTop10    = "top10"
	PageTalk     = "talk"
)

var pages = []string{PageHome, PageRegister, PageLogin, PageTop10, PageTalk}

// pageData is what every template receives.
type pageData struct {
	Title  string
	Page   string
	TalkID string
}

// UIHandler serves the browser client. The pages carry no data of their
// own: static/app.js calls the JSON API with the stored token and renders
// the results.
type UIHandler struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// NewUIHandler parses the templates once. files must contain
// templates/base.html and templates/<page>.html for every page.
func NewUIHandler(files fs.FS, logger *slog.Logger) (*UIHandler, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(files, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("handler: parsing %s template: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &UIHandler{
		templates: templates,
		logger:    logger,
	}, nil
}

// Routes returns the UI router, meant to be mounted at /app.
//
//	GET /              → home
//	GET /register      → sign-up form
//	GET /login         → login form
//	GET /top10Views    → ten most viewed talks
//	GET /speaker/{id}  → one talk
func (h *UIHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.page(PageHome, "Talk Catalog"))
	r.Get("/register", h.page(PageRegister, "Register"))
	r.Get("/login", h.page(PageLogin, "Log in"))
	r.Get("/top10Views", h.page(PageTop10, "Top 10 talks"))
	r.Get("/speaker/{id}", h.page(PageTalk, "Talk"))
	return r
}

func (h *UIHandler) page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, name, pageData{
			Title:  title,
			Page:   name,
			TalkID: chi.URLParam(r, "id"),
		})
	}
}

func (h *UIHandler) render(w http.ResponseWriter, name string, data pageData) {
	tmpl, ok := h.templates[name]
	if !ok {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	// Content type goes out before the body.
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
