package ui

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"

	"tablelens/adapters/stats/engine"
	"tablelens/ports"
)

// App serves rendered analysis reports. Reports are written as markdown
// and converted to HTML on the way out, so the same text works in the
// browser and in exported files.
type App struct {
	router *chi.Mux
	engine *engine.Engine
	source ports.ColumnSource
}

// NewApp creates the report application
func NewApp(e *engine.Engine, source ports.ColumnSource) *App {
	a := &App{
		router: chi.NewRouter(),
		engine: e,
		source: source,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/reports/{table}", a.handleReport)
	a.router.Get("/reports/{table}.md", a.handleReportMarkdown)
}

// Start starts the report server
func (a *App) Start(addr string) error {
	log.Printf("Starting TableLens reports on http://%s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the underlying handler, used by tests
func (a *App) Router() http.Handler {
	return a.router
}

// handleIndex lists the loaded tables with links to their reports
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	names, err := a.source.ListTables(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	md := "# TableLens Reports\n\n"
	if len(names) == 0 {
		md += "No tables loaded.\n"
	}
	for _, name := range names {
		md += fmt.Sprintf("- [%s](/reports/%s)\n", name, name)
	}
	a.renderMarkdown(w, md)
}

// handleReport renders the full analysis report for one table as HTML
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	md, err := BuildReport(r.Context(), a.engine, a.source, chi.URLParam(r, "table"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	a.renderMarkdown(w, md)
}

// handleReportMarkdown serves the raw markdown, useful for export
func (a *App) handleReportMarkdown(w http.ResponseWriter, r *http.Request) {
	md, err := BuildReport(r.Context(), a.engine, a.source, chi.URLParam(r, "table"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(md))
}

func (a *App) renderMarkdown(w http.ResponseWriter, md string) {
	p := mdparser.NewWithExtensions(mdparser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags,
	})
	body := markdown.ToHTML([]byte(md), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html><html><head><title>TableLens</title></head><body>"))
	w.Write(body)
	w.Write([]byte("</body></html>"))
}
