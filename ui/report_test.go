package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablelens/adapters/source"
	"tablelens/adapters/stats/engine"
	"tablelens/internal/testkit"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store := source.NewMemoryStore()
	store.Put(testkit.DemoTable("demo", 60))
	return NewApp(engine.New(store), store)
}

func TestBuildReportSections(t *testing.T) {
	store := source.NewMemoryStore()
	store.Put(testkit.DemoTable("demo", 60))

	md, err := BuildReport(context.Background(), engine.New(store), store, "demo")
	require.NoError(t, err)

	assert.Contains(t, md, "# Analysis Report: demo")
	assert.Contains(t, md, "## Descriptive Statistics")
	assert.Contains(t, md, "## Correlation")
	assert.Contains(t, md, "## Change Points")
	assert.Contains(t, md, "## Association Rules")
	// The demo table's categorical implication shows up as a mined rule
	assert.Contains(t, md, "region=north")
}

func TestBuildReportUnknownTable(t *testing.T) {
	store := source.NewMemoryStore()
	_, err := BuildReport(context.Background(), engine.New(store), store, "ghost")
	require.Error(t, err)
}

func TestReportIndexLinksTables(t *testing.T) {
	app := newTestApp(t)
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/reports/demo")
}

func TestReportRendersHTML(t *testing.T) {
	app := newTestApp(t)
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/demo", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// Markdown headings become HTML headings
	assert.Contains(t, body, "<h1")
	assert.Contains(t, body, "Descriptive Statistics")
	assert.False(t, strings.Contains(body, "## Descriptive"), "raw markdown leaked into HTML")
}

func TestReportMarkdownExport(t *testing.T) {
	app := newTestApp(t)
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/demo.md", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Body.String(), "## Descriptive Statistics")
}
