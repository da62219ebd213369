/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dev frontend

ROUTE GROUPS:
  /api/state           Current planner state
  /api/calendar        Month grids for rendering
  /api/categories/*    Category CRUD
  /api/days/*          Day assignment operations
  /api/year            Year switching
  /api/export[.ics]    File export
  /api/import          File import
  /*                   Static files (frontend SPA)

AUTH:
  When an auth secret file is configured, every mutating route requires
  Basic Auth (see auth.go). Reads stay open.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured. auth may be nil
// to leave mutating routes unprotected (local single-user mode).
func NewRouter(h *Handler, auth *Auth) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	guard := func(next http.HandlerFunc) http.HandlerFunc {
		if auth == nil {
			return next
		}
		return auth.Require(next)
	}

	r.Route("/api", func(r chi.Router) {
		// Read endpoints
		r.Get("/state", h.GetState)
		r.Get("/calendar", h.GetCalendar)
		r.Get("/export", h.ExportJSON)
		r.Get("/export.ics", h.ExportICS)

		// Mutations
		r.Post("/year", guard(h.SwitchYear))
		r.Post("/import", guard(h.ImportJSON))
		r.Post("/clear", guard(h.ClearEvents))

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", guard(h.CreateCategory))
			r.Put("/{id}", guard(h.UpdateCategory))
			r.Delete("/{id}", guard(h.DeleteCategory))
		})

		r.Route("/days", func(r chi.Router) {
			r.Post("/assign", guard(h.AssignDay))
			r.Post("/move", guard(h.MoveDay))
			r.Post("/half", guard(h.ToggleHalf))
			r.Post("/swap", guard(h.SwapCategory))
			r.Post("/remove", guard(h.RemoveDays))
			r.Post("/bulk", guard(h.BulkApply))
			r.Post("/drop", guard(h.DropDay))
		})
	})

	// Serve static files (frontend SPA). Try ./web/dist first, then
	// relative to the executable.
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, r.URL.Path)
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Time-Off Planner</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Time-Off Planner API</h1>
<p>The frontend is not built yet. Run <code>cd web && npm install && npm run build</code></p>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/state">/api/state</a> - Planner state</li>
<li><a href="/api/calendar">/api/calendar</a> - Month grids</li>
<li><a href="/api/export">/api/export</a> - Export active year</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
