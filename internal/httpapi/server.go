// Package httpapi serves the directory over a read-mostly JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/luxedir/internal/app"
	"github.com/mesh-intelligence/luxedir/internal/auth"
	"github.com/mesh-intelligence/luxedir/internal/transfer"
	"github.com/mesh-intelligence/luxedir/pkg/listing"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// maxImportBytes caps the size of an import payload.
const maxImportBytes = 32 << 20

// Server exposes a Directory over HTTP.
type Server struct {
	dir *app.Directory
	log *zap.SugaredLogger
	now func() time.Time
}

// NewServer creates a server for dir.
func NewServer(dir *app.Directory, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{dir: dir, log: log, now: time.Now}
}

// Routes returns the HTTP handler with every route registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.requireBrowse)
			r.Get("/schema", s.handleSchema)
			r.Get("/settings", s.handleSettings)
			r.Get("/listings", s.handleListings)
			r.Get("/facets", s.handleFacets)
			r.Get("/records/{id}", s.handleRecord)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/form/pages", s.handleFormPages)
			r.Get("/export", s.handleExport)
			r.Post("/import", s.handleImport)
		})
	})
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Infow("serving directory", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving %s: %w", addr, err)
	}
	return nil
}

func (s *Server) requireBrowse(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.CanBrowse(s.dir.Config(), s.dir.CurrentUser()) {
			s.writeError(w, http.StatusForbidden, "SIGN_IN_REQUIRED", "sign in to browse the directory")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.CanAdminister(s.dir.CurrentUser()) {
			s.writeError(w, http.StatusForbidden, "FORBIDDEN", "admin or owner access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GET /v1/schema
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"fields": s.dir.Schema()})
}

// GET /v1/settings
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dir.Config())
}

// GET /v1/listings?filter=State_01:Gujarat&sort=Rating_01&dir=desc
func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.dir.Browse(q))
}

// GET /v1/facets
func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"facets": s.dir.Facets()})
}

// GET /v1/records/{id}
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.dir.Record(chi.URLParam(r, "id"))
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// GET /v1/form/pages
func (s *Server) handleFormPages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"pages": s.dir.FormPages()})
}

// GET /v1/export
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", transfer.ExportFileName(s.now())))
	if err := transfer.Encode(w, s.dir.ManagedRecords()); err != nil {
		s.log.Warnw("writing export", "error", err)
	}
}

// POST /v1/import
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	records, err := transfer.Decode(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	n := s.dir.ImportRecords(records)
	s.log.Infow("records imported over http", "by", principal(s.dir.CurrentUser()), "count", n)
	s.writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// parseQuery reads repeated filter=field:value pairs plus sort and dir.
func parseQuery(r *http.Request) (listing.Query, error) {
	values := r.URL.Query()
	sel := listing.Selection{}
	for _, f := range values["filter"] {
		field, value, ok := strings.Cut(f, ":")
		if !ok || field == "" {
			return listing.Query{}, fmt.Errorf("filter %q: want field:value", f)
		}
		if !sel.IsSelected(field, value) {
			sel = sel.Toggle(field, value)
		}
	}

	q := listing.Query{Selection: sel}
	if field := values.Get("sort"); field != "" {
		q.Sort = listing.SortState{FieldID: field, Direction: listing.ParseDirection(values.Get("dir"))}
	}
	return q, nil
}

// principal returns a short description of the signed-in user for logs.
func principal(u *types.User) string {
	if u == nil {
		return "anonymous"
	}
	return string(u.Role) + ":" + u.ID
}
