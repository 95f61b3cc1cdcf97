// Package http serves the habit tracking UI: a server-rendered page with
// htmx partials for the weekly overview and pending reminder alerts.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"habits/internal/cache"
	"habits/internal/core"
	"habits/internal/middleware/ratelimit"
	"habits/internal/middleware/security"
	"habits/internal/middleware/trace"
	"habits/internal/services"
	appweb "habits/web"
)

type Server struct {
	http.Server
	templates *template.Template
	habits    *services.HabitService
	runner    *services.ReminderRunner

	limiter *ratelimit.Limiter
	headers *security.HeadersMiddleware
	tracer  *trace.Middleware

	// weeklyCache holds the computed weekly overview keyed by date id.
	// Mutations invalidate it through the service's change hook.
	weeklyCache  *cache.LRUCache[[]core.DayProgress]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, habits *services.HabitService, runner *services.ReminderRunner) *Server {
	mux := http.NewServeMux()

	s := &Server{
		habits:       habits,
		runner:       runner,
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		headers:      security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		tracer:       trace.NewMiddleware(clientIP),
		weeklyCache:  cache.NewLRUCache[[]core.DayProgress](14, 30*time.Second),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.weeklyCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Drop the cached overview whenever the collection changes.
	habits.SetOnChange(func() {
		s.weeklyCache.Delete(core.DateKey(time.Now()))
	})

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600, static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /habits", s.handleCreateHabit)
	mux.HandleFunc("POST /habits/{id}/toggle", s.handleToggle)
	mux.HandleFunc("POST /habits/{id}/reminders", s.handleAddReminder)
	mux.HandleFunc("POST /habits/{id}/reminders/remove", s.handleRemoveReminder)
	mux.HandleFunc("POST /habits/{id}/delete", s.handleDeleteHabit)

	mux.HandleFunc("GET /ui/weekly", s.handleWeekly)
	mux.HandleFunc("GET /ui/alerts", s.handleAlerts)
	mux.HandleFunc("POST /alerts/dismiss", s.handleDismissAlert)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(s.headers.Middleware(s.limitMutations(mux))),
	}

	return s
}

// limitMutations applies the rate limiter to POST requests only; reads are
// unlimited.
func (s *Server) limitMutations(next http.Handler) http.Handler {
	limited := s.limiter.Middleware(clientIP, next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the background cleanup routines before shutting down the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// clientIP extracts the caller address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// weeklyProgress returns the cached overview for the day, computing it on
// miss.
func (s *Server) weeklyProgress(ctx context.Context, now time.Time) ([]core.DayProgress, error) {
	key := core.DateKey(now)
	if data, found := s.weeklyCache.Get(key); found {
		slog.DebugContext(ctx, "Weekly overview cache hit", "date_id", key)
		return data, nil
	}

	habits, err := s.habits.List(ctx)
	if err != nil {
		return nil, err
	}
	progress := core.WeeklyProgress(habits, now)
	s.weeklyCache.Set(key, progress)
	return progress, nil
}
