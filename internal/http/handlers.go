package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"habits/internal/core"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := s.habits.List(ctx); err != nil {
		slog.ErrorContext(ctx, "Readiness check failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	habits, err := s.habits.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Habit list error", "error", err)
		http.Error(w, "failed to load habits", http.StatusInternalServerError)
		return
	}

	progress, err := s.weeklyProgress(r.Context(), now)
	if err != nil {
		slog.ErrorContext(r.Context(), "Weekly overview error", "error", err)
	}

	todayID := core.DateKey(now)
	data := indexView{
		Today:      todayID,
		TodayRatio: formatRatio(core.TodayCompletionRatio(habits, todayID)),
		Habits:     buildHabitViews(habits, now),
		Week:       buildDayViews(progress, todayID),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	draft := core.Draft{
		Name:  sanitizeInput(r.Form.Get("name")),
		Emoji: sanitizeInput(r.Form.Get("emoji")),
	}
	if v := strings.TrimSpace(r.Form.Get("goal")); v != "" {
		if goal, err := strconv.Atoi(v); err == nil {
			draft.GoalPerWeek = goal
		}
	}
	if v := strings.TrimSpace(r.Form.Get("reminder")); v != "" {
		if _, ok := core.ParseClock(v); !ok {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Reminder must be HH:MM</div>`))
			return
		}
		draft.Reminder = v
	}

	if draft.Name == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Name is required</div>`))
		return
	}

	if err := s.habits.Create(r.Context(), draft); err != nil {
		slog.ErrorContext(r.Context(), "Failed to create habit", "error", err, "habit_name", draft.Name)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error saving habit</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Habit created", "habit_name", draft.Name, "goal_per_week", draft.GoalPerWeek)
	s.renderHabitList(w, r)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	habitID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	dateID := strings.TrimSpace(r.Form.Get("date"))
	if dateID == "" {
		dateID = core.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", dateID); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Date must be YYYY-MM-DD</div>`))
		return
	}

	if err := s.habits.Toggle(r.Context(), habitID, dateID); err != nil {
		slog.ErrorContext(r.Context(), "Failed to toggle completion", "error", err, "habit_id", habitID, "date_id", dateID)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error updating habit</div>`))
		return
	}

	s.renderHabitList(w, r)
}

func (s *Server) handleAddReminder(w http.ResponseWriter, r *http.Request) {
	habitID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	reminderTime := strings.TrimSpace(r.Form.Get("time"))
	if _, ok := core.ParseClock(reminderTime); !ok {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Reminder must be HH:MM</div>`))
		return
	}

	if err := s.habits.AddReminder(r.Context(), habitID, reminderTime); err != nil {
		slog.ErrorContext(r.Context(), "Failed to add reminder", "error", err, "habit_id", habitID, "reminder_time", reminderTime)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error saving reminder</div>`))
		return
	}

	s.renderHabitList(w, r)
}

func (s *Server) handleRemoveReminder(w http.ResponseWriter, r *http.Request) {
	habitID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	reminderTime := strings.TrimSpace(r.Form.Get("time"))
	if err := s.habits.RemoveReminder(r.Context(), habitID, reminderTime); err != nil {
		slog.ErrorContext(r.Context(), "Failed to remove reminder", "error", err, "habit_id", habitID, "reminder_time", reminderTime)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error removing reminder</div>`))
		return
	}

	s.renderHabitList(w, r)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	habitID := r.PathValue("id")
	if err := s.habits.Delete(r.Context(), habitID); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete habit", "error", err, "habit_id", habitID)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error deleting habit</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Habit deleted", "habit_id", habitID)
	s.renderHabitList(w, r)
}

// renderHabitList renders the habit list partial after a mutation and tags
// the response so the client refreshes dependent fragments.
func (s *Server) renderHabitList(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	habits, err := s.habits.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Habit list error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error loading habits</div>`))
		return
	}

	todayID := core.DateKey(now)
	data := indexView{
		Today:      todayID,
		TodayRatio: formatRatio(core.TodayCompletionRatio(habits, todayID)),
		Habits:     buildHabitViews(habits, now),
	}

	w.Header().Set("HX-Trigger", "habits:changed")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="placeholder">Saved</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "habit_list.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "habit_list.html")
		_, _ = w.Write([]byte(`<div class="error">Error rendering habits</div>`))
	}
}

// handleWeekly renders the weekly overview partial.
func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	now := time.Now()
	progress, err := s.weeklyProgress(r.Context(), now)
	if err != nil {
		slog.ErrorContext(r.Context(), "Weekly overview error", "error", err)
		_, _ = w.Write([]byte(`<section id="weekly" class="weekly"><div class="placeholder">Error loading overview</div></section>`))
		return
	}

	data := struct {
		Week []dayView
	}{Week: buildDayViews(progress, core.DateKey(now))}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="weekly" class="weekly"><div class="placeholder">Overview unavailable</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "weekly.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "weekly.html")
		_, _ = w.Write([]byte(`<section id="weekly" class="weekly"><div class="placeholder">Error rendering overview</div></section>`))
	}
}

// handleAlerts renders the pending reminder alerts partial.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.renderAlerts(w, r)
}

func (s *Server) handleDismissAlert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	key := strings.TrimSpace(r.Form.Get("key"))
	if key != "" && s.runner != nil {
		if s.runner.Dismiss(key) {
			slog.InfoContext(r.Context(), "Alert dismissed", "alert_key", key)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.renderAlerts(w, r)
}

type alertView struct {
	Key       string
	HabitName string
	Time      string
	DateID    string
}

func (s *Server) renderAlerts(w http.ResponseWriter, r *http.Request) {
	var views []alertView
	if s.runner != nil {
		for _, a := range s.runner.Pending() {
			views = append(views, alertView{
				Key:       a.Key(),
				HabitName: a.HabitName,
				Time:      a.Time,
				DateID:    a.DateID,
			})
		}
	}

	data := struct {
		Alerts []alertView
	}{Alerts: views}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="alerts" class="alerts"></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "alerts.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "alerts.html")
		_, _ = w.Write([]byte(`<section id="alerts" class="alerts"><div class="placeholder">Error rendering alerts</div></section>`))
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
