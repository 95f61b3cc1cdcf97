package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"habits/internal/core"
	"habits/internal/identity"
	"habits/internal/services"
	"habits/internal/state/memory"
)

func newTestServer(t *testing.T, habits []core.Habit) (*Server, *services.ReminderRunner) {
	t.Helper()
	store := memory.New(habits)
	svc := services.NewHabitService(store, identity.New())
	runner := services.NewReminderRunner(store, nil, 15*time.Second)
	s := NewServer(":0", svc, runner)
	t.Cleanup(func() {
		_ = s.Shutdown(context.Background())
	})
	return s, runner
}

func seedHabits() []core.Habit {
	return []core.Habit{
		{ID: "h1", Name: "Read", Emoji: "📚", GoalPerWeek: 5, Reminders: []string{"07:00"}},
		{ID: "h2", Name: "Move", Emoji: "🏃", GoalPerWeek: 3},
	}
}

func doRequest(s *Server, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t, nil)

	if rec := doRequest(s, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
	if rec := doRequest(s, http.MethodGet, "/readyz", nil); rec.Code != http.StatusOK {
		t.Errorf("readyz status = %d, want 200", rec.Code)
	}
}

func TestIndexRendersHabits(t *testing.T) {
	s, _ := newTestServer(t, seedHabits())

	rec := doRequest(s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("index status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Read", "Move", "habit-list", "weekly"} {
		if !strings.Contains(body, want) {
			t.Errorf("index body missing %q", want)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("missing Content-Security-Policy header")
	}
}

func TestCreateHabit(t *testing.T) {
	s, _ := newTestServer(t, nil)

	form := url.Values{"name": {"Water"}, "goal": {"7"}, "reminder": {"09:30"}}
	rec := doRequest(s, http.MethodPost, "/habits", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Water") {
		t.Error("response missing created habit")
	}
	if rec.Header().Get("HX-Trigger") != "habits:changed" {
		t.Error("missing HX-Trigger header")
	}
}

func TestCreateHabitValidation(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doRequest(s, http.MethodPost, "/habits", url.Values{"name": {"  "}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("blank name status = %d, want 422", rec.Code)
	}

	rec = doRequest(s, http.MethodPost, "/habits", url.Values{"name": {"X"}, "reminder": {"9:00"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad reminder status = %d, want 422", rec.Code)
	}
}

func TestToggle(t *testing.T) {
	s, _ := newTestServer(t, seedHabits())

	rec := doRequest(s, http.MethodPost, "/habits/h1/toggle", url.Values{})
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Done today") {
		t.Error("toggled habit not marked done")
	}

	rec = doRequest(s, http.MethodPost, "/habits/h1/toggle", url.Values{"date": {"25-08-2026"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad date status = %d, want 422", rec.Code)
	}
}

func TestReminderEndpoints(t *testing.T) {
	s, _ := newTestServer(t, seedHabits())

	rec := doRequest(s, http.MethodPost, "/habits/h2/reminders", url.Values{"time": {"21:15"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("add reminder status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "21:15") {
		t.Error("added reminder not rendered")
	}

	rec = doRequest(s, http.MethodPost, "/habits/h2/reminders", url.Values{"time": {"24:00"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid reminder status = %d, want 422", rec.Code)
	}

	rec = doRequest(s, http.MethodPost, "/habits/h2/reminders/remove", url.Values{"time": {"21:15"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("remove reminder status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "21:15") {
		t.Error("removed reminder still rendered")
	}
}

func TestDeleteHabit(t *testing.T) {
	s, _ := newTestServer(t, seedHabits())

	rec := doRequest(s, http.MethodPost, "/habits/h1/delete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Read") {
		t.Error("deleted habit still rendered")
	}
}

func TestAlertsLifecycle(t *testing.T) {
	s, runner := newTestServer(t, seedHabits())

	// Fire the 07:00 reminder for h1.
	now := time.Date(2026, 8, 25, 7, 0, 5, 0, time.UTC)
	alerts, err := runner.Tick(context.Background(), now)
	if err != nil || len(alerts) != 1 {
		t.Fatalf("Tick = (%v, %v), want one alert", alerts, err)
	}

	rec := doRequest(s, http.MethodGet, "/ui/alerts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("alerts status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Read") {
		t.Error("pending alert not rendered")
	}

	rec = doRequest(s, http.MethodPost, "/alerts/dismiss", url.Values{"key": {alerts[0].Key()}})
	if rec.Code != http.StatusOK {
		t.Fatalf("dismiss status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Dismiss") {
		t.Error("dismissed alert still rendered")
	}
}

func TestWeeklyPartial(t *testing.T) {
	todayID := core.DateKey(time.Now())
	habits := seedHabits()
	habits[0].Completions = []string{todayID}
	s, _ := newTestServer(t, habits)

	rec := doRequest(s, http.MethodGet, "/ui/weekly", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("weekly status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), todayID) {
		t.Error("weekly partial missing today's row")
	}
}

func TestRateLimitOnMutations(t *testing.T) {
	s, _ := newTestServer(t, nil)

	var last int
	for i := 0; i < 65; i++ {
		rec := doRequest(s, http.MethodPost, "/habits", url.Values{"name": {"X"}})
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status after 65 posts = %d, want 429", last)
	}

	// Reads stay unlimited.
	if rec := doRequest(s, http.MethodGet, "/", nil); rec.Code != http.StatusOK {
		t.Errorf("read status = %d, want 200", rec.Code)
	}
}
