// Package daemon provides the long-running local bill status service.
// It watches the persisted store and serves the current view over HTTP;
// it never schedules notifications; the on-open check owns reminders.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
	"github.com/ARK-Community/AutoBillTracker/internal/notify"
	"github.com/ARK-Community/AutoBillTracker/internal/view"
)

// Loader reads the current bill collection. Satisfied by store.Backend.
type Loader interface {
	Load() ([]model.Bill, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	Store        Loader
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact bill state for status/event payloads.
type Snapshot struct {
	At          time.Time `json:"at"`
	Bills       int       `json:"bills"`
	Unpaid      int       `json:"unpaid"`
	Overdue     int       `json:"overdue"`
	DueSoon     int       `json:"due_soon"`
	DueToday    int       `json:"due_today"`
	UnpaidTotal string    `json:"unpaid_total"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Bills   int `json:"bills"`
	Unpaid  int `json:"unpaid"`
	Overdue int `json:"overdue"`
	DueSoon int `json:"due_soon"`
}

func (d Delta) isZero() bool {
	return d.Bills == 0 && d.Unpaid == 0 && d.Overdue == 0 && d.DueSoon == 0
}

// Event is emitted whenever the bill snapshot changes between polls.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	bills       []model.Bill
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 60 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8791"
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleOverview)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	now := time.Now()
	bills, err := s.cfg.Store.Load()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		slog.Warn("daemon poll failed", "err", err)
		return
	}

	snap := snapshotBills(bills, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.bills = bills
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() || prev.UnpaidTotal != snap.UnpaidTotal {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "bills_changed",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func snapshotBills(bills []model.Bill, at time.Time) Snapshot {
	res := view.Compute(bills, "", view.FilterAll, at)

	snap := Snapshot{
		At:          at,
		Bills:       res.Count,
		UnpaidTotal: res.UnpaidTotal.StringFixed(2),
	}
	for _, b := range bills {
		switch view.Classify(b, at) {
		case model.StatusOverdue:
			snap.Overdue++
		case model.StatusDueSoon:
			snap.DueSoon++
		}
		if !b.Paid {
			snap.Unpaid++
		}
	}
	for _, b := range notify.SelectDue(bills, at) {
		if b.DueDate == at.Format("2006-01-02") {
			snap.DueToday++
		}
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Bills:   curr.Bills - prev.Bills,
		Unpaid:  curr.Unpaid - prev.Unpaid,
		Overdue: curr.Overdue - prev.Overdue,
		DueSoon: curr.DueSoon - prev.DueSoon,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

// handleOverview serves a minimal HTML page with the current bills. Bill
// names and notes are user text destined for markup, so they pass through
// escapeMarkup before embedding.
func (s *Service) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.mu.RLock()
	bills := make([]model.Bill, len(s.bills))
	copy(bills, s.bills)
	snap := s.snapshot
	s.mu.RUnlock()

	now := time.Now()

	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset=\"utf-8\"><title>autobill</title></head><body>")
	b.WriteString(fmt.Sprintf("<h1>autobill</h1><p>%d bills, %d unpaid ($%s), %d overdue</p>",
		snap.Bills, snap.Unpaid, snap.UnpaidTotal, snap.Overdue))
	b.WriteString("<table border=\"1\"><tr><th>Name</th><th>Amount</th><th>Due</th><th>Status</th><th>Notes</th></tr>")
	for _, bill := range bills {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>$%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			escapeMarkup(bill.Name),
			bill.Amount.StringFixed(2),
			bill.DueDate,
			view.Classify(bill, now),
			escapeMarkup(bill.Notes),
		))
	}
	b.WriteString("</table></body></html>")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

// escapeMarkup escapes the five characters that matter in HTML text and
// attribute positions.
func escapeMarkup(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return r.Replace(s)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
