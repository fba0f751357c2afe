package session

import (
	"context"
	"sync"

	"tabiplan/internal/core"
	"tabiplan/internal/extract"
	applog "tabiplan/internal/log"
	"tabiplan/internal/source"
)

// Extractor is what the store needs from the extraction pipeline.
type Extractor interface {
	Extract(ctx context.Context, csvText string) (core.Trip, error)
}

var _ Extractor = (*extract.Pipeline)(nil)

// Store owns the single current Trip for the session, plus the pure UI
// state around it (selected day, open event). All mutation goes through
// the ledger; views only ever read the held instance, so a successful
// edit is visible everywhere before the next read.
type Store struct {
	src    source.SheetSource
	ext    Extractor
	logger *applog.Logger

	mu          sync.Mutex
	trip        *core.Trip
	selectedDay int
	openEventID string
	loading     bool
	lastErr     error
	generation  uint64

	subs []chan struct{}
}

// State is a read snapshot of the store.
type State struct {
	Loading     bool
	Err         error
	Trip        *core.Trip
	SelectedDay int
	OpenEventID string
}

func NewStore(src source.SheetSource, ext Extractor, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentSession)
	}
	return &Store{src: src, ext: ext, logger: logger}
}

// Load fetches the sheet, runs extraction and replaces the held trip.
// A load that finishes after a newer one has started is discarded, so a
// stale response can never overwrite fresher state. On failure the
// previous trip is retained alongside the error.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.loading = true
	s.mu.Unlock()
	s.notify()

	csvText, err := s.src.FetchCSV(ctx)
	var trip core.Trip
	if err == nil {
		trip, err = s.ext.Extract(ctx, csvText)
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Warn("discarding stale load result", applog.FieldGeneration, gen)
		return nil
	}
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Error("load failed", applog.FieldError, err)
		s.notify()
		return err
	}

	normalized := core.Recalculate(trip)
	s.trip = &normalized
	s.selectedDay = 0
	s.lastErr = nil
	s.mu.Unlock()

	s.logger.Info("itinerary loaded",
		applog.FieldGeneration, gen,
		applog.FieldDayIndex, 0,
		"days", len(normalized.Days))
	s.notify()
	return nil
}

// UpdateExpense routes an edit through the ledger and replaces the held
// trip on a match. The updated event is returned so an open detail view
// can refresh within the same transition.
func (s *Store) UpdateExpense(eventID string, amountPerPerson float64, method core.PaymentMethod, peopleCount int) (core.Event, bool) {
	s.mu.Lock()
	if s.trip == nil {
		s.mu.Unlock()
		return core.Event{}, false
	}

	updated, ok := core.UpdateExpense(*s.trip, eventID, amountPerPerson, method, peopleCount)
	if !ok {
		s.mu.Unlock()
		s.logger.Warn("expense update for unknown event", applog.FieldEventID, eventID)
		return core.Event{}, false
	}
	s.trip = &updated
	s.mu.Unlock()
	s.notify()

	ev, _ := core.FindEvent(updated, eventID)
	return ev, true
}

// Snapshot returns the current state. The trip pointer is shared;
// callers must treat it as read-only (the store replaces it wholesale on
// every edit).
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Loading:     s.loading,
		Err:         s.lastErr,
		Trip:        s.trip,
		SelectedDay: s.selectedDay,
		OpenEventID: s.openEventID,
	}
}

// SelectDay sets the current day index, clamped to the trip bounds.
func (s *Store) SelectDay(idx int) {
	s.mu.Lock()
	if s.trip == nil || idx < 0 || idx >= len(s.trip.Days) {
		s.mu.Unlock()
		return
	}
	s.selectedDay = idx
	s.mu.Unlock()
	s.notify()
}

// OpenEvent marks an event as open for detail editing.
func (s *Store) OpenEvent(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip == nil {
		return false
	}
	if _, ok := core.FindEvent(*s.trip, eventID); !ok {
		return false
	}
	s.openEventID = eventID
	return true
}

func (s *Store) CloseEvent() {
	s.mu.Lock()
	s.openEventID = ""
	s.mu.Unlock()
}

// OpenedEvent resolves the open event against the current trip, so it
// can never show a pre-edit total.
func (s *Store) OpenedEvent() (core.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip == nil || s.openEventID == "" {
		return core.Event{}, false
	}
	return core.FindEvent(*s.trip, s.openEventID)
}

// Subscribe returns a channel that receives a signal after every state
// change. Signals are coalesced; slow subscribers never block the store.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := s.subs
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
