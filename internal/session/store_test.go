package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tabiplan/internal/core"
	"tabiplan/internal/extract"
)

// titleExtractor turns the fetched CSV text straight into a one-day trip
// titled after it, so tests can tell loads apart.
type titleExtractor struct{ err error }

func (e *titleExtractor) Extract(_ context.Context, csvText string) (core.Trip, error) {
	if e.err != nil {
		return core.Trip{}, e.err
	}
	return core.Trip{
		Title:        csvText,
		Participants: 6,
		Days: []core.Day{{Date: "2025-10-28", Events: []core.Event{{
			ID: "ev-1", Time: "12:00", Activity: "Lunch", Category: core.CategoryFood,
			Expense: core.Expense{AmountPerPerson: 3000, Method: core.MethodCash},
		}}}},
	}, nil
}

type staticSource struct {
	text string
	err  error
}

func (s *staticSource) FetchCSV(context.Context) (string, error) { return s.text, s.err }

// seqSource hands out one scripted response per call, each blocked on
// its own gate so tests control completion order.
type seqSource struct {
	mu      sync.Mutex
	n       int
	texts   []string
	gates   []chan struct{}
	started chan int
}

func (s *seqSource) FetchCSV(ctx context.Context) (string, error) {
	s.mu.Lock()
	i := s.n
	s.n++
	s.mu.Unlock()
	s.started <- i
	<-s.gates[i]
	return s.texts[i], nil
}

func TestLoadSuccess(t *testing.T) {
	st := NewStore(&staticSource{text: "trip-a"}, &titleExtractor{}, nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	snap := st.Snapshot()
	if snap.Trip == nil || snap.Trip.Title != "trip-a" {
		t.Fatalf("trip not stored: %+v", snap.Trip)
	}
	if snap.SelectedDay != 0 {
		t.Fatalf("selected day = %d, want 0", snap.SelectedDay)
	}
	if snap.Err != nil || snap.Loading {
		t.Fatalf("unexpected state: %+v", snap)
	}
	// Ledger invariants applied on ingest.
	ev := snap.Trip.Days[0].Events[0]
	if ev.Expense.PeopleCount != 6 || ev.Expense.Total != 18000 {
		t.Fatalf("expense not recalculated: %+v", ev.Expense)
	}
}

func TestLoadFailureKeepsPriorTrip(t *testing.T) {
	src := &staticSource{text: "trip-a"}
	st := NewStore(src, &titleExtractor{}, nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	src.err = errors.New("network down")
	if err := st.Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}

	snap := st.Snapshot()
	if snap.Trip == nil || snap.Trip.Title != "trip-a" {
		t.Fatalf("prior trip discarded: %+v", snap.Trip)
	}
	if snap.Err == nil {
		t.Fatalf("error not surfaced")
	}
}

func TestLoadEmptyExtractionKeepsPriorTrip(t *testing.T) {
	ext := &titleExtractor{}
	st := NewStore(&staticSource{text: "trip-a"}, ext, nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	ext.err = extract.ErrEmptyResult
	err := st.Load(context.Background())
	if !errors.Is(err, extract.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}

	snap := st.Snapshot()
	if snap.Trip == nil || snap.Trip.Title != "trip-a" {
		t.Fatalf("prior trip discarded")
	}
	if !errors.Is(snap.Err, extract.ErrEmptyResult) {
		t.Fatalf("error not retained: %v", snap.Err)
	}
}

func TestStaleLoadDiscarded(t *testing.T) {
	src := &seqSource{
		texts:   []string{"stale", "fresh"},
		gates:   []chan struct{}{make(chan struct{}), make(chan struct{})},
		started: make(chan int, 2),
	}
	st := NewStore(src, &titleExtractor{}, nil)

	done := make(chan error, 2)
	go func() { done <- st.Load(context.Background()) }()
	<-src.started // first load is in flight

	go func() { done <- st.Load(context.Background()) }()
	<-src.started

	// The newer load completes first.
	close(src.gates[1])
	<-done
	if snap := st.Snapshot(); snap.Trip == nil || snap.Trip.Title != "fresh" {
		t.Fatalf("fresh load not applied: %+v", snap.Trip)
	}

	// The older one completes afterwards and must be dropped.
	close(src.gates[0])
	<-done
	if snap := st.Snapshot(); snap.Trip.Title != "fresh" {
		t.Fatalf("stale load overwrote state: %q", snap.Trip.Title)
	}
}

func TestUpdateExpenseRefreshesOpenEvent(t *testing.T) {
	st := NewStore(&staticSource{text: "trip-a"}, &titleExtractor{}, nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !st.OpenEvent("ev-1") {
		t.Fatalf("open event failed")
	}

	ev, ok := st.UpdateExpense("ev-1", 4000, core.MethodCard, 3)
	if !ok {
		t.Fatalf("expected match")
	}
	if ev.Expense.Total != 12000 {
		t.Fatalf("returned event total = %v", ev.Expense.Total)
	}

	// The open detail view resolves against the replaced trip.
	open, ok := st.OpenedEvent()
	if !ok || open.Expense.Total != 12000 {
		t.Fatalf("open event shows stale total: %+v", open.Expense)
	}
	if s := core.Aggregate(*st.Snapshot().Trip); s.CardTotal != 12000 {
		t.Fatalf("summary view diverged: %+v", s)
	}
}

func TestUpdateExpenseUnknownID(t *testing.T) {
	st := NewStore(&staticSource{text: "trip-a"}, &titleExtractor{}, nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := st.Snapshot().Trip
	if _, ok := st.UpdateExpense("nonexistent-id", 100, core.MethodCash, 1); ok {
		t.Fatalf("expected no match")
	}
	if st.Snapshot().Trip != before {
		t.Fatalf("trip replaced on no-op update")
	}
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	st := NewStore(&staticSource{text: "trip-a"}, &titleExtractor{}, nil)
	ch := st.Subscribe()

	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("no notification after load")
	}
}

func TestSelectDayBounds(t *testing.T) {
	st := NewStore(&staticSource{text: "trip-a"}, &titleExtractor{}, nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	st.SelectDay(5) // out of range, ignored
	if st.Snapshot().SelectedDay != 0 {
		t.Fatalf("out-of-range selection applied")
	}
	st.SelectDay(0)
	if st.Snapshot().SelectedDay != 0 {
		t.Fatalf("selection lost")
	}
}
