package extract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"tabiplan/internal/core"
)

// Generator is the opaque text-to-structure capability: instruction in,
// JSON text out. The Gemini adapter is the production implementation;
// tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, instruction string) (string, error)
}

// Pipeline turns raw tabular text into a typed itinerary.
type Pipeline struct {
	gen          Generator
	anchor       time.Time
	tripDays     int
	participants int
}

func NewPipeline(gen Generator, anchor time.Time, tripDays, participants int) *Pipeline {
	if participants <= 0 {
		participants = core.DefaultParticipants
	}
	return &Pipeline{
		gen:          gen,
		anchor:       anchor,
		tripDays:     tripDays,
		participants: participants,
	}
}

// Extract submits the raw CSV to the generator and parses the reply.
// An empty reply is ErrEmptyResult; an undecodable one is a
// DataFormatError. Numeric ledger invariants are not enforced here.
func (p *Pipeline) Extract(ctx context.Context, csvText string) (core.Trip, error) {
	instruction := Prompt(p.anchor, p.tripDays, p.participants, csvText)

	out, err := p.gen.Generate(ctx, instruction)
	if err != nil {
		return core.Trip{}, err
	}
	if strings.TrimSpace(out) == "" {
		return core.Trip{}, ErrEmptyResult
	}

	trip, err := Parse(out)
	if err != nil {
		return core.Trip{}, err
	}
	if trip.Participants <= 0 {
		trip.Participants = p.participants
	}
	return trip, nil
}

// Parse decodes generator output into a Trip and normalizes it: every
// day gets a non-nil event list and every event an id. Enum fields fall
// back to their defaults during decoding rather than failing the parse.
func Parse(text string) (core.Trip, error) {
	var trip core.Trip
	if err := json.Unmarshal([]byte(text), &trip); err != nil {
		return core.Trip{}, &DataFormatError{Reason: "invalid JSON", Err: err}
	}
	if trip.Days == nil {
		return core.Trip{}, &DataFormatError{Reason: "missing days"}
	}

	for di := range trip.Days {
		if trip.Days[di].Events == nil {
			trip.Days[di].Events = []core.Event{}
		}
		for ei := range trip.Days[di].Events {
			ev := &trip.Days[di].Events[ei]
			if strings.TrimSpace(ev.ID) == "" {
				ev.ID = uuid.NewString()
			}
		}
	}
	return trip, nil
}
