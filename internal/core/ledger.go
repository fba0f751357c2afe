package core

// The ledger is a set of pure functions over a Trip. No function here
// mutates its input; any change is returned as a new Trip that shares
// the untouched days and events with the original.

type (
	// LineItem is one row of the trip-wide expense breakdown.
	LineItem struct {
		EventID     string        `json:"eventId"`
		Activity    string        `json:"activity"`
		DayTitle    string        `json:"dayTitle"`
		Method      PaymentMethod `json:"method"`
		PeopleCount int           `json:"peopleCount"`
		Total       float64       `json:"total"`
	}

	// Summary aggregates every expense in the trip by settlement method.
	Summary struct {
		CashTotal  float64    `json:"cashTotal"`
		CardTotal  float64    `json:"cardTotal"`
		GrandTotal float64    `json:"grandTotal"`
		Items      []LineItem `json:"items"`
	}
)

// UpdateExpense replaces the expense of the event with the given id,
// recomputing the derived total. Currency and the estimate flag are kept.
// A people count of zero or less falls back to the trip headcount.
//
// The second return value reports whether any event matched; on no match
// the input trip is returned unchanged.
func UpdateExpense(trip Trip, eventID string, amountPerPerson float64, method PaymentMethod, peopleCount int) (Trip, bool) {
	di, ei := findEvent(trip, eventID)
	if di < 0 {
		return trip, false
	}

	if peopleCount <= 0 {
		peopleCount = trip.Headcount()
	}

	ev := trip.Days[di].Events[ei]
	ev.Expense = Expense{
		AmountPerPerson: amountPerPerson,
		Currency:        ev.Expense.Currency,
		Method:          method,
		IsEstimate:      ev.Expense.IsEstimate,
		PeopleCount:     peopleCount,
		Total:           amountPerPerson * float64(peopleCount),
	}

	// Copy only the path to the edited event; sibling days and events
	// keep their backing arrays.
	events := make([]Event, len(trip.Days[di].Events))
	copy(events, trip.Days[di].Events)
	events[ei] = ev

	day := trip.Days[di]
	day.Events = events

	days := make([]Day, len(trip.Days))
	copy(days, trip.Days)
	days[di] = day

	trip.Days = days
	return trip, true
}

// Aggregate walks every event in day order and recomputes each total from
// amount and people count. Stored totals are display-only and never
// trusted here.
func Aggregate(trip Trip) Summary {
	var s Summary
	for _, day := range trip.Days {
		for _, ev := range day.Events {
			if ev.Expense.AmountPerPerson <= 0 {
				continue
			}
			people := ev.Expense.PeopleCount
			if people <= 0 {
				people = trip.Headcount()
			}
			total := ev.Expense.AmountPerPerson * float64(people)
			switch ev.Expense.Method {
			case MethodCard:
				s.CardTotal += total
			default:
				s.CashTotal += total
			}
			s.Items = append(s.Items, LineItem{
				EventID:     ev.ID,
				Activity:    ev.Activity,
				DayTitle:    day.Title,
				Method:      ev.Expense.Method,
				PeopleCount: people,
				Total:       total,
			})
		}
	}
	s.GrandTotal = s.CashTotal + s.CardTotal
	return s
}

// Recalculate enforces the ledger invariants on a freshly extracted trip:
// non-positive people counts clamp to the headcount and every total is
// recomputed. Extraction output is never trusted for derived values.
func Recalculate(trip Trip) Trip {
	if trip.Participants <= 0 {
		trip.Participants = DefaultParticipants
	}
	days := make([]Day, len(trip.Days))
	copy(days, trip.Days)
	for di := range days {
		events := make([]Event, len(days[di].Events))
		copy(events, days[di].Events)
		for ei := range events {
			exp := &events[ei].Expense
			if exp.PeopleCount <= 0 {
				exp.PeopleCount = trip.Headcount()
			}
			exp.Total = exp.AmountPerPerson * float64(exp.PeopleCount)
		}
		days[di].Events = events
	}
	trip.Days = days
	return trip
}

// FindEvent returns the event with the given id, scanning days in order.
func FindEvent(trip Trip, eventID string) (Event, bool) {
	di, ei := findEvent(trip, eventID)
	if di < 0 {
		return Event{}, false
	}
	return trip.Days[di].Events[ei], true
}

func findEvent(trip Trip, eventID string) (dayIdx, eventIdx int) {
	for di, day := range trip.Days {
		for ei, ev := range day.Events {
			if ev.ID == eventID {
				return di, ei
			}
		}
	}
	return -1, -1
}
