package core

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	CategoryTransport EventCategory = "TRANSPORT"
	CategoryFood      EventCategory = "FOOD"
	CategoryActivity  EventCategory = "ACTIVITY"
	CategoryStay      EventCategory = "STAY"
	CategoryOther     EventCategory = "OTHER"
)

const (
	MethodCash PaymentMethod = "CASH"
	MethodCard PaymentMethod = "CARD"
)

const (
	TrafficNormal    TrafficStatus = "normal"
	TrafficModerate  TrafficStatus = "moderate"
	TrafficCongested TrafficStatus = "congested"
)

// DefaultParticipants is the headcount assumed when the source data
// does not state one.
const DefaultParticipants = 6

type (
	EventCategory string
	PaymentMethod string
	TrafficStatus string

	LatLng struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}

	// Expense is the per-event ledger entry. Total is derived and must
	// always equal AmountPerPerson times the effective people count.
	Expense struct {
		AmountPerPerson float64       `json:"amountPerPerson"`
		Currency        string        `json:"currency,omitempty"`
		Method          PaymentMethod `json:"method"`
		IsEstimate      bool          `json:"isEstimate,omitempty"`
		PeopleCount     int           `json:"peopleCount"`
		Total           float64       `json:"total"`
	}

	Room struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		ImageURL    string `json:"imageUrl,omitempty"`
		Link        string `json:"link,omitempty"`
	}

	Onsen struct {
		HasPrivateBath bool   `json:"hasPrivateBath,omitempty"`
		HasOpenAir     bool   `json:"hasOpenAir,omitempty"`
		BathName       string `json:"bathName,omitempty"`
		Hours          string `json:"hours,omitempty"`
		GenderSwap     string `json:"genderSwap,omitempty"`
		PrivateBathFee string `json:"privateBathFee,omitempty"`
	}

	Dish struct {
		Original   string `json:"original"`
		Translated string `json:"translated,omitempty"`
	}

	HotelActivity struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		ImageURL    string `json:"imageUrl,omitempty"`
	}

	TransportInfo struct {
		DepartureTerminal string `json:"departureTerminal,omitempty"`
		ArrivalTerminal   string `json:"arrivalTerminal,omitempty"`
		FlightNumber      string `json:"flightNumber,omitempty"`
	}

	CarRental struct {
		Model           string `json:"model,omitempty"`
		Company         string `json:"company,omitempty"`
		PickupLocation  string `json:"pickupLocation,omitempty"`
		DropoffLocation string `json:"dropoffLocation,omitempty"`
	}

	// Details carries category-specific facts. Every field is optional;
	// rendering must never depend on any of them being present.
	Details struct {
		JapaneseName    string          `json:"japaneseName,omitempty"`
		Hiragana        string          `json:"hiragana,omitempty"`
		Address         string          `json:"address,omitempty"`
		PhoneNumber     string          `json:"phoneNumber,omitempty"`
		OpeningHours    string          `json:"openingHours,omitempty"`
		Holidays        string          `json:"holidays,omitempty"`
		LastOrder       string          `json:"lastOrder,omitempty"`
		ReservationURL  string          `json:"reservationUrl,omitempty"`
		TabelogURL      string          `json:"tabelogUrl,omitempty"`
		WebsiteURL      string          `json:"websiteUrl,omitempty"`
		IsReserved      bool            `json:"isReserved,omitempty"`
		MealPlan        string          `json:"mealPlan,omitempty"`
		RoomType        string          `json:"roomType,omitempty"`
		Rooms           []Room          `json:"rooms,omitempty"`
		Onsen           *Onsen          `json:"onsen,omitempty"`
		HotelActivities []HotelActivity `json:"hotelActivities,omitempty"`
		PopularDishes   []Dish          `json:"popularDishes,omitempty"`
		TransportInfo   *TransportInfo  `json:"transportInfo,omitempty"`
		CarRental       *CarRental      `json:"carRental,omitempty"`
		Coordinates     *LatLng         `json:"coordinates,omitempty"`
	}

	// Event is one scheduled itinerary entry. ID is the stable join key
	// for ledger updates and never changes once assigned.
	Event struct {
		ID       string        `json:"id"`
		Time     string        `json:"time"`
		EndTime  string        `json:"endTime,omitempty"`
		Activity string        `json:"activity"`
		Location string        `json:"location,omitempty"`
		Notes    string        `json:"notes,omitempty"`
		Category EventCategory `json:"category"`
		Emoji    string        `json:"emoji,omitempty"`
		Details  Details       `json:"details"`
		Expense  Expense       `json:"expense"`

		EstimatedTravelTime  string        `json:"estimatedTravelTime,omitempty"`
		EstimatedArrivalTime string        `json:"estimatedArrivalTime,omitempty"`
		Distance             string        `json:"distance,omitempty"`
		TrafficStatus        TrafficStatus `json:"trafficStatus,omitempty"`
	}

	Day struct {
		Date         string  `json:"date"`
		DayOfWeek    string  `json:"dayOfWeek"`
		DayNumber    string  `json:"dayNumber"`
		Title        string  `json:"dayTitle"`
		Summary      string  `json:"summary,omitempty"`
		Location     string  `json:"location,omitempty"`
		ImageKeyword string  `json:"imageKeyword,omitempty"`
		Coordinates  *LatLng `json:"coordinates,omitempty"`
		Events       []Event `json:"events"`
	}

	// Trip is the root aggregate. It exclusively owns its Days, each Day
	// its Events; nothing is shared by reference across owners.
	Trip struct {
		Title        string `json:"tripTitle"`
		Year         string `json:"year,omitempty"`
		Month        string `json:"month,omitempty"`
		Participants int    `json:"participants"`
		Days         []Day  `json:"days"`
	}
)

var (
	ErrNoParticipants = errors.New("trip has no participants")
	ErrEmptyTitle     = errors.New("empty trip title")
	ErrEmptyDate      = errors.New("day has no date")
)

func (t Trip) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.Participants <= 0 {
		return ErrNoParticipants
	}
	for _, d := range t.Days {
		if strings.TrimSpace(d.Date) == "" {
			return ErrEmptyDate
		}
	}
	return nil
}

// Headcount returns the divisor to use for expenses without an explicit
// people count.
func (t Trip) Headcount() int {
	if t.Participants > 0 {
		return t.Participants
	}
	return DefaultParticipants
}

// WeatherPoint returns the coordinates to use for a day's forecast,
// preferring the first STAY event's own coordinates over the day default.
func (d Day) WeatherPoint() (name string, pt *LatLng) {
	for _, e := range d.Events {
		if e.Category == CategoryStay && e.Details.Coordinates != nil {
			return e.Activity, e.Details.Coordinates
		}
	}
	return d.Location, d.Coordinates
}

// UnmarshalJSON maps unrecognized categories to OTHER instead of
// carrying free strings into the closed set.
func (c *EventCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch EventCategory(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryTransport:
		*c = CategoryTransport
	case CategoryFood:
		*c = CategoryFood
	case CategoryActivity:
		*c = CategoryActivity
	case CategoryStay:
		*c = CategoryStay
	default:
		*c = CategoryOther
	}
	return nil
}

// UnmarshalJSON maps unrecognized settlement methods to CASH.
func (m *PaymentMethod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) == MethodCard {
		*m = MethodCard
	} else {
		*m = MethodCash
	}
	return nil
}

// UnmarshalJSON drops unrecognized traffic values rather than storing them.
func (ts *TrafficStatus) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch TrafficStatus(strings.ToLower(strings.TrimSpace(s))) {
	case TrafficNormal:
		*ts = TrafficNormal
	case TrafficModerate:
		*ts = TrafficModerate
	case TrafficCongested:
		*ts = TrafficCongested
	default:
		*ts = ""
	}
	return nil
}

func (m PaymentMethod) IsValid() bool {
	return m == MethodCash || m == MethodCard
}

func (c EventCategory) IsValid() bool {
	switch c {
	case CategoryTransport, CategoryFood, CategoryActivity, CategoryStay, CategoryOther:
		return true
	}
	return false
}
