package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tabiplan/internal/core"
	applog "tabiplan/internal/log"
	"tabiplan/internal/weather"
)

// Method is bound as a raw string so validation sees what the client
// actually sent; the tolerant enum decoding is for extraction output
// only, never for user edits.
type expenseRequest struct {
	AmountPerPerson float64 `json:"amountPerPerson" binding:"min=0"`
	Method          string  `json:"method" binding:"required,oneof=CASH CARD"`
	PeopleCount     int     `json:"peopleCount"`
}

func (r expenseRequest) method() core.PaymentMethod {
	return core.PaymentMethod(r.Method)
}

type selectionRequest struct {
	DayIndex *int    `json:"dayIndex"`
	EventID  *string `json:"eventId"`
}

func (s *Server) getTrip(c *gin.Context) {
	snap := s.store.Snapshot()
	resp := gin.H{
		"loading":     snap.Loading,
		"selectedDay": snap.SelectedDay,
		"trip":        snap.Trip,
	}
	if snap.Err != nil {
		resp["error"] = snap.Err.Error()
	}
	if snap.OpenEventID != "" {
		resp["openEventId"] = snap.OpenEventID
	}
	c.JSON(http.StatusOK, resp)
}

// reload re-runs fetch and extraction. Failures are reported in the
// response body, never thrown; the last-good trip stays available.
func (s *Server) reload(c *gin.Context) {
	if err := s.store.Load(c.Request.Context()); err != nil {
		s.logger.Error("reload failed", applog.FieldError, err)
	} else {
		s.resetDebouncers()
	}
	s.getTrip(c)
}

func (s *Server) setSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DayIndex != nil {
		s.store.SelectDay(*req.DayIndex)
	}
	if req.EventID != nil {
		if *req.EventID == "" {
			s.store.CloseEvent()
		} else if !s.store.OpenEvent(*req.EventID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"selectedDay": s.store.Snapshot().SelectedDay})
}

func (s *Server) expenseSummary(c *gin.Context) {
	snap := s.store.Snapshot()
	if snap.Trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no itinerary loaded"})
		return
	}
	c.JSON(http.StatusOK, core.Aggregate(*snap.Trip))
}

func (s *Server) putExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventID := c.Param("id")
	ev, ok := s.store.UpdateExpense(eventID, req.AmountPerPerson, req.method(), req.PeopleCount)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	s.logger.Info("expense updated",
		applog.FieldEventID, eventID,
		applog.FieldAmount, req.AmountPerPerson,
		applog.FieldPeople, ev.Expense.PeopleCount)
	c.JSON(http.StatusOK, ev)
}

// patchExpense is the keystroke-level edit path: rapid edits within the
// debounce window collapse into a single ledger call using the final
// values.
func (s *Server) patchExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventID := c.Param("id")
	snap := s.store.Snapshot()
	if snap.Trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no itinerary loaded"})
		return
	}
	if _, ok := core.FindEvent(*snap.Trip, eventID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	s.debouncerFor(eventID).Trigger(func() {
		s.store.UpdateExpense(eventID, req.AmountPerPerson, req.method(), req.PeopleCount)
	})
	c.JSON(http.StatusAccepted, gin.H{"status": "pending"})
}

func (s *Server) dayAt(c *gin.Context) (core.Day, bool) {
	snap := s.store.Snapshot()
	if snap.Trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no itinerary loaded"})
		return core.Day{}, false
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 || idx >= len(snap.Trip.Days) {
		c.JSON(http.StatusNotFound, gin.H{"error": "day not found"})
		return core.Day{}, false
	}
	return snap.Trip.Days[idx], true
}

func (s *Server) dayWeather(c *gin.Context) {
	day, ok := s.dayAt(c)
	if !ok {
		return
	}
	name, pt := day.WeatherPoint()
	if pt == nil {
		// No coordinates means no lookup at all.
		c.Status(http.StatusNoContent)
		return
	}

	f, err := s.weather.Forecast(c.Request.Context(), weather.Point{Lat: pt.Lat, Lng: pt.Lng})
	if err != nil {
		s.logger.Error("forecast failed", applog.FieldError, err,
			applog.FieldLatitude, pt.Lat, applog.FieldLongitude, pt.Lng)
		c.JSON(http.StatusBadGateway, gin.H{"error": "weather unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": name, "forecast": f})
}

// tripWeather fetches forecasts for every day of the trip in one go.
func (s *Server) tripWeather(c *gin.Context) {
	snap := s.store.Snapshot()
	if snap.Trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no itinerary loaded"})
		return
	}

	type slot struct {
		name string
		pt   *core.LatLng
	}
	slots := make([]slot, len(snap.Trip.Days))
	var points []weather.Point
	var idx []int
	for i, day := range snap.Trip.Days {
		name, pt := day.WeatherPoint()
		slots[i] = slot{name: name, pt: pt}
		if pt != nil {
			points = append(points, weather.Point{Lat: pt.Lat, Lng: pt.Lng})
			idx = append(idx, i)
		}
	}

	forecasts := s.weather.ForecastAll(c.Request.Context(), points)

	out := make([]gin.H, len(slots))
	for i, sl := range slots {
		out[i] = gin.H{"location": sl.name}
	}
	for j, f := range forecasts {
		if f != nil {
			out[idx[j]]["forecast"] = f
		}
	}
	c.JSON(http.StatusOK, gin.H{"days": out})
}

// dayNavigation mirrors the travel tip shown under a day's timeline:
// where the next event is and how long the drive there should take.
func (s *Server) dayNavigation(c *gin.Context) {
	day, ok := s.dayAt(c)
	if !ok {
		return
	}
	if len(day.Events) < 2 {
		c.Status(http.StatusNoContent)
		return
	}

	next := day.Events[1]
	tip := gin.H{
		"nextLocation":     next.Activity,
		"estimatedTime":    orDefault(next.EstimatedTravelTime, "35 min"),
		"estimatedArrival": orDefault(next.EstimatedArrivalTime, "14:30"),
		"distance":         orDefault(next.Distance, "12 km"),
		"trafficStatus":    next.TrafficStatus,
	}
	if next.TrafficStatus == "" {
		tip["trafficStatus"] = core.TrafficNormal
	}
	c.JSON(http.StatusOK, tip)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
