package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	applog "tabiplan/internal/log"
	"tabiplan/internal/session"
	"tabiplan/internal/weather"
)

// Forecaster is what the handlers need from the weather client.
type Forecaster interface {
	Forecast(ctx context.Context, pt weather.Point) (weather.Forecast, error)
	ForecastAll(ctx context.Context, points []weather.Point) []*weather.Forecast
}

var _ Forecaster = (*weather.Client)(nil)

// Server is the HTTP surface over the session store. It owns one
// debouncer per event so keystroke-level edits coalesce server-side.
type Server struct {
	engine  *gin.Engine
	store   *session.Store
	weather Forecaster
	logger  *applog.Logger

	window     time.Duration
	mu         sync.Mutex
	debouncers map[string]*session.Debouncer
}

func NewServer(store *session.Store, wc Forecaster, debounceWindow time.Duration, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentAPI)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:     engine,
		store:      store,
		weather:    wc,
		logger:     logger,
		window:     debounceWindow,
		debouncers: make(map[string]*session.Debouncer),
	}

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}

	limiter := newRateLimiter()

	engine.Use(s.requestLog(), cors.New(corsCfg), limiter.middleware())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	trip := engine.Group("/api/trip")
	{
		trip.GET("", s.getTrip)
		trip.POST("/reload", s.reload)
		trip.POST("/selection", s.setSelection)
		trip.GET("/expenses/summary", s.expenseSummary)
		trip.PUT("/events/:id/expense", s.putExpense)
		trip.PATCH("/events/:id/expense", s.patchExpense)
		trip.GET("/days/:index/weather", s.dayWeather)
		trip.GET("/days/:index/navigation", s.dayNavigation)
		trip.GET("/weather", s.tripWeather)
	}

	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) debouncerFor(eventID string) *session.Debouncer {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.debouncers[eventID]
	if !ok {
		d = session.NewDebouncer(s.window)
		s.debouncers[eventID] = d
	}
	return d
}

// resetDebouncers drops all per-event debouncers. A reload replaces the
// trip and its event ids, so pending edits and their map entries would
// otherwise outlive the events they belong to.
func (s *Server) resetDebouncers() {
	s.mu.Lock()
	old := s.debouncers
	s.debouncers = make(map[string]*session.Debouncer)
	s.mu.Unlock()
	for _, d := range old {
		d.Cancel()
	}
}
