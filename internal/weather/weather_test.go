package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const forecastBody = `{
	"latitude": 38.26,
	"longitude": 140.87,
	"timezone": "Asia/Tokyo",
	"hourly": {
		"time": ["2025-10-28T00:00", "2025-10-28T01:00"],
		"temperature_2m": [8.5, 7.9],
		"weathercode": [1, 3]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, ttl time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(ttl)
	c.baseURL = srv.URL
	return c
}

func TestForecast(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("hourly") != "temperature_2m,weathercode" {
			t.Fatalf("hourly param = %q", q.Get("hourly"))
		}
		if q.Get("forecast_days") != "1" {
			t.Fatalf("forecast_days param = %q", q.Get("forecast_days"))
		}
		w.Write([]byte(forecastBody))
	}, time.Minute)

	f, err := c.Forecast(context.Background(), Point{Lat: 38.26, Lng: 140.87})
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(f.Hourly.Time) != 2 || f.Hourly.Temperature[0] != 8.5 || f.Hourly.WeatherCode[1] != 3 {
		t.Fatalf("unexpected forecast: %+v", f)
	}
}

func TestForecastCached(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(forecastBody))
	}, time.Minute)

	pt := Point{Lat: 38.26, Lng: 140.87}
	for i := 0; i < 3; i++ {
		if _, err := c.Forecast(context.Background(), pt); err != nil {
			t.Fatalf("forecast %d: %v", i, err)
		}
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}

	// A nearby but distinct point misses the cache.
	if _, err := c.Forecast(context.Background(), Point{Lat: 37.74, Lng: 140.40}); err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls)
	}
}

func TestForecastUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}, time.Minute)

	if _, err := c.Forecast(context.Background(), Point{Lat: 1, Lng: 2}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestForecastAll(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Query().Get("latitude")[:2] == "99" {
			http.Error(w, "bad point", http.StatusBadRequest)
			return
		}
		w.Write([]byte(forecastBody))
	}, time.Minute)

	got := c.ForecastAll(context.Background(), []Point{
		{Lat: 38.26, Lng: 140.87},
		{Lat: 99.0, Lng: 0.0}, // upstream rejects this one
		{Lat: 37.74, Lng: 140.40},
	})

	if got[0] == nil || got[2] == nil {
		t.Fatalf("good points missing: %+v", got)
	}
	if got[1] != nil {
		t.Fatalf("failed point should be nil, got %+v", got[1])
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := newForecastCache(2, 10*time.Millisecond)
	cache.set("a", Forecast{Timezone: "x"})
	if _, ok := cache.get("a"); !ok {
		t.Fatalf("expected hit")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := cache.get("a"); ok {
		t.Fatalf("expected expiry")
	}
}

func TestCacheEviction(t *testing.T) {
	cache := newForecastCache(2, time.Minute)
	cache.set("a", Forecast{})
	cache.set("b", Forecast{})
	cache.set("c", Forecast{})
	if _, ok := cache.get("a"); ok {
		t.Fatalf("oldest entry should have been evicted")
	}
	if _, ok := cache.get("c"); !ok {
		t.Fatalf("newest entry missing")
	}
}
