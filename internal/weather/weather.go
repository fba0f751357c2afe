package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

type (
	// Hourly is the current-day time series for one location.
	Hourly struct {
		Time        []string  `json:"time"`
		Temperature []float64 `json:"temperature_2m"`
		WeatherCode []int     `json:"weathercode"`
	}

	Forecast struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
		Hourly    Hourly  `json:"hourly"`
	}

	Point struct {
		Lat float64
		Lng float64
	}
)

// Client fetches hourly forecasts from open-meteo. Responses are cached
// per rounded coordinate pair so flipping between days of a trip does
// not hammer the service.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *forecastCache
}

func NewClient(cacheTTL time.Duration) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   newForecastCache(64, cacheTTL),
	}
}

// Forecast returns the hourly series for the current day at a location.
func (c *Client) Forecast(ctx context.Context, pt Point) (Forecast, error) {
	key := fmt.Sprintf("%.3f,%.3f", pt.Lat, pt.Lng)
	if f, ok := c.cache.get(key); ok {
		return f, nil
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", pt.Lat))
	params.Set("longitude", fmt.Sprintf("%f", pt.Lng))
	params.Set("hourly", "temperature_2m,weathercode")
	params.Set("timezone", "auto")
	params.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Forecast{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Forecast{}, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Forecast{}, fmt.Errorf("fetch forecast: %s", resp.Status)
	}

	var f Forecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return Forecast{}, fmt.Errorf("decode forecast: %w", err)
	}

	c.cache.set(key, f)
	return f, nil
}

// ForecastAll fetches forecasts for several points with bounded
// concurrency. The result is order-preserving; a failed point leaves a
// nil slot instead of failing the batch.
func (c *Client) ForecastAll(ctx context.Context, points []Point) []*Forecast {
	out := make([]*Forecast, len(points))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, pt := range points {
		g.Go(func() error {
			f, err := c.Forecast(ctx, pt)
			if err == nil {
				out[i] = &f
			}
			return nil
		})
	}
	g.Wait()
	return out
}
