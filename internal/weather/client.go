// Package weather fetches short-range precipitation forecasts from the
// Open-Meteo API. Failures degrade to a neutral placeholder rather than
// propagating, so enrichment can never abort an aggregation cycle.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// FallbackText is returned whenever the forecast service is unreachable
// or responds with something unusable.
const FallbackText = "Weather forecast unavailable."

// Forecast is a one-coordinate, next-day precipitation summary.
type Forecast struct {
	Text       string
	RainfallMm float64
}

// Forecaster is the single-coordinate forecast contract consumed by the
// flood-risk generator and the per-point enrichment stage.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lng float64) Forecast
}

// Client implements Forecaster against the Open-Meteo daily forecast API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type forecastResponse struct {
	Daily struct {
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Forecast returns the next-day precipitation for a coordinate. Any error
// (network, status, decode, empty series) yields the fallback forecast with
// zero rainfall; the error is logged, never returned.
func (c *Client) Forecast(ctx context.Context, lat, lng float64) Forecast {
	params := url.Values{
		"latitude":  {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude": {strconv.FormatFloat(lng, 'f', 4, 64)},
		"daily":     {"precipitation_sum"},
		"timezone":  {"auto"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Warn("weather request build failed", "error", err)
		return Forecast{Text: FallbackText}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("weather fetch failed", "lat", lat, "lng", lng, "error", err)
		return Forecast{Text: FallbackText}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("weather fetch bad status", "lat", lat, "lng", lng, "status", resp.StatusCode)
		return Forecast{Text: FallbackText}
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Warn("weather decode failed", "error", err)
		return Forecast{Text: FallbackText}
	}

	if len(data.Daily.PrecipitationSum) == 0 {
		return Forecast{Text: "Weather data limited."}
	}

	rain := data.Daily.PrecipitationSum[0]
	return Forecast{
		Text:       fmt.Sprintf("Rainfall (NOAA GFS): %.1fmm", rain),
		RainfallMm: rain,
	}
}
