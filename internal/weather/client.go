package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/logx"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/units"
)

const (
	defaultBaseURL    = "https://api.openweathermap.org/data/2.5"
	defaultGeoBaseURL = "https://api.openweathermap.org/geo/1.0"

	// suggestLimit caps geocoding candidates for both search and autocomplete.
	suggestLimit = 5
)

// placeholder credentials that ship in sample configs and must not reach the provider.
var placeholderKeys = map[string]struct{}{
	"":                  {},
	"your_api_key":      {},
	"your_api_key_here": {},
	"changeme":          {},
}

// Config bundles the client's collaborators and endpoints.
type Config struct {
	HTTPClient *http.Client
	APIKey     string
	BaseURL    string // weather/forecast endpoints; defaulted when empty
	GeoBaseURL string // geocoding endpoint; defaulted when empty
	Logger     logx.Logger
}

// Client talks to the weather provider: geocoding, current conditions and the
// 3-hour forecast series. Every request is a single attempt; a circuit
// breaker gates calls when the provider is failing hard.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	geoBaseURL string
	circuit    *gobreaker.CircuitBreaker
	logger     logx.Logger
}

// NewClient creates a provider client from cfg, applying defaults for any
// collaborator left unset.
func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.GeoBaseURL == "" {
		cfg.GeoBaseURL = defaultGeoBaseURL
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.Nop{}
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient: cfg.HTTPClient,
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		geoBaseURL: strings.TrimSuffix(cfg.GeoBaseURL, "/"),
		circuit:    cb,
		logger:     cfg.Logger,
	}
}

// IsConfigured reports whether a usable (non-placeholder) credential is present.
func (c *Client) IsConfigured() bool {
	_, placeholder := placeholderKeys[strings.ToLower(c.apiKey)]
	return !placeholder
}

type geoEntry struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// ResolveCity queries the geocoding endpoint for a free-text city name.
// An empty result is not an error; the caller decides what "not found" means.
func (c *Client) ResolveCity(ctx context.Context, query string) ([]Location, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", suggestLimit))
	values.Set("appid", c.apiKey)

	body, err := c.doGet(ctx, fmt.Sprintf("%s/direct?%s", c.geoBaseURL, values.Encode()))
	if err != nil {
		return nil, err
	}

	var entries []geoEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &Error{Kind: KindNetworkOrServer, Message: "unexpected geocoding response"}
	}

	locs := make([]Location, 0, len(entries))
	for _, e := range entries {
		locs = append(locs, Location{
			Name:    e.Name,
			Country: e.Country,
			State:   e.State,
			Lat:     e.Lat,
			Lon:     e.Lon,
		})
	}
	return locs, nil
}

// Suggest serves autocomplete: same geocoding endpoint, but every failure
// degrades to an empty list. Autocomplete must never interrupt typing.
func (c *Client) Suggest(ctx context.Context, prefix string, limit int) []Location {
	if strings.TrimSpace(prefix) == "" || !c.IsConfigured() {
		return nil
	}
	if limit <= 0 || limit > suggestLimit {
		limit = suggestLimit
	}

	locs, err := c.ResolveCity(ctx, prefix)
	if err != nil {
		c.logger.Debugf("suggest: geocoding %q failed: %v", prefix, err)
		return nil
	}
	if len(locs) > limit {
		locs = locs[:limit]
	}
	return locs
}

// FetchWeather resolves city to its first geocoding candidate, then fetches
// current conditions and the forecast series concurrently. Both legs settle
// before the result is decided; when both fail the more severe error wins.
func (c *Client) FetchWeather(ctx context.Context, city string, sys units.System, lang string) (*Snapshot, error) {
	candidates, err := c.ResolveCity(ctx, city)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, &Error{Kind: KindCityNotFound, Message: fmt.Sprintf("no location found for %q", city)}
	}
	loc := candidates[0]

	var (
		wg          sync.WaitGroup
		current     CurrentConditions
		forecast    []ForecastSample
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = c.fetchCurrent(ctx, loc, sys, lang)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = c.fetchForecast(ctx, loc, sys, lang)
	}()
	wg.Wait()

	if err := moreSevere(currentErr, forecastErr); err != nil {
		return nil, err
	}

	return &Snapshot{
		Current:   current,
		Forecast:  forecast,
		Location:  loc,
		FetchedAt: time.Now().UnixMilli(),
	}, nil
}

func (c *Client) fetchCurrent(ctx context.Context, loc Location, sys units.System, lang string) (CurrentConditions, error) {
	body, err := c.doGet(ctx, c.dataURL("weather", loc, sys, lang))
	if err != nil {
		return CurrentConditions{}, err
	}

	var payload struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
			Pressure int     `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Visibility int `json:"visibility"`
		Weather    []struct {
			Icon        string `json:"icon"`
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return CurrentConditions{}, &Error{Kind: KindNetworkOrServer, Message: "unexpected current-conditions response"}
	}

	cond := CurrentConditions{
		Location:    loc,
		ObservedAt:  payload.Dt,
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Pressure:    payload.Main.Pressure,
		Visibility:  payload.Visibility,
	}
	if len(payload.Weather) > 0 {
		cond.ConditionCode = payload.Weather[0].Icon
		cond.ConditionText = payload.Weather[0].Description
	}
	return cond, nil
}

func (c *Client) fetchForecast(ctx context.Context, loc Location, sys units.System, lang string) ([]ForecastSample, error) {
	body, err := c.doGet(ctx, c.dataURL("forecast", loc, sys, lang))
	if err != nil {
		return nil, err
	}

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				TempMin float64 `json:"temp_min"`
				TempMax float64 `json:"temp_max"`
			} `json:"main"`
			Weather []struct {
				Icon        string `json:"icon"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &Error{Kind: KindNetworkOrServer, Message: "unexpected forecast response"}
	}

	samples := make([]ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		s := ForecastSample{
			EpochSeconds: item.Dt,
			TempMin:      item.Main.TempMin,
			TempMax:      item.Main.TempMax,
		}
		if len(item.Weather) > 0 {
			s.ConditionCode = item.Weather[0].Icon
			s.ConditionText = item.Weather[0].Description
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func (c *Client) dataURL(endpoint string, loc Location, sys units.System, lang string) string {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", loc.Lat))
	values.Set("lon", fmt.Sprintf("%f", loc.Lon))
	values.Set("units", string(sys))
	if lang != "" {
		values.Set("lang", lang)
	}
	values.Set("appid", c.apiKey)
	return fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, values.Encode())
}

// doGet performs one HTTP GET through the circuit breaker and maps any
// failure onto the error taxonomy. No retries.
func (c *Client) doGet(ctx context.Context, rawURL string) ([]byte, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, &Error{Kind: KindNetworkOrServer, Message: err.Error()}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, &Error{Kind: KindNetworkOrServer, Message: "weather service is unreachable"}
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &Error{Kind: KindNetworkOrServer, Message: "failed to read provider response"}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, statusError(resp.StatusCode, body)
		}
		return body, nil
	})
	if err != nil {
		if _, ok := KindOf(err); !ok {
			// Circuit open counts as a provider outage.
			err = &Error{Kind: KindNetworkOrServer, Message: "weather service is temporarily unavailable"}
		}
		return nil, err
	}
	return result.([]byte), nil
}

// statusError builds the taxonomy error for a non-2xx response, preferring
// the provider's own message when the body carries one.
func statusError(status int, body []byte) *Error {
	kind := kindFromStatus(status)

	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return &Error{Kind: kind, Message: apiErr.Message}
	}

	switch kind {
	case KindCityNotFound:
		return &Error{Kind: kind, Message: "city not found"}
	case KindInvalidCredential:
		return &Error{Kind: kind, Message: "invalid API key"}
	case KindRateLimited:
		return &Error{Kind: kind, Message: "too many requests, slow down"}
	default:
		return &Error{Kind: kind, Message: fmt.Sprintf("weather service error (status %d)", status)}
	}
}
