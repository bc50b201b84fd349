package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/units"
)

const geoBody = `[{"name":"Paris","country":"FR","state":"Ile-de-France","lat":48.85,"lon":2.35}]`

const currentBody = `{
	"dt": 1700000000,
	"main": {"temp": 12.3, "humidity": 64, "pressure": 1012},
	"wind": {"speed": 3.4},
	"visibility": 9700,
	"weather": [{"icon": "04d", "description": "broken clouds"}]
}`

const forecastBody = `{
	"list": [
		{"dt": 1700000000, "main": {"temp_min": 8, "temp_max": 14}, "weather": [{"icon": "10d", "description": "light rain"}]},
		{"dt": 1700010800, "main": {"temp_min": 9, "temp_max": 15}, "weather": [{"icon": "01d", "description": "clear sky"}]}
	]
}`

// fakeProvider serves geocoding, current and forecast endpoints with
// configurable per-endpoint status codes.
func fakeProvider(t *testing.T, currentStatus, forecastStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/direct", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geoBody))
	})
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		if currentStatus != http.StatusOK {
			w.WriteHeader(currentStatus)
			json.NewEncoder(w).Encode(map[string]string{"message": providerMessage(currentStatus)})
			return
		}
		w.Write([]byte(currentBody))
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		if forecastStatus != http.StatusOK {
			w.WriteHeader(forecastStatus)
			json.NewEncoder(w).Encode(map[string]string{"message": providerMessage(forecastStatus)})
			return
		}
		w.Write([]byte(forecastBody))
	})
	return httptest.NewServer(mux)
}

func providerMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."
	case http.StatusNotFound:
		return "city not found"
	case http.StatusTooManyRequests:
		return "your account is temporarily blocked"
	default:
		return "internal error"
	}
}

func testClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		HTTPClient: srv.Client(),
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		GeoBaseURL: srv.URL,
	})
}

func TestResolveCity(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, http.StatusOK)
	defer srv.Close()

	locs, err := testClient(srv).ResolveCity(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "Paris", locs[0].Name)
	assert.Equal(t, "FR", locs[0].Country)
	assert.Equal(t, "Paris, FR", locs[0].Label())
}

func TestResolveCityEmptyResultIsNotAnError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/direct", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	locs, err := testClient(srv).ResolveCity(context.Background(), "Nowheresville")
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestFetchWeatherSuccess(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, http.StatusOK)
	defer srv.Close()

	snap, err := testClient(srv).FetchWeather(context.Background(), "Paris", units.Metric, "en")
	require.NoError(t, err)

	assert.Equal(t, "Paris, FR", snap.Location.Label())
	assert.Equal(t, 12.3, snap.Current.Temperature)
	assert.Equal(t, 64, snap.Current.Humidity)
	assert.Equal(t, 9700, snap.Current.Visibility)
	assert.Equal(t, "04d", snap.Current.ConditionCode)
	require.Len(t, snap.Forecast, 2)
	assert.Equal(t, int64(1700000000), snap.Forecast[0].EpochSeconds)
	assert.Equal(t, 14.0, snap.Forecast[0].TempMax)
	assert.Greater(t, snap.FetchedAt, int64(0))
}

func TestFetchWeatherNoCandidates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/direct", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := testClient(srv).FetchWeather(context.Background(), "Nowheresville", units.Metric, "en")
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindCityNotFound, kind)
}

func TestFetchWeatherSurfacesMoreSevereError(t *testing.T) {
	// Current fails with 401, forecast with 500: the credential error wins.
	srv := fakeProvider(t, http.StatusUnauthorized, http.StatusInternalServerError)
	defer srv.Close()

	_, err := testClient(srv).FetchWeather(context.Background(), "Paris", units.Metric, "en")
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidCredential, kind)

	// The provider's own message is the user-visible text.
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestFetchWeatherFailsWhenOneLegFails(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, http.StatusNotFound)
	defer srv.Close()

	_, err := testClient(srv).FetchWeather(context.Background(), "Paris", units.Metric, "en")
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindCityNotFound, kind)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{400, KindCityNotFound},
		{404, KindCityNotFound},
		{401, KindInvalidCredential},
		{429, KindRateLimited},
		{500, KindNetworkOrServer},
		{503, KindNetworkOrServer},
		{418, KindNetworkOrServer},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, kindFromStatus(tc.status), "status %d", tc.status)
	}
}

func TestSuggestSwallowsFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/direct", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	assert.Empty(t, testClient(srv).Suggest(context.Background(), "Par", 5))
}

func TestSuggestCapsResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/direct", func(w http.ResponseWriter, r *http.Request) {
		entries := make([]map[string]interface{}, 5)
		for i := range entries {
			entries[i] = map[string]interface{}{"name": "City", "country": "XX"}
		}
		json.NewEncoder(w).Encode(entries)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	assert.Len(t, testClient(srv).Suggest(context.Background(), "Cit", 3), 3)
}

func TestSuggestSkipsBlankAndUnconfigured(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, http.StatusOK)
	defer srv.Close()

	c := testClient(srv)
	assert.Empty(t, c.Suggest(context.Background(), "   ", 5))

	unconfigured := NewClient(Config{HTTPClient: srv.Client(), APIKey: "", GeoBaseURL: srv.URL})
	assert.Empty(t, unconfigured.Suggest(context.Background(), "Par", 5))
}

func TestIsConfigured(t *testing.T) {
	for _, key := range []string{"", "YOUR_API_KEY", "your_api_key_here", "changeme"} {
		c := NewClient(Config{APIKey: key})
		assert.False(t, c.IsConfigured(), "key %q", key)
	}
	assert.True(t, NewClient(Config{APIKey: "abc123"}).IsConfigured())
}
