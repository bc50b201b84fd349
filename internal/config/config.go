package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/store"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/units"
)

var validate = validator.New()

// AppConfig holds everything the dashboard reads from the environment.
type AppConfig struct {
	// APIKey may be empty or a placeholder; the client refuses traffic then.
	APIKey     string
	BaseURL    string
	GeoBaseURL string

	HTTPTimeout time.Duration `validate:"gt=0"`

	HistoryMax   int          `validate:"gte=1"`
	DefaultUnit  units.System `validate:"oneof=metric imperial"`
	DefaultTheme store.Theme  `validate:"oneof=light dark"`

	// Language is the provider lang code used for condition descriptions.
	Language string

	// SuggestDebounce is the autocomplete quiescence interval.
	SuggestDebounce time.Duration `validate:"gte=0"`

	// RefreshInterval re-runs the last search periodically; 0 disables it.
	RefreshInterval time.Duration `validate:"gte=0"`

	DBPath string
	Port   string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		APIKey:       os.Getenv("OPENWEATHER_API_KEY"),
		BaseURL:      getenvDefault("WEATHER_BASE_URL", ""),
		GeoBaseURL:   getenvDefault("WEATHER_GEO_BASE_URL", ""),
		HistoryMax:   getenvInt("HISTORY_MAX", store.DefaultHistoryMax),
		DefaultUnit:  units.System(getenvDefault("DEFAULT_UNIT", string(units.Metric))),
		DefaultTheme: store.Theme(getenvDefault("DEFAULT_THEME", string(store.ThemeLight))),
		Language:     getenvDefault("WEATHER_LANG", "en"),
		DBPath:       getenvDefault("DB_PATH", "weather-dashboard.db"),
		Port:         getenvDefault("PORT", "8080"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if cfg.SuggestDebounce, err = getenvDuration("SUGGEST_DEBOUNCE", 500*time.Millisecond); err != nil {
		return nil, fmt.Errorf("invalid SUGGEST_DEBOUNCE: %w", err)
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 0); err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}
