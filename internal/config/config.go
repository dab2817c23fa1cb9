package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

var validate = validator.New()

type AppConfig struct {
	OpenWeatherAPIKey string `validate:"required"`
	CurrentURL        string `validate:"required,url"`
	ForecastURL       string `validate:"required,url"`
	Units             string `validate:"oneof=imperial metric standard"`

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`
	// UpstreamMaxRetries is the number of retries after a server-side failure.
	UpstreamMaxRetries int `validate:"gte=0,lte=5"`

	// GeocoderAPIKey enables place-name geocoding when set.
	GeocoderAPIKey string

	// Upstream health probe.
	ProbeLocations  []string
	ProbeInterval   time.Duration `validate:"gt=0"`
	StoreMaxHistory int           // max number of probe results per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of probe results (0 = unlimited)

	Port      string `validate:"required,numeric"`
	StaticDir string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.CurrentURL = getenvDefault("OPENWEATHER_CURRENT_URL", providers.DefaultCurrentURL)
	cfg.ForecastURL = getenvDefault("OPENWEATHER_FORECAST_URL", providers.DefaultForecastURL)
	cfg.Units = getenvDefault("UNITS", providers.DefaultUnits)
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout
	cfg.UpstreamMaxRetries = getenvInt("UPSTREAM_MAX_RETRIES", 0)

	// Locations may themselves contain commas ("lat,lon"), so use ';'.
	cfg.ProbeLocations = common.SplitNonEmpty(os.Getenv("PROBE_LOCATIONS"), ";")

	interval, err := time.ParseDuration(getenvDefault("PROBE_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROBE_INTERVAL: %w", err)
	}
	cfg.ProbeInterval = interval

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	maxAge, err := time.ParseDuration(getenvDefault("STORE_MAX_AGE", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.StaticDir = getenvDefault("STATIC_DIR", "./public")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// OpenWeather returns the provider settings.
func (c *AppConfig) OpenWeather() providers.OpenWeatherConfig {
	return providers.OpenWeatherConfig{
		APIKey:      c.OpenWeatherAPIKey,
		CurrentURL:  c.CurrentURL,
		ForecastURL: c.ForecastURL,
		Units:       c.Units,
		MaxRetries:  c.UpstreamMaxRetries,
	}
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
