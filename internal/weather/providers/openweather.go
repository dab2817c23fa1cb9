package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	DefaultCurrentURL  = "https://api.openweathermap.org/data/2.5/weather"
	DefaultForecastURL = "https://api.openweathermap.org/data/2.5/forecast"
	DefaultUnits       = "imperial"
)

var validate = validator.New()

// OpenWeatherConfig configures the OpenWeatherMap provider.
type OpenWeatherConfig struct {
	APIKey      string
	CurrentURL  string
	ForecastURL string
	Units       string
	MaxRetries  int
}

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	units       string
	currentURL  string
	forecastURL string
	httpCfg     HTTPClientConfig

	currentCircuit  *gobreaker.CircuitBreaker
	forecastCircuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, cfg OpenWeatherConfig) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      cfg.APIKey,
		units:       cfg.Units,
		currentURL:  cfg.CurrentURL,
		forecastURL: cfg.ForecastURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      cfg.MaxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		currentCircuit:  newCircuitBreaker("openweather-current"),
		forecastCircuit: newCircuitBreaker("openweather-forecast"),
	}
	if p.units == "" {
		p.units = DefaultUnits
	}
	if p.currentURL == "" {
		p.currentURL = DefaultCurrentURL
	}
	if p.forecastURL == "" {
		p.forecastURL = DefaultForecastURL
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owmCondition struct {
	Main        *string `json:"main" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

type owmCurrentPayload struct {
	Dt       *int64 `json:"dt" validate:"required"`
	Timezone *int64 `json:"timezone" validate:"required"`
	Name     string `json:"name"`
	Main     struct {
		Temp    *float64 `json:"temp" validate:"required"`
		TempMin *float64 `json:"temp_min" validate:"required"`
		TempMax *float64 `json:"temp_max" validate:"required"`
	} `json:"main"`
	Sys struct {
		Country string `json:"country"`
		Sunrise *int64 `json:"sunrise" validate:"required"`
		Sunset  *int64 `json:"sunset" validate:"required"`
	} `json:"sys"`
	Weather []owmCondition `json:"weather" validate:"required,min=1,dive"`
}

type owmForecastItem struct {
	Dt   *int64 `json:"dt" validate:"required"`
	Main struct {
		Temp *float64 `json:"temp" validate:"required"`
	} `json:"main"`
	Weather []owmCondition `json:"weather" validate:"required,min=1,dive"`
}

type owmForecastPayload struct {
	List []owmForecastItem `json:"list" validate:"required,min=1,dive"`
}

// FetchCurrent calls the current-weather endpoint.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, q weather.Query) (weather.CurrentConditions, error) {
	var payload owmCurrentPayload
	if err := p.fetch(ctx, p.currentURL, p.currentCircuit, q, &payload); err != nil {
		return weather.CurrentConditions{}, fmt.Errorf("openweather current: %w", err)
	}

	return weather.CurrentConditions{
		Timestamp:    *payload.Dt,
		Main:         *payload.Weather[0].Main,
		Description:  *payload.Weather[0].Description,
		Temperature:  *payload.Main.Temp,
		TempMin:      *payload.Main.TempMin,
		TempMax:      *payload.Main.TempMax,
		LocationName: payload.Name,
		CountryCode:  payload.Sys.Country,
		UTCOffset:    *payload.Timezone,
		Sunrise:      *payload.Sys.Sunrise,
		Sunset:       *payload.Sys.Sunset,
	}, nil
}

// FetchForecast calls the 5-day/3-hour forecast endpoint. Intervals keep the
// upstream order.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, q weather.Query) ([]weather.ForecastInterval, error) {
	var payload owmForecastPayload
	if err := p.fetch(ctx, p.forecastURL, p.forecastCircuit, q, &payload); err != nil {
		return nil, fmt.Errorf("openweather forecast: %w", err)
	}

	intervals := make([]weather.ForecastInterval, 0, len(payload.List))
	for _, item := range payload.List {
		intervals = append(intervals, weather.ForecastInterval{
			Timestamp:   *item.Dt,
			Main:        *item.Weather[0].Main,
			Description: *item.Weather[0].Description,
			Temperature: *item.Main.Temp,
		})
	}
	return intervals, nil
}

// fetch performs the request and decodes a validated payload into out.
// Transport and status failures wrap weather.ErrUpstream; decode and
// validation failures wrap weather.ErrMalformedUpstream.
func (p *OpenWeatherProvider) fetch(ctx context.Context, endpoint string, cb *gobreaker.CircuitBreaker, q weather.Query, out any) error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: openweather api key is not configured", weather.ErrUpstream)
	}

	reqURL, err := p.buildURL(endpoint, q)
	if err != nil {
		return fmt.Errorf("%w: %w", weather.ErrUpstream, err)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, cb, buildRequest)
	if err != nil {
		return fmt.Errorf("%w: %w", weather.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %w", weather.ErrMalformedUpstream, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %w", weather.ErrMalformedUpstream, err)
	}
	return nil
}

func (p *OpenWeatherProvider) buildURL(endpoint string, q weather.Query) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}

	values := u.Query()
	values.Set("units", p.units)
	values.Set("APPID", p.apiKey)
	if q.HasCoords {
		values.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(q.Lon, 'f', -1, 64))
	} else {
		values.Set("q", q.Name)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}
