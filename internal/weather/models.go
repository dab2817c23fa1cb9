package weather

import "strconv"

// Query is the upstream location selector: either coordinates or a place name.
type Query struct {
	Name string

	Lat       float64
	Lon       float64
	HasCoords bool
}

// Key returns a canonical string key for logging and indexing.
func (q Query) Key() string {
	if q.HasCoords {
		return formatCoord(q.Lat) + "," + formatCoord(q.Lon)
	}
	return q.Name
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ForecastInterval is one 3-hour slot of the upstream forecast.
type ForecastInterval struct {
	Timestamp   int64 // UTC epoch seconds
	Main        string
	Description string
	Temperature float64
}

// CurrentConditions is the upstream current-weather snapshot.
type CurrentConditions struct {
	Timestamp    int64
	Main         string
	Description  string
	Temperature  float64
	TempMin      float64
	TempMax      float64
	LocationName string
	CountryCode  string

	// UTCOffset is the location's offset from UTC in seconds. It applies to
	// every timestamp of the response.
	UTCOffset int64
	Sunrise   int64
	Sunset    int64
}

// LocalTime is wall-clock time at the queried location.
type LocalTime struct {
	Weekday string
	Hour    int
	Minute  int
}

// MinuteOfDay returns minutes elapsed since local midnight.
func (t LocalTime) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// HourlyTime is the time block of an hourly forecast entry.
type HourlyTime struct {
	UTCTime int64  `json:"UTCtime"`
	Day     string `json:"day"`
	Hour    int    `json:"hour"`
}

// HourlyForecastEntry mirrors one ForecastInterval in local time.
type HourlyForecastEntry struct {
	Main    string     `json:"main"`
	Weather string     `json:"weather"`
	Temp    float64    `json:"temp"`
	Time    HourlyTime `json:"time"`
	Icon    string     `json:"icon,omitempty"`
	IconURL string     `json:"iconUrl,omitempty"`
}

// DailyForecastEntry summarizes one local day of the forecast.
type DailyForecastEntry struct {
	Day     string  `json:"day"`
	Weather string  `json:"weather"` // midday snapshot
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Icon    string  `json:"icon,omitempty"`
	IconURL string  `json:"iconUrl,omitempty"`
}

// CurrentTime is the time block of the current snapshot.
type CurrentTime struct {
	UTCTime int64  `json:"UTCtime"`
	Day     string `json:"day"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Sunrise int    `json:"sunrise"` // local hour
	Sunset  int    `json:"sunset"`  // local hour
}

// Locale names the resolved location.
type Locale struct {
	Location string `json:"location"`
	Country  string `json:"country"`
}

// WeatherResponse is the UI-ready payload returned to clients.
type WeatherResponse struct {
	Main    string      `json:"main"`
	Weather string      `json:"weather"`
	Current float64     `json:"current"`
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Time    CurrentTime `json:"time"`
	Locale  Locale      `json:"locale"`

	HourForecasts  []HourlyForecastEntry `json:"hourForecasts"`
	DailyForecasts []DailyForecastEntry  `json:"dailyForecasts"`

	Icon    string `json:"icon,omitempty"`
	IconURL string `json:"iconUrl,omitempty"`
}
