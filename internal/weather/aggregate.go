package weather

import "log"

// AggregateForecast folds the ordered forecast intervals into one hourly entry
// per interval and one daily entry per day-close.
//
// A day closes on the first interval whose local hour is 21, 22 or 23. The
// daily min/max cover every interval since the previous close. The daily
// condition is the latest interval seen at local hour 11-13, falling back to
// the first interval of the sequence. Intervals after the last close form a
// partial day and are not summarized.
func AggregateForecast(intervals []ForecastInterval, cur CurrentConditions) ([]HourlyForecastEntry, []DailyForecastEntry) {
	hourly := make([]HourlyForecastEntry, 0, len(intervals))
	daily := make([]DailyForecastEntry, 0, len(intervals)/8+1)

	if len(intervals) == 0 {
		return hourly, daily
	}

	var dayTemps []float64
	middayDesc := intervals[0].Description
	middayTS := intervals[0].Timestamp

	for _, in := range intervals {
		local := Shift(in.Timestamp, cur.UTCOffset)

		icon, iconURL := iconFields(in.Description, in.Timestamp, cur)
		hourly = append(hourly, HourlyForecastEntry{
			Main:    in.Main,
			Weather: in.Description,
			Temp:    in.Temperature,
			Time: HourlyTime{
				UTCTime: in.Timestamp,
				Day:     local.Weekday,
				Hour:    local.Hour,
			},
			Icon:    icon,
			IconURL: iconURL,
		})
		dayTemps = append(dayTemps, in.Temperature)

		switch local.Hour {
		case 11, 12, 13:
			middayDesc = in.Description
			middayTS = in.Timestamp
		case 21, 22, 23:
			log.Printf("DEBUG: end of %s", local.Weekday)

			lo, hi := minMax(dayTemps)
			dayTemps = dayTemps[:0]

			icon, iconURL := iconFields(middayDesc, middayTS, cur)
			daily = append(daily, DailyForecastEntry{
				Day:     local.Weekday,
				Weather: middayDesc,
				Min:     lo,
				Max:     hi,
				Icon:    icon,
				IconURL: iconURL,
			})
		}
	}

	return hourly, daily
}

// BuildResponse assembles the client payload from the two upstream results.
func BuildResponse(cur CurrentConditions, intervals []ForecastInterval) WeatherResponse {
	hourly, daily := AggregateForecast(intervals, cur)

	now := Shift(cur.Timestamp, cur.UTCOffset)
	icon, iconURL := iconFields(cur.Description, cur.Timestamp, cur)

	return WeatherResponse{
		Main:    cur.Main,
		Weather: cur.Description,
		Current: cur.Temperature,
		Min:     cur.TempMin,
		Max:     cur.TempMax,
		Time: CurrentTime{
			UTCTime: cur.Timestamp,
			Day:     now.Weekday,
			Hour:    now.Hour,
			Minute:  now.Minute,
			Sunrise: Shift(cur.Sunrise, cur.UTCOffset).Hour,
			Sunset:  Shift(cur.Sunset, cur.UTCOffset).Hour,
		},
		Locale: Locale{
			Location: cur.LocationName,
			Country:  cur.CountryCode,
		},
		HourForecasts:  hourly,
		DailyForecasts: daily,
		Icon:           icon,
		IconURL:        iconURL,
	}
}

// minMax expects a non-empty slice.
func minMax(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
