package weather

import "github.com/i474232898/weather-dashboard/internal/common"

// iconConditions is the priority-ordered keyword list for icon selection.
var iconConditions = []string{
	"thunderstorm",
	"drizzle",
	"rain",
	"snow",
	"haze",
	"clear",
	"clouds",
}

const iconPathPrefix = "/img/"

// SelectIcon picks the icon id "<keyword>_<day|night>" for a condition text at
// time ts. It reports false when no keyword is found in text.
//
// Day means strictly after sunrise and strictly before sunset, compared as
// local minute-of-day.
func SelectIcon(text string, ts, offset, sunrise, sunset int64) (string, bool) {
	cond, ok := common.FirstMatch(text, iconConditions...)
	if !ok {
		return "", false
	}

	now := Shift(ts, offset).MinuteOfDay()
	rise := Shift(sunrise, offset).MinuteOfDay()
	set := Shift(sunset, offset).MinuteOfDay()

	if rise < now && now < set {
		return cond + "_day", true
	}
	return cond + "_night", true
}

// IconURL returns the static asset path for an icon id.
func IconURL(id string) string {
	if id == "" {
		return ""
	}
	return iconPathPrefix + id + ".png"
}

// iconFields resolves both icon fields, leaving them empty on a miss.
func iconFields(text string, ts int64, cur CurrentConditions) (string, string) {
	id, ok := SelectIcon(text, ts, cur.UTCOffset, cur.Sunrise, cur.Sunset)
	if !ok {
		return "", ""
	}
	return id, IconURL(id)
}
