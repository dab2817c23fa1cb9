package weather

import (
	"strconv"
	"strings"
)

// ParseLocation interprets raw as "<lat>,<lon>" when both halves around the
// first comma parse as floats, and as a place name otherwise.
func ParseLocation(raw string) Query {
	latStr, lonStr, found := strings.Cut(raw, ",")
	if !found {
		return Query{Name: raw}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Query{Name: raw}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Query{Name: raw}
	}

	return Query{Lat: lat, Lon: lon, HasCoords: true}
}
