package weather

import (
	"testing"
	"time"
)

func TestSelectIcon(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sunrise := day.Add(5*time.Hour + 30*time.Minute).Unix()
	sunset := day.Add(20*time.Hour + 15*time.Minute).Unix()
	at := func(h, m int) int64 {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute).Unix()
	}

	tests := []struct {
		name   string
		text   string
		ts     int64
		want   string
		wantOK bool
	}{
		{name: "clear wins over clouds", text: "clear with some clouds", ts: at(12, 0), want: "clear_day", wantOK: true},
		{name: "thunderstorm beats rain", text: "thunderstorm with heavy rain", ts: at(12, 0), want: "thunderstorm_day", wantOK: true},
		{name: "drizzle beats rain", text: "light intensity drizzle rain", ts: at(12, 0), want: "drizzle_day", wantOK: true},
		{name: "clouds at night", text: "overcast clouds", ts: at(23, 0), want: "clouds_night", wantOK: true},
		{name: "exact sunrise is night", text: "clear sky", ts: sunrise, want: "clear_night", wantOK: true},
		{name: "minute after sunrise is day", text: "clear sky", ts: sunrise + 60, want: "clear_day", wantOK: true},
		{name: "exact sunset is night", text: "snow", ts: sunset, want: "snow_night", wantOK: true},
		{name: "minute before sunset is day", text: "haze", ts: sunset - 60, want: "haze_day", wantOK: true},
		{name: "seconds inside sunrise minute is night", text: "rain", ts: sunrise + 59, want: "rain_night", wantOK: true},
		{name: "no keyword", text: "mist", ts: at(12, 0), wantOK: false},
		{name: "case sensitive", text: "Clear", ts: at(12, 0), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectIcon(tt.text, tt.ts, 0, sunrise, sunset)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("SelectIcon(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSelectIconUsesLocalTime(t *testing.T) {
	// Sunrise 06:00 and sunset 18:00 local in UTC+10; 03:00Z is 13:00 local.
	offset := int64(10 * 3600)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sunrise := base.Add(-4 * time.Hour).Unix()
	sunset := base.Add(8 * time.Hour).Unix()

	got, ok := SelectIcon("few clouds", base.Add(3*time.Hour).Unix(), offset, sunrise, sunset)
	if !ok || got != "clouds_day" {
		t.Errorf("got (%q, %v), want clouds_day", got, ok)
	}

	got, _ = SelectIcon("few clouds", base.Add(9*time.Hour).Unix(), offset, sunrise, sunset)
	if got != "clouds_night" {
		t.Errorf("got %q, want clouds_night", got)
	}
}

func TestIconURL(t *testing.T) {
	if got := IconURL("rain_day"); got != "/img/rain_day.png" {
		t.Errorf("IconURL = %q", got)
	}
	if got := IconURL(""); got != "" {
		t.Errorf("IconURL(\"\") = %q, want empty", got)
	}
}
