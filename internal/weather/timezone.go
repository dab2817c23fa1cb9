package weather

import "time"

// Shift converts a UTC epoch timestamp into local wall-clock time using a
// fixed offset in seconds. The offset is added to the epoch and the result is
// read as a UTC instant, so no timezone database is consulted.
func Shift(ts, offset int64) LocalTime {
	t := time.Unix(ts+offset, 0).UTC()
	return LocalTime{
		Weekday: t.Weekday().String(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
	}
}
