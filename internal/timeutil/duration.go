package timeutil

import (
	"math"
	"time"
)

// DurationHours returns the hours between start and end rounded to two
// decimals. A nil end means the interval is still running and the clock's
// current time is used instead.
func DurationHours(start time.Time, end *time.Time, clock Clock) (float64, error) {
	var stop time.Time
	if end != nil {
		stop = *end
		if stop.Before(start) {
			return 0, ErrEndBeforeStart
		}
	} else {
		stop = clock.Now()
		// placeholder sessions can start in the future
		if stop.Before(start) {
			return 0, nil
		}
	}

	return roundHours(stop.Sub(start)), nil
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Seconds()/3600*100) / 100
}

// ValidateRange rejects a closed interval that ends before it starts.
func ValidateRange(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}
