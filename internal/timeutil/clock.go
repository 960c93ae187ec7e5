package timeutil

import "time"

// DefaultZone is the civil timezone every timestamp is localized to
// unless configuration says otherwise.
const DefaultZone = "America/Chicago"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/balkashynov/daybook/internal/timeutil Clock
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock and localizes it to Location
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock creates a clock pinned to loc
func NewSystemClock(loc *time.Location) *SystemClock {
	return &SystemClock{Location: loc}
}

// Now returns the current time in the clock's zone
func (c *SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// LoadZone resolves a zone name, falling back to DefaultZone when name is empty
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultZone
	}
	return time.LoadLocation(name)
}

// CurrentTime returns "now" from clock localized to loc.
func CurrentTime(clock Clock, loc *time.Location) time.Time {
	now := clock.Now()
	if loc != nil {
		now = now.In(loc)
	}
	return now
}
