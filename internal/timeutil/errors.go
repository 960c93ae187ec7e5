package timeutil

// TimeError is returned for malformed or inconsistent time input
type TimeError string

// Error implements the error interface
func (e TimeError) Error() string {
	return string(e)
}

const (
	ErrInvalidTimeText TimeError = "invalid time: use HH:MM (24h)"
	ErrInvalidDate     TimeError = "invalid date: use YYYY-MM-DD"
	ErrEndBeforeStart  TimeError = "end time is before start time"
)
