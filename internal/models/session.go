package models

import "time"

// WorkSession brackets one workday. A nil EndTime means the day is still running.
type WorkSession struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	SessionDate string     `gorm:"type:text;not null;index" json:"session_date"` // YYYY-MM-DD in the civil zone
	StartTime   time.Time  `gorm:"not null" json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Notes       *string    `json:"notes"`
	TotalHours  *float64   `json:"total_hours"` // cached, recomputed on every start/end write
}

// TableName pins the table name used by the reporting queries
func (WorkSession) TableName() string {
	return "work_sessions"
}

// IsActive reports whether the session has not been ended
func (s WorkSession) IsActive() bool {
	return s.EndTime == nil
}
