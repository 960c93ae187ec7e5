package models

import "time"

// ProjectEntry is a labeled slice of work inside a WorkSession
type ProjectEntry struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	SessionID   uint       `gorm:"not null;index" json:"session_id"`
	ProjectName string     `gorm:"not null" json:"project_name"`
	Category    string     `gorm:"not null;index" json:"category"` // category name, not a foreign key
	StartTime   time.Time  `gorm:"not null" json:"start_time"`
	EndTime     *time.Time `json:"end_time"`

	// Relationships
	Session *WorkSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;" json:"session,omitempty"`
}

func (ProjectEntry) TableName() string {
	return "project_entries"
}

// IsActive reports whether the entry is still being tracked
func (e ProjectEntry) IsActive() bool {
	return e.EndTime == nil
}

// SessionDate returns the owning session's date when the session was preloaded
func (e ProjectEntry) SessionDate() string {
	if e.Session == nil {
		return ""
	}
	return e.Session.SessionDate
}
