package db

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/balkashynov/daybook/internal/models"
	"github.com/balkashynov/daybook/internal/timeutil"
)

// ManualEntryRequest holds the data needed to insert an entry with explicit times
type ManualEntryRequest struct {
	SessionID   uint
	ProjectName string
	Category    string
	Start       time.Time
	End         *time.Time
}

// UpdateEntryRequest holds every editable field of a project entry
type UpdateEntryRequest struct {
	ID          uint
	ProjectName string
	Category    string
	Start       time.Time
	End         *time.Time
}

// StartProjectEntry starts tracking a project inside a session
func (s *Store) StartProjectEntry(sessionID uint, projectName, category string) (*models.ProjectEntry, error) {
	entry := models.ProjectEntry{
		SessionID:   sessionID,
		ProjectName: strings.TrimSpace(projectName),
		Category:    category,
		StartTime:   s.CurrentTime(),
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return insertEntry(tx, &entry)
	}); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"entry_id":   entry.ID,
		"session_id": sessionID,
		"category":   category,
	}).Debug("started project entry")

	return &entry, nil
}

// insertEntry checks the parent session and the one-running-entry rule before inserting
func insertEntry(tx *gorm.DB, entry *models.ProjectEntry) error {
	var sessions int64
	if err := tx.Model(&models.WorkSession{}).Where("id = ?", entry.SessionID).Count(&sessions).Error; err != nil {
		return err
	}
	if sessions == 0 {
		return ErrSessionNotFound
	}

	if entry.EndTime == nil {
		var open int64
		if err := tx.Model(&models.ProjectEntry{}).
			Where("session_id = ? AND end_time IS NULL", entry.SessionID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrEntryActive
		}
	}

	return tx.Create(entry).Error
}

// EndProjectEntry stops an entry now, or at its start when it begins in the
// future. Unknown ids are ignored.
func (s *Store) EndProjectEntry(id uint) error {
	entry, err := s.GetProjectEntry(id)
	if err != nil || entry == nil {
		return err
	}

	end := s.CurrentTime()
	if end.Before(entry.StartTime) {
		end = entry.StartTime
	}
	if err := s.db.Model(&models.ProjectEntry{}).Where("id = ?", id).Update("end_time", end).Error; err != nil {
		return err
	}

	s.log.WithField("entry_id", id).Debug("ended project entry")
	return nil
}

// GetProjectEntry retrieves an entry by ID, returning nil when it does not exist
func (s *Store) GetProjectEntry(id uint) (*models.ProjectEntry, error) {
	var entry models.ProjectEntry
	err := s.db.Preload("Session").First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetActiveProjectEntry returns the latest-started running entry, scoped to
// a session when sessionID is given
func (s *Store) GetActiveProjectEntry(sessionID *uint) (*models.ProjectEntry, error) {
	var entry models.ProjectEntry

	query := s.db.Where("end_time IS NULL")
	if sessionID != nil {
		query = query.Where("session_id = ?", *sessionID)
	}

	err := query.Order("start_time DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// ListEntriesBetween returns entries whose session is dated within [start, end],
// ordered by entry start. Each entry carries its session for the date.
func (s *Store) ListEntriesBetween(start, end time.Time) ([]models.ProjectEntry, error) {
	var entries []models.ProjectEntry

	err := s.db.Select("project_entries.*").
		Joins("JOIN work_sessions ON work_sessions.id = project_entries.session_id").
		Where("work_sessions.session_date BETWEEN ? AND ?", timeutil.DateString(start), timeutil.DateString(end)).
		Preload("Session").
		Order("project_entries.start_time ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// ListAllProjectEntries returns every entry, newest first
func (s *Store) ListAllProjectEntries() ([]models.ProjectEntry, error) {
	var entries []models.ProjectEntry
	if err := s.db.Preload("Session").Order("start_time DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateProjectEntry overwrites all fields of an entry
func (s *Store) UpdateProjectEntry(req UpdateEntryRequest) error {
	if err := timeutil.ValidateRange(req.Start, req.End); err != nil {
		return err
	}

	if err := s.db.Model(&models.ProjectEntry{}).Where("id = ?", req.ID).Updates(map[string]any{
		"project_name": req.ProjectName,
		"category":     req.Category,
		"start_time":   req.Start,
		"end_time":     req.End,
	}).Error; err != nil {
		return err
	}

	s.log.WithField("entry_id", req.ID).Debug("updated project entry")
	return nil
}

// DeleteProjectEntry removes an entry
func (s *Store) DeleteProjectEntry(id uint) error {
	if err := s.db.Delete(&models.ProjectEntry{}, id).Error; err != nil {
		return err
	}

	s.log.WithField("entry_id", id).Debug("deleted project entry")
	return nil
}

// AddManualProjectEntry inserts an entry with caller-supplied start and end
func (s *Store) AddManualProjectEntry(req ManualEntryRequest) (*models.ProjectEntry, error) {
	if err := timeutil.ValidateRange(req.Start, req.End); err != nil {
		return nil, err
	}

	entry := models.ProjectEntry{
		SessionID:   req.SessionID,
		ProjectName: req.ProjectName,
		Category:    req.Category,
		StartTime:   req.Start,
		EndTime:     req.End,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return insertEntry(tx, &entry)
	}); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"entry_id":   entry.ID,
		"session_id": req.SessionID,
		"category":   req.Category,
	}).Debug("added manual project entry")

	return &entry, nil
}

// DatedEntryRequest describes a manual entry by calendar date and wall-clock times
type DatedEntryRequest struct {
	Date        time.Time
	ProjectName string
	Category    string
	Start       timeutil.TimeOfDay
	End         *timeutil.TimeOfDay
}

// AddEntryOnDate files a manual entry under the date's session, creating the
// session when needed. When that session is still open on a day other than
// today it is closed around its entries: a midnight placeholder is fitted to
// their span, a real clock-in only ever widens to cover them.
func (s *Store) AddEntryOnDate(req DatedEntryRequest) (*models.ProjectEntry, error) {
	session, err := s.EnsureSessionForDate(req.Date)
	if err != nil {
		return nil, err
	}

	start := timeutil.Combine(req.Date, req.Start, s.loc)
	var end *time.Time
	if req.End != nil {
		e := timeutil.Combine(req.Date, *req.End, s.loc)
		end = &e
	}

	entry, err := s.AddManualProjectEntry(ManualEntryRequest{
		SessionID:   session.ID,
		ProjectName: strings.TrimSpace(req.ProjectName),
		Category:    req.Category,
		Start:       start,
		End:         end,
	})
	if err != nil {
		return nil, err
	}

	today := timeutil.DateString(s.CurrentTime())
	if session.IsActive() && session.SessionDate != today {
		if err := s.closeAroundEntries(session, s.isPlaceholder(session)); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// isPlaceholder reports whether a session looks like one EnsureSessionForDate
// created: starting at midnight of its date with no notes.
func (s *Store) isPlaceholder(session *models.WorkSession) bool {
	if session.Notes != nil {
		return false
	}
	date, err := timeutil.ParseDate(session.SessionDate, s.loc)
	if err != nil {
		return false
	}
	return session.StartTime.Equal(date)
}

// closeAroundEntries closes a session at its last entry end. With fit the
// start moves to the first entry start; otherwise it only moves earlier.
// Sessions with a running entry are left open.
func (s *Store) closeAroundEntries(session *models.WorkSession, fit bool) error {
	var entries []models.ProjectEntry
	if err := s.db.Where("session_id = ?", session.ID).Find(&entries).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	start := entries[0].StartTime
	var end time.Time
	for _, e := range entries {
		if e.EndTime == nil {
			return nil
		}
		if e.StartTime.Before(start) {
			start = e.StartTime
		}
		if e.EndTime.After(end) {
			end = *e.EndTime
		}
	}
	if !fit && session.StartTime.Before(start) {
		start = session.StartTime
	}
	if end.Before(start) {
		end = start
	}

	date, err := timeutil.ParseDate(session.SessionDate, s.loc)
	if err != nil {
		return err
	}

	return s.UpdateSession(UpdateSessionRequest{
		ID:    session.ID,
		Date:  date,
		Start: start,
		End:   &end,
		Notes: session.Notes,
	})
}
