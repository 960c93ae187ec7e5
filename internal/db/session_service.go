package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/balkashynov/daybook/internal/models"
	"github.com/balkashynov/daybook/internal/timeutil"
)

// UpdateSessionRequest holds every editable field of a work session
type UpdateSessionRequest struct {
	ID    uint
	Date  time.Time // calendar date, only year/month/day are used
	Start time.Time
	End   *time.Time
	Notes *string
}

// StartSession starts a new workday at the current time
func (s *Store) StartSession() (*models.WorkSession, error) {
	now := s.CurrentTime()
	session := models.WorkSession{
		SessionDate: timeutil.DateString(now),
		StartTime:   now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Check if there's already an active session
		var open int64
		if err := tx.Model(&models.WorkSession{}).Where("end_time IS NULL").Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrSessionActive
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"date":       session.SessionDate,
	}).Debug("started work session")

	return &session, nil
}

// EndSession stops a session now and caches its total hours. A session
// starting in the future ends at its own start with zero hours.
// Unknown ids are ignored.
func (s *Store) EndSession(id uint) error {
	session, err := s.GetSession(id)
	if err != nil || session == nil {
		return err
	}

	end := s.CurrentTime()
	if end.Before(session.StartTime) {
		end = session.StartTime
	}
	hours, err := timeutil.DurationHours(session.StartTime, &end, s.clock)
	if err != nil {
		return fmt.Errorf("session #%d: %w", id, err)
	}

	if err := s.db.Model(&models.WorkSession{}).Where("id = ?", id).Updates(map[string]any{
		"end_time":    end,
		"total_hours": hours,
	}).Error; err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"session_id":  id,
		"total_hours": hours,
	}).Debug("ended work session")

	return nil
}

// GetSession retrieves a session by ID, returning nil when it does not exist
func (s *Store) GetSession(id uint) (*models.WorkSession, error) {
	var session models.WorkSession
	err := s.db.First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetActiveSession returns the latest-started running session, if any
func (s *Store) GetActiveSession() (*models.WorkSession, error) {
	var session models.WorkSession

	err := s.db.Where("end_time IS NULL").Order("start_time DESC").First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No active session is not an error
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// ListSessionsBetween returns sessions dated within [start, end], oldest first.
// Closed sessions that predate the total_hours cache are backfilled here.
func (s *Store) ListSessionsBetween(start, end time.Time) ([]models.WorkSession, error) {
	var sessions []models.WorkSession

	err := s.db.Where("session_date BETWEEN ? AND ?", timeutil.DateString(start), timeutil.DateString(end)).
		Order("session_date ASC, start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		if err := s.backfillTotalHours(&sessions[i]); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// ListAllSessions returns every session, newest first
func (s *Store) ListAllSessions() ([]models.WorkSession, error) {
	var sessions []models.WorkSession
	if err := s.db.Order("session_date DESC, start_time DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *Store) backfillTotalHours(session *models.WorkSession) error {
	if session.TotalHours != nil || session.EndTime == nil {
		return nil
	}

	hours, err := timeutil.DurationHours(session.StartTime, session.EndTime, s.clock)
	if err != nil {
		// leave the cache empty, reports fall back to raw timestamps
		s.log.WithField("session_id", session.ID).WithError(err).Warn("cannot backfill total hours")
		return nil
	}

	if err := s.db.Model(&models.WorkSession{}).Where("id = ?", session.ID).Update("total_hours", hours).Error; err != nil {
		return fmt.Errorf("failed to backfill session #%d: %w", session.ID, err)
	}
	session.TotalHours = &hours

	s.log.WithField("session_id", session.ID).Debug("backfilled total hours")
	return nil
}

// UpdateSession overwrites all fields of a session and recomputes its cached hours
func (s *Store) UpdateSession(req UpdateSessionRequest) error {
	if err := timeutil.ValidateRange(req.Start, req.End); err != nil {
		return err
	}

	var total *float64
	if req.End != nil {
		hours, err := timeutil.DurationHours(req.Start, req.End, s.clock)
		if err != nil {
			return err
		}
		total = &hours
	}

	if err := s.db.Model(&models.WorkSession{}).Where("id = ?", req.ID).Updates(map[string]any{
		"session_date": timeutil.DateString(req.Date),
		"start_time":   req.Start,
		"end_time":     req.End,
		"notes":        req.Notes,
		"total_hours":  total,
	}).Error; err != nil {
		return err
	}

	s.log.WithField("session_id", req.ID).Debug("updated work session")
	return nil
}

// DeleteSession removes a session together with all of its entries
func (s *Store) DeleteSession(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.ProjectEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WorkSession{}, id).Error
	})
	if err != nil {
		return err
	}

	s.log.WithField("session_id", id).Debug("deleted work session")
	return nil
}

// EnsureSessionForDate returns the earliest session on date, creating an
// open session starting at midnight when the date has none.
func (s *Store) EnsureSessionForDate(date time.Time) (*models.WorkSession, error) {
	var session models.WorkSession
	dateStr := timeutil.DateString(date)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("session_date = ?", dateStr).Order("start_time ASC").First(&session).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		session = models.WorkSession{
			SessionDate: dateStr,
			StartTime:   timeutil.Combine(date, timeutil.TimeOfDay{}, s.loc),
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		s.log.WithFields(logrus.Fields{
			"session_id": session.ID,
			"date":       dateStr,
		}).Debug("created session for manual entries")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}
