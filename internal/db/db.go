package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/daybook/internal/models"
	"github.com/balkashynov/daybook/internal/timeutil"
)

// Config holds what the store needs to open its database
type Config struct {
	// Path of the SQLite database file
	Path string
	// LogSQL turns on gorm's statement logger
	LogSQL bool
	// Location is the civil zone used for dates and "now"
	Location *time.Location
	// Clock supplies "now"; defaults to the system clock in Location
	Clock timeutil.Clock
	// Logger receives mutation logs; defaults to the logrus standard logger
	Logger *logrus.Logger
}

// Store owns all persisted sessions, entries and categories
type Store struct {
	db    *gorm.DB
	loc   *time.Location
	clock timeutil.Clock
	log   *logrus.Logger
}

// Open sets up the database connection, runs migrations and seeds categories
func Open(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	gormLogger := logger.Default.LogMode(logger.Silent) // Quiet by default
	if cfg.LogSQL {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn(cfg.Path)), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	loc := cfg.Location
	if loc == nil {
		if loc, err = timeutil.LoadZone(""); err != nil {
			return nil, fmt.Errorf("failed to load timezone: %w", err)
		}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = timeutil.NewSystemClock(loc)
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Store{
		db:    db,
		loc:   loc,
		clock: clock,
		log:   log,
	}

	if err := s.runMigrations(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := s.seedCategories(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	return s, nil
}

// dsn enables foreign keys on every pooled connection so deletes cascade
func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// runMigrations creates/updates the database schema
func (s *Store) runMigrations() error {
	if err := s.db.AutoMigrate(
		&models.WorkSession{},
		&models.ProjectEntry{},
		&models.Category{},
	); err != nil {
		return err
	}

	// at most one running entry per session
	return s.db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_project_entries_open ON project_entries(session_id) WHERE end_time IS NULL",
	).Error
}

// seedCategories inserts the default categories only into an empty table
func (s *Store) seedCategories() error {
	var count int64
	if err := s.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := make([]models.Category, 0, len(models.DefaultCategories))
	for _, name := range models.DefaultCategories {
		categories = append(categories, models.Category{Name: name, Active: true})
	}
	if err := s.db.Create(&categories).Error; err != nil {
		return err
	}

	s.log.WithField("categories", models.DefaultCategories).Debug("seeded default categories")
	return nil
}

// Location returns the civil zone the store localizes to
func (s *Store) Location() *time.Location {
	return s.loc
}

// Clock returns the store's source of "now"
func (s *Store) Clock() timeutil.Clock {
	return s.clock
}

// CurrentTime returns "now" in the civil zone
func (s *Store) CurrentTime() time.Time {
	return timeutil.CurrentTime(s.clock, s.loc)
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
