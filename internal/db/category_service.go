package db

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/daybook/internal/models"
)

// GetCategories returns category names in lexicographic order.
// Inactive categories are left out unless includeInactive is set.
func (s *Store) GetCategories(includeInactive bool) ([]string, error) {
	var names []string

	query := s.db.Model(&models.Category{})
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	if err := query.Order("name ASC").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// ListCategories returns every category record ordered by name
func (s *Store) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// AddCategory creates an active category; an existing name is left untouched
func (s *Store) AddCategory(name string) error {
	category := models.Category{Name: name, Active: true}

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&category)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		s.log.WithField("category", name).Debug("added category")
	}
	return nil
}

// SetCategoryActive flips a category's active flag. Unknown names are ignored.
func (s *Store) SetCategoryActive(name string, active bool) error {
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Update("active", active).Error; err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"category": name,
		"active":   active,
	}).Debug("set category active flag")
	return nil
}

// RenameCategory renames a category and rewrites every entry that carries
// the old name. Both writes share one transaction.
func (s *Store) RenameCategory(oldName, newName string) error {
	if oldName == newName {
		return nil
	}

	var updated int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		err := tx.Where("name = ?", oldName).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var taken int64
		if err := tx.Model(&models.Category{}).Where("name = ?", newName).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrCategoryExists
		}

		if err := tx.Model(&category).Update("name", newName).Error; err != nil {
			return err
		}

		result := tx.Model(&models.ProjectEntry{}).Where("category = ?", oldName).Update("category", newName)
		updated = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"from":    oldName,
		"to":      newName,
		"entries": updated,
	}).Debug("renamed category")
	return nil
}
