package gormdb

import (
	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
	"gorm.io/gorm"
)

func (s *Store) CreateCategory(category *db.Category) error {
	return wrap(s.db.Create(category).Error)
}

func (s *Store) Categories() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, wrap(err)
	}
	return categories, nil
}

func (s *Store) CategoryByID(id uint) (*db.Category, error) {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &category, nil
}

func (s *Store) CategoryBySlug(slug string) (*db.Category, error) {
	var category db.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, wrap(err)
	}
	return &category, nil
}

func (s *Store) SaveCategory(category *db.Category) error {
	return wrap(s.db.Save(category).Error)
}

func (s *Store) DeleteCategory(id uint) error {
	result := s.db.Unscoped().Delete(&db.Category{}, id)
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AddCategoryPostCount adjusts post_count atomically, clamping at zero.
func (s *Store) AddCategoryPostCount(id uint, delta int) error {
	return addCategoryPostCount(s.db, id, delta)
}

// TransferCategoryPostCount applies the recategorization pair inside one
// transaction so a crash cannot leave only half of it applied.
func (s *Store) TransferCategoryPostCount(fromID, toID uint) error {
	return wrap(s.db.Transaction(func(tx *gorm.DB) error {
		if fromID != 0 {
			if err := addCategoryPostCount(tx, fromID, -1); err != nil {
				return err
			}
		}
		if toID != 0 {
			if err := addCategoryPostCount(tx, toID, 1); err != nil {
				return err
			}
		}
		return nil
	}))
}

func addCategoryPostCount(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&db.Category{}).
		Where("id = ?", id).
		Update("post_count", gorm.Expr("MAX(post_count + ?, 0)", delta)).Error
}
