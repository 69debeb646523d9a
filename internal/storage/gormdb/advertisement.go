package gormdb

import (
	"time"

	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
	"gorm.io/gorm"
)

func (s *Store) CreateAdvertisement(ad *db.Advertisement) error {
	return wrap(s.db.Create(ad).Error)
}

func (s *Store) Advertisements() ([]db.Advertisement, error) {
	var ads []db.Advertisement
	if err := s.db.Order("created_at desc").Find(&ads).Error; err != nil {
		return nil, wrap(err)
	}
	return ads, nil
}

func (s *Store) AdvertisementByID(id uint) (*db.Advertisement, error) {
	var ad db.Advertisement
	if err := s.db.First(&ad, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &ad, nil
}

// EligibleAdvertisements returns active ads for a placement whose date window
// contains now, highest priority first.
func (s *Store) EligibleAdvertisements(position string, now time.Time) ([]db.Advertisement, error) {
	var ads []db.Advertisement
	if err := s.db.
		Where("position = ?", position).
		Where("is_active = ?", true).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("priority desc").
		Order("id asc").
		Find(&ads).Error; err != nil {
		return nil, wrap(err)
	}
	return ads, nil
}

func (s *Store) SaveAdvertisement(ad *db.Advertisement) error {
	return wrap(s.db.Save(ad).Error)
}

func (s *Store) DeleteAdvertisement(id uint) error {
	result := s.db.Unscoped().Delete(&db.Advertisement{}, id)
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) AddImpression(id uint) error {
	return s.addAdCounter(id, "impressions")
}

func (s *Store) AddClick(id uint) error {
	return s.addAdCounter(id, "clicks")
}

func (s *Store) addAdCounter(id uint, column string) error {
	result := s.db.Model(&db.Advertisement{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
