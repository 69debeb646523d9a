package gormdb

import (
	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
)

func (s *Store) CreateSubscriber(sub *db.NewsletterSubscriber) error {
	return wrap(s.db.Create(sub).Error)
}

func (s *Store) Subscribers() ([]db.NewsletterSubscriber, error) {
	var subs []db.NewsletterSubscriber
	if err := s.db.Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, wrap(err)
	}
	return subs, nil
}

func (s *Store) SubscriberByEmail(email string) (*db.NewsletterSubscriber, error) {
	var sub db.NewsletterSubscriber
	if err := s.db.Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, wrap(err)
	}
	return &sub, nil
}

func (s *Store) SubscriberByToken(token string) (*db.NewsletterSubscriber, error) {
	var sub db.NewsletterSubscriber
	if err := s.db.Where("unsubscribe_token = ?", token).First(&sub).Error; err != nil {
		return nil, wrap(err)
	}
	return &sub, nil
}

func (s *Store) DeleteSubscriber(id uint) error {
	result := s.db.Unscoped().Delete(&db.NewsletterSubscriber{}, id)
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
