package gormdb

import "github.com/pressroom/internal/db"

func (s *Store) CreateUser(user *db.User) error {
	return wrap(s.db.Create(user).Error)
}

func (s *Store) UserByID(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

func (s *Store) UserByUsername(username string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}
