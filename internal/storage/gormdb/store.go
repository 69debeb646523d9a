// Package gormdb implements storage.Storage on top of a gorm sqlite database.
package gormdb

import (
	"errors"

	"github.com/pressroom/internal/storage"
	"gorm.io/gorm"
)

// Store is the database-backed storage implementation.
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm connection. The connection must have been opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func New(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// DB exposes the underlying gorm instance for bootstrap paths.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrDuplicate
	default:
		return err
	}
}
