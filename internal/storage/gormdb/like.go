package gormdb

import (
	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
)

func (s *Store) ArticleLike(articleID, userID uint) (*db.Like, error) {
	var like db.Like
	if err := s.db.Where("article_id = ? AND user_id = ?", articleID, userID).
		First(&like).Error; err != nil {
		return nil, wrap(err)
	}
	return &like, nil
}

func (s *Store) CreateArticleLike(like *db.Like) error {
	return wrap(s.db.Create(like).Error)
}

func (s *Store) DeleteArticleLike(articleID, userID uint) error {
	result := s.db.Unscoped().
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Delete(&db.Like{})
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteArticleLikesByArticle(articleID uint) error {
	return wrap(s.db.Unscoped().
		Where("article_id = ?", articleID).
		Delete(&db.Like{}).Error)
}
