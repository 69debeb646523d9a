package gormdb

import (
	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
	"gorm.io/gorm"
)

func (s *Store) CreateComment(comment *db.Comment) error {
	return wrap(s.db.Create(comment).Error)
}

func (s *Store) CommentByID(id uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &comment, nil
}

func (s *Store) CommentsByArticle(articleID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.Preload("User").
		Where("article_id = ?", articleID).
		Order("created_at asc").
		Find(&comments).Error; err != nil {
		return nil, wrap(err)
	}
	return comments, nil
}

func (s *Store) RepliesByComment(parentID uint) ([]db.Comment, error) {
	var replies []db.Comment
	if err := s.db.Where("parent_id = ?", parentID).
		Order("created_at asc").
		Find(&replies).Error; err != nil {
		return nil, wrap(err)
	}
	return replies, nil
}

func (s *Store) DeleteComment(id uint) error {
	result := s.db.Unscoped().Delete(&db.Comment{}, id)
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) AddCommentLikeCount(id uint, delta int) error {
	result := s.db.Model(&db.Comment{}).
		Where("id = ?", id).
		Update("like_count", gorm.Expr("MAX(like_count + ?, 0)", delta))
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CommentLike(commentID, userID uint) (*db.CommentLike, error) {
	var like db.CommentLike
	if err := s.db.Where("comment_id = ? AND user_id = ?", commentID, userID).
		First(&like).Error; err != nil {
		return nil, wrap(err)
	}
	return &like, nil
}

func (s *Store) CreateCommentLike(like *db.CommentLike) error {
	return wrap(s.db.Create(like).Error)
}

func (s *Store) DeleteCommentLike(commentID, userID uint) error {
	result := s.db.Unscoped().
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&db.CommentLike{})
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCommentLikesByComment(commentID uint) error {
	return wrap(s.db.Unscoped().
		Where("comment_id = ?", commentID).
		Delete(&db.CommentLike{}).Error)
}

// LikedCommentIDs returns, for one user, which of the given comments carry a
// like from them. Used to decorate comment listings in one query.
func (s *Store) LikedCommentIDs(userID uint, commentIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(commentIDs))
	if userID == 0 || len(commentIDs) == 0 {
		return liked, nil
	}

	var rows []db.CommentLike
	if err := s.db.Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Find(&rows).Error; err != nil {
		return nil, wrap(err)
	}
	for _, row := range rows {
		liked[row.CommentID] = true
	}
	return liked, nil
}
