package gormdb

import (
	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
	"gorm.io/gorm"
)

func (s *Store) CreateArticle(article *db.Article) error {
	return wrap(s.db.Create(article).Error)
}

func (s *Store) Articles(filter storage.ArticleFilter) ([]db.Article, error) {
	query := s.db.Model(&db.Article{}).
		Preload("Category").
		Preload("Author").
		Order("created_at desc")

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Breaking != nil {
		query = query.Where("is_breaking = ?", *filter.Breaking)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR excerpt LIKE ?", pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var articles []db.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, wrap(err)
	}
	return articles, nil
}

func (s *Store) ArticleByID(id uint) (*db.Article, error) {
	var article db.Article
	if err := s.db.Preload("Category").Preload("Author").First(&article, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &article, nil
}

func (s *Store) ArticleBySlug(slug string) (*db.Article, error) {
	var article db.Article
	if err := s.db.Preload("Category").Preload("Author").
		Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, wrap(err)
	}
	return &article, nil
}

func (s *Store) SaveArticle(article *db.Article) error {
	return wrap(s.db.Omit("Category", "Author").Save(article).Error)
}

func (s *Store) DeleteArticle(id uint) error {
	result := s.db.Unscoped().Delete(&db.Article{}, id)
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) AddArticleLikeCount(id uint, delta int) error {
	return s.addArticleCounter(id, "like_count", delta)
}

func (s *Store) AddArticleCommentCount(id uint, delta int) error {
	return s.addArticleCounter(id, "comment_count", delta)
}

func (s *Store) addArticleCounter(id uint, column string, delta int) error {
	result := s.db.Model(&db.Article{}).
		Where("id = ?", id).
		Update(column, gorm.Expr("MAX("+column+" + ?, 0)", delta))
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
