package db

import "gorm.io/gorm"

// Like records that a user likes an article, one row per (article, user).
type Like struct {
	gorm.Model
	ArticleID uint `gorm:"not null;uniqueIndex:idx_article_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_article_user"`
}
