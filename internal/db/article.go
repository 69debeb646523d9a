package db

import "gorm.io/gorm"

// Article 定义了文章模型
type Article struct {
	gorm.Model
	Title        string `gorm:"not null"`
	Slug         string `gorm:"unique;not null"`
	Content      string
	Excerpt      string
	CoverImage   string
	CategoryID   uint `gorm:"index"`
	Category     Category
	AuthorID     uint `gorm:"index"`
	Author       User
	LikeCount    int  `gorm:"not null;default:0"`
	CommentCount int  `gorm:"not null;default:0"`
	IsFeatured   bool `gorm:"default:false"`
	IsBreaking   bool `gorm:"default:false"`
}
