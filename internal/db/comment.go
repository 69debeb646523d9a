package db

import "gorm.io/gorm"

// Comment 定义了评论模型，ParentID 为空表示顶层评论
type Comment struct {
	gorm.Model
	ArticleID uint `gorm:"index;not null"`
	UserID    uint `gorm:"index;not null"`
	User      User
	ParentID  *uint `gorm:"index"`
	Content   string
	LikeCount int `gorm:"not null;default:0"`
}

// CommentLike records that a user likes a comment. The (comment_id, user_id)
// pair is unique so concurrent toggles cannot double-insert.
type CommentLike struct {
	gorm.Model
	CommentID uint `gorm:"not null;uniqueIndex:idx_comment_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_comment_user"`
}
