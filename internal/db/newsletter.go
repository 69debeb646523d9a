package db

import "gorm.io/gorm"

// NewsletterSubscriber 定义了邮件订阅模型
type NewsletterSubscriber struct {
	gorm.Model
	Email            string `gorm:"unique;not null"`
	UnsubscribeToken string `gorm:"unique;not null"`
}
