package db

import "gorm.io/gorm"

// Category 定义了栏目模型
type Category struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Slug        string `gorm:"unique;not null"`
	Description string
	PostCount   int `gorm:"not null;default:0"`
}
