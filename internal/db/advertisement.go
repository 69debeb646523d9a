package db

import (
	"time"

	"gorm.io/gorm"
)

// 广告投放位置
const (
	PositionSidebar     = "sidebar"
	PositionFooter      = "footer"
	PositionArticlePage = "article-page"
	PositionHomePage    = "home-page"
)

// Positions lists every known advertisement placement.
var Positions = []string{
	PositionSidebar,
	PositionFooter,
	PositionArticlePage,
	PositionHomePage,
}

// ValidPosition reports whether p is a known placement.
func ValidPosition(p string) bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// Advertisement 定义了广告模型，展示量与点击量只增不减
type Advertisement struct {
	gorm.Model
	Title           string `gorm:"not null"`
	Description     string
	ImageURL        string `gorm:"not null"`
	LinkURL         string `gorm:"not null"`
	BackgroundColor string
	TextColor       string
	Position        string    `gorm:"index;not null"`
	IsActive        bool      `gorm:"default:true"`
	Priority        int       `gorm:"not null;default:1"`
	StartDate       time.Time `gorm:"not null"`
	EndDate         time.Time `gorm:"not null"`
	Impressions     int64     `gorm:"not null;default:0"`
	Clicks          int64     `gorm:"not null;default:0"`
}
