package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage/gormdb"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestStore(t *testing.T) (*gormdb.Store, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gormdb.New(gdb), func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func seedUser(t *testing.T, store *gormdb.Store, username string) *db.User {
	t.Helper()

	user := db.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "not-a-real-hash",
		DisplayName: username,
	}
	if err := store.DB().Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func seedCategory(t *testing.T, store *gormdb.Store, name, slug string) *db.Category {
	t.Helper()

	category := db.Category{Name: name, Slug: slug}
	if err := store.DB().Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return &category
}

func seedArticle(t *testing.T, store *gormdb.Store, title, slug string, categoryID, authorID uint) *db.Article {
	t.Helper()

	article := db.Article{
		Title:      title,
		Slug:       slug,
		Content:    "seeded content",
		CategoryID: categoryID,
		AuthorID:   authorID,
	}
	if err := store.DB().Create(&article).Error; err != nil {
		t.Fatalf("failed to seed article: %v", err)
	}
	return &article
}

func seedComment(t *testing.T, store *gormdb.Store, articleID, userID uint, content string) *db.Comment {
	t.Helper()

	comment := db.Comment{ArticleID: articleID, UserID: userID, Content: content}
	if err := store.DB().Create(&comment).Error; err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}
	return &comment
}

func seedAd(t *testing.T, store *gormdb.Store, title, position string, priority int, active bool, start, end time.Time) *db.Advertisement {
	t.Helper()

	ad := db.Advertisement{
		Title:     title,
		ImageURL:  "https://cdn.example.com/" + title + ".png",
		LinkURL:   "https://example.com/" + title,
		Position:  position,
		IsActive:  active,
		Priority:  priority,
		StartDate: start,
		EndDate:   end,
	}
	if err := store.DB().Create(&ad).Error; err != nil {
		t.Fatalf("failed to seed advertisement: %v", err)
	}
	return &ad
}
