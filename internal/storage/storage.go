// Package storage defines the persistence interface the rest of the server
// depends on. Two implementations exist: gormdb backed by sqlite, and memdb,
// a volatile in-memory mirror used when the database cannot be opened.
package storage

import (
	"errors"
	"time"

	"github.com/pressroom/internal/db"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("duplicate record")
)

// ArticleFilter narrows article listings. Zero values mean "no constraint".
type ArticleFilter struct {
	CategoryID uint
	Featured   *bool
	Breaking   *bool
	Search     string
	Limit      int
	Offset     int
}

// Storage is the persistence facade. All counter mutations are atomic within
// the backend, and decrements clamp at zero.
type Storage interface {
	// users
	CreateUser(user *db.User) error
	UserByID(id uint) (*db.User, error)
	UserByUsername(username string) (*db.User, error)

	// categories
	CreateCategory(category *db.Category) error
	Categories() ([]db.Category, error)
	CategoryByID(id uint) (*db.Category, error)
	CategoryBySlug(slug string) (*db.Category, error)
	SaveCategory(category *db.Category) error
	DeleteCategory(id uint) error
	AddCategoryPostCount(id uint, delta int) error
	// TransferCategoryPostCount applies the decrement/increment pair of a
	// recategorization as one unit.
	TransferCategoryPostCount(fromID, toID uint) error

	// articles
	CreateArticle(article *db.Article) error
	Articles(filter ArticleFilter) ([]db.Article, error)
	ArticleByID(id uint) (*db.Article, error)
	ArticleBySlug(slug string) (*db.Article, error)
	SaveArticle(article *db.Article) error
	DeleteArticle(id uint) error
	AddArticleLikeCount(id uint, delta int) error
	AddArticleCommentCount(id uint, delta int) error

	// comments
	CreateComment(comment *db.Comment) error
	CommentByID(id uint) (*db.Comment, error)
	CommentsByArticle(articleID uint) ([]db.Comment, error)
	RepliesByComment(parentID uint) ([]db.Comment, error)
	DeleteComment(id uint) error
	AddCommentLikeCount(id uint, delta int) error

	// comment likes
	CommentLike(commentID, userID uint) (*db.CommentLike, error)
	CreateCommentLike(like *db.CommentLike) error
	DeleteCommentLike(commentID, userID uint) error
	DeleteCommentLikesByComment(commentID uint) error
	LikedCommentIDs(userID uint, commentIDs []uint) (map[uint]bool, error)

	// article likes
	ArticleLike(articleID, userID uint) (*db.Like, error)
	CreateArticleLike(like *db.Like) error
	DeleteArticleLike(articleID, userID uint) error
	DeleteArticleLikesByArticle(articleID uint) error

	// advertisements
	CreateAdvertisement(ad *db.Advertisement) error
	Advertisements() ([]db.Advertisement, error)
	AdvertisementByID(id uint) (*db.Advertisement, error)
	EligibleAdvertisements(position string, now time.Time) ([]db.Advertisement, error)
	SaveAdvertisement(ad *db.Advertisement) error
	DeleteAdvertisement(id uint) error
	AddImpression(id uint) error
	AddClick(id uint) error

	// newsletter
	CreateSubscriber(sub *db.NewsletterSubscriber) error
	Subscribers() ([]db.NewsletterSubscriber, error)
	SubscriberByEmail(email string) (*db.NewsletterSubscriber, error)
	SubscriberByToken(token string) (*db.NewsletterSubscriber, error)
	DeleteSubscriber(id uint) error
}
