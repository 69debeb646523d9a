package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrArticleSlugTaken = errors.New("article slug already exists")
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ArticleService handles article CRUD and the bookkeeping that keeps
// category post counts and article like counts consistent.
type ArticleService struct {
	store storage.Storage
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(store storage.Storage) *ArticleService {
	return &ArticleService{store: store}
}

// ArticleInput is the create payload.
type ArticleInput struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"coverImage"`
	CategoryID uint   `json:"categoryId"`
	IsFeatured *bool  `json:"isFeatured"`
	IsBreaking *bool  `json:"isBreaking"`
}

// ArticleUpdate is the partial-update payload; nil fields are left untouched.
type ArticleUpdate struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Content    *string `json:"content"`
	Excerpt    *string `json:"excerpt"`
	CoverImage *string `json:"coverImage"`
	CategoryID *uint   `json:"categoryId"`
	IsFeatured *bool   `json:"isFeatured"`
	IsBreaking *bool   `json:"isBreaking"`
}

// List returns articles newest first, narrowed by the filter.
func (s *ArticleService) List(filter storage.ArticleFilter) ([]db.Article, error) {
	return s.store.Articles(filter)
}

// ListByCategorySlug resolves a category slug and lists its articles.
func (s *ArticleService) ListByCategorySlug(slug string, filter storage.ArticleFilter) ([]db.Article, error) {
	category, err := s.store.CategoryBySlug(slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	filter.CategoryID = category.ID
	return s.store.Articles(filter)
}

// Get returns one article by id.
func (s *ArticleService) Get(id uint) (*db.Article, error) {
	article, err := s.store.ArticleByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// GetBySlug returns one article by slug.
func (s *ArticleService) GetBySlug(slug string) (*db.Article, error) {
	article, err := s.store.ArticleBySlug(slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// Create validates and stores a new article and bumps the category's post
// counter.
func (s *ArticleService) Create(authorID uint, input ArticleInput) (*db.Article, error) {
	var fields fieldErrors

	title := strings.TrimSpace(input.Title)
	if title == "" {
		fields.add("title", "title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		fields.add("content", "content is required")
	}
	if input.CategoryID == 0 {
		fields.add("categoryId", "categoryId is required")
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	if _, err := s.store.CategoryByID(input.CategoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	slug, err := s.uniqueSlug(slug, 0)
	if err != nil {
		return nil, err
	}

	article := db.Article{
		Title:      title,
		Slug:       slug,
		Content:    input.Content,
		Excerpt:    strings.TrimSpace(input.Excerpt),
		CoverImage: input.CoverImage,
		CategoryID: input.CategoryID,
		AuthorID:   authorID,
	}
	if input.IsFeatured != nil {
		article.IsFeatured = *input.IsFeatured
	}
	if input.IsBreaking != nil {
		article.IsBreaking = *input.IsBreaking
	}

	if err := s.store.CreateArticle(&article); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrArticleSlugTaken
		}
		return nil, err
	}
	if err := s.store.AddCategoryPostCount(article.CategoryID, 1); err != nil &&
		!errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return &article, nil
}

// Update merges the provided fields. A category change moves the post count
// from the old category to the new one as a single storage operation.
func (s *ArticleService) Update(id uint, update ArticleUpdate) (*db.Article, error) {
	article, err := s.store.ArticleByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	oldCategoryID := article.CategoryID

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, (&ValidationError{Fields: []FieldError{{Field: "title", Message: "title is required"}}})
		}
		article.Title = title
	}
	if update.Slug != nil && strings.TrimSpace(*update.Slug) != article.Slug {
		slug, err := s.uniqueSlug(strings.TrimSpace(*update.Slug), article.ID)
		if err != nil {
			return nil, err
		}
		article.Slug = slug
	}
	if update.Content != nil {
		article.Content = *update.Content
	}
	if update.Excerpt != nil {
		article.Excerpt = strings.TrimSpace(*update.Excerpt)
	}
	if update.CoverImage != nil {
		article.CoverImage = *update.CoverImage
	}
	if update.IsFeatured != nil {
		article.IsFeatured = *update.IsFeatured
	}
	if update.IsBreaking != nil {
		article.IsBreaking = *update.IsBreaking
	}
	if update.CategoryID != nil && *update.CategoryID != oldCategoryID {
		if _, err := s.store.CategoryByID(*update.CategoryID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		article.CategoryID = *update.CategoryID
	}

	if err := s.store.SaveArticle(article); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrArticleSlugTaken
		}
		return nil, err
	}

	if article.CategoryID != oldCategoryID {
		if err := s.store.TransferCategoryPostCount(oldCategoryID, article.CategoryID); err != nil {
			return nil, err
		}
	}

	return s.Get(article.ID)
}

// Delete removes an article together with its comments, like rows, and the
// comment like rows hanging off those comments, then decrements the
// category's post counter.
func (s *ArticleService) Delete(id uint) error {
	article, err := s.store.ArticleByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}

	comments, err := s.store.CommentsByArticle(id)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		if err := s.store.DeleteCommentLikesByComment(comment.ID); err != nil {
			return err
		}
		if err := s.store.DeleteComment(comment.ID); err != nil &&
			!errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	if err := s.store.DeleteArticleLikesByArticle(id); err != nil {
		return err
	}
	if err := s.store.DeleteArticle(id); err != nil {
		return err
	}
	if err := s.store.AddCategoryPostCount(article.CategoryID, -1); err != nil &&
		!errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// ToggleLike flips the user's like state on an article, mirroring the
// comment like toggle.
func (s *ArticleService) ToggleLike(articleID, userID uint) (*LikeResult, error) {
	if _, err := s.store.ArticleByID(articleID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	liked := false
	_, err := s.store.ArticleLike(articleID, userID)
	switch {
	case err == nil:
		if err := s.store.DeleteArticleLike(articleID, userID); err != nil &&
			!errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if err := s.store.AddArticleLikeCount(articleID, -1); err != nil {
			return nil, err
		}
	case errors.Is(err, storage.ErrNotFound):
		liked = true
		createErr := s.store.CreateArticleLike(&db.Like{ArticleID: articleID, UserID: userID})
		if createErr != nil && !errors.Is(createErr, storage.ErrDuplicate) {
			return nil, createErr
		}
		if createErr == nil {
			if err := s.store.AddArticleLikeCount(articleID, 1); err != nil {
				return nil, err
			}
		}
	default:
		return nil, err
	}

	article, err := s.store.ArticleByID(articleID)
	if err != nil {
		return nil, err
	}
	_, likeErr := s.store.ArticleLike(articleID, userID)

	return &LikeResult{
		Liked:                liked,
		LikeCount:            article.LikeCount,
		IsLikedByCurrentUser: likeErr == nil,
	}, nil
}

// uniqueSlug appends a numeric suffix until the slug is free. excludeID skips
// the article being updated.
func (s *ArticleService) uniqueSlug(base string, excludeID uint) (string, error) {
	slug := Slugify(base)
	if slug == "" {
		slug = "article"
	}

	candidate := slug
	for i := 2; ; i++ {
		existing, err := s.store.ArticleBySlug(candidate)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return candidate, nil
			}
			return "", err
		}
		if existing.ID == excludeID {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

// Slugify lowercases the input and collapses every non-alphanumeric run into
// a single hyphen.
func Slugify(s string) string {
	slug := slugStripPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
