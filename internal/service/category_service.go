package service

import (
	"errors"
	"strings"

	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategorySlugTaken = errors.New("category slug already exists")
	ErrCategoryInUse     = errors.New("category still has articles")
)

// CategoryService wraps category CRUD. Deleting a category is refused while
// articles still reference it.
type CategoryService struct {
	store storage.Storage
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(store storage.Storage) *CategoryService {
	return &CategoryService{store: store}
}

// CategoryInput is the create payload.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CategoryUpdate is the partial-update payload; nil fields are left
// untouched, so an empty description clears the stored one.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// List returns all categories ordered by name.
func (s *CategoryService) List() ([]db.Category, error) {
	return s.store.Categories()
}

// GetBySlug returns one category by its slug.
func (s *CategoryService) GetBySlug(slug string) (*db.Category, error) {
	category, err := s.store.CategoryBySlug(slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Create stores a new category with a unique slug derived from the name when
// none is given.
func (s *CategoryService) Create(input CategoryInput) (*db.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "name", Message: "name is required"}}}
	}

	slug := Slugify(strings.TrimSpace(input.Slug))
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "slug", Message: "slug is required"}}}
	}

	category := db.Category{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.store.CreateCategory(&category); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrCategorySlugTaken
		}
		return nil, err
	}
	return &category, nil
}

// Update merges the provided fields while keeping slug uniqueness.
func (s *CategoryService) Update(id uint, update CategoryUpdate) (*db.Category, error) {
	category, err := s.store.CategoryByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, &ValidationError{Fields: []FieldError{{Field: "name", Message: "name is required"}}}
		}
		category.Name = name
	}
	if update.Slug != nil {
		slug := Slugify(strings.TrimSpace(*update.Slug))
		if slug == "" {
			return nil, &ValidationError{Fields: []FieldError{{Field: "slug", Message: "slug is required"}}}
		}
		if slug != category.Slug {
			if existing, err := s.store.CategoryBySlug(slug); err == nil && existing.ID != id {
				return nil, ErrCategorySlugTaken
			} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return nil, err
			}
			category.Slug = slug
		}
	}
	if update.Description != nil {
		category.Description = strings.TrimSpace(*update.Description)
	}

	if err := s.store.SaveCategory(category); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrCategorySlugTaken
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category, refusing while its post count is non-zero.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.store.CategoryByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if category.PostCount > 0 {
		return ErrCategoryInUse
	}
	if err := s.store.DeleteCategory(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
