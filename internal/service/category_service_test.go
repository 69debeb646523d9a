package service

import (
	"errors"
	"testing"
)

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	svc := NewCategoryService(store)
	if _, err := svc.Create(CategoryInput{Name: "World"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Anything", Slug: "world"}); !errors.Is(err, ErrCategorySlugTaken) {
		t.Fatalf("expected ErrCategorySlugTaken, got %v", err)
	}
}

func TestDeleteCategoryRefusedWhileInUse(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	category := seedCategory(t, store, "World", "world")

	articles := NewArticleService(store)
	article, err := articles.Create(author.ID, ArticleInput{
		Title:      "Story",
		Content:    "body",
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}

	svc := NewCategoryService(store)
	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := articles.Delete(article.ID); err != nil {
		t.Fatalf("delete article: %v", err)
	}
	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
	if _, err := svc.GetBySlug("world"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}

func TestUpdateCategoryKeepsSlugUnique(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	seedCategory(t, store, "World", "world")
	tech := seedCategory(t, store, "Tech", "tech")

	svc := NewCategoryService(store)
	taken := "world"
	if _, err := svc.Update(tech.ID, CategoryUpdate{Slug: &taken}); !errors.Is(err, ErrCategorySlugTaken) {
		t.Fatalf("expected ErrCategorySlugTaken, got %v", err)
	}

	name := "Technology"
	slug := "technology"
	updated, err := svc.Update(tech.ID, CategoryUpdate{Name: &name, Slug: &slug})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Technology" || updated.Slug != "technology" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	ghost := "ghost"
	if _, err := svc.Update(999, CategoryUpdate{Name: &ghost}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestUpdateCategoryMergesAndClearsFields(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	svc := NewCategoryService(store)
	category, err := svc.Create(CategoryInput{Name: "World", Description: "global coverage"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// omitted fields stay untouched
	name := "World News"
	updated, err := svc.Update(category.ID, CategoryUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update name: %v", err)
	}
	if updated.Description != "global coverage" || updated.Slug != "world" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	// an explicit empty description clears the stored one
	empty := ""
	updated, err = svc.Update(category.ID, CategoryUpdate{Description: &empty})
	if err != nil {
		t.Fatalf("clear description: %v", err)
	}
	if updated.Description != "" {
		t.Fatalf("expected cleared description, got %q", updated.Description)
	}

	if _, err := svc.Update(category.ID, CategoryUpdate{Name: &empty}); err == nil {
		t.Fatal("expected a validation error for empty name")
	}
}
