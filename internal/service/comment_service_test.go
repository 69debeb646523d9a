package service

import (
	"errors"
	"testing"

	"github.com/pressroom/internal/db"
)

func TestToggleCommentLikeRoundTrip(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	reader := seedUser(t, store, "reader")
	category := seedCategory(t, store, "World", "world")
	article := seedArticle(t, store, "Headline", "headline", category.ID, author.ID)
	comment := seedComment(t, store, article.ID, author.ID, "first!")

	svc := NewCommentService(store)

	first, err := svc.ToggleLike(comment.ID, reader.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first.Liked || first.LikeCount != 1 || !first.IsLikedByCurrentUser {
		t.Fatalf("unexpected first toggle result: %+v", first)
	}

	second, err := svc.ToggleLike(comment.ID, reader.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Liked || second.LikeCount != 0 || second.IsLikedByCurrentUser {
		t.Fatalf("unexpected second toggle result: %+v", second)
	}

	third, err := svc.ToggleLike(comment.ID, reader.ID)
	if err != nil {
		t.Fatalf("third toggle: %v", err)
	}
	if !third.Liked || third.LikeCount != 1 || !third.IsLikedByCurrentUser {
		t.Fatalf("unexpected third toggle result: %+v", third)
	}
}

func TestToggleCommentLikeKeepsCounterInSyncWithRows(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	category := seedCategory(t, store, "Tech", "tech")
	article := seedArticle(t, store, "Chips", "chips", category.ID, author.ID)
	comment := seedComment(t, store, article.ID, author.ID, "interesting")

	svc := NewCommentService(store)
	if _, err := svc.ToggleLike(comment.ID, alice.ID); err != nil {
		t.Fatalf("alice toggle: %v", err)
	}
	if _, err := svc.ToggleLike(comment.ID, bob.ID); err != nil {
		t.Fatalf("bob toggle: %v", err)
	}

	got, err := store.CommentByID(comment.ID)
	if err != nil {
		t.Fatalf("load comment: %v", err)
	}

	var rows int64
	if err := store.DB().Model(&db.CommentLike{}).
		Where("comment_id = ?", comment.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count like rows: %v", err)
	}
	if int64(got.LikeCount) != rows {
		t.Fatalf("likeCount=%d but %d like rows exist", got.LikeCount, rows)
	}
}

func TestToggleCommentLikeMissingComment(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	reader := seedUser(t, store, "reader")

	svc := NewCommentService(store)
	result, err := svc.ToggleLike(999, reader.ID)
	if !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestCreateCommentIncrementsArticleCommentCount(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	category := seedCategory(t, store, "World", "world")
	article := seedArticle(t, store, "Headline", "headline", category.ID, author.ID)

	svc := NewCommentService(store)
	comment, err := svc.Create(article.ID, author.ID, nil, "top level")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := svc.Create(article.ID, author.ID, &comment.ID, "a reply"); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	got, err := store.ArticleByID(article.ID)
	if err != nil {
		t.Fatalf("load article: %v", err)
	}
	if got.CommentCount != 2 {
		t.Fatalf("expected commentCount=2, got %d", got.CommentCount)
	}
}

func TestCreateReplyValidatesParent(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	category := seedCategory(t, store, "World", "world")
	articleA := seedArticle(t, store, "A", "a", category.ID, author.ID)
	articleB := seedArticle(t, store, "B", "b", category.ID, author.ID)
	parent := seedComment(t, store, articleA.ID, author.ID, "on A")

	svc := NewCommentService(store)

	if _, err := svc.Create(articleB.ID, author.ID, &parent.ID, "wrong article"); !errors.Is(err, ErrParentMismatch) {
		t.Fatalf("expected ErrParentMismatch, got %v", err)
	}

	reply, err := svc.Create(articleA.ID, author.ID, &parent.ID, "a reply")
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if _, err := svc.Create(articleA.ID, author.ID, &reply.ID, "reply to reply"); !errors.Is(err, ErrParentNested) {
		t.Fatalf("expected ErrParentNested, got %v", err)
	}

	missing := uint(777)
	if _, err := svc.Create(articleA.ID, author.ID, &missing, "orphan"); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
}

func TestDeleteCommentCascadesLikesAndDecrementsCount(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	alice := seedUser(t, store, "alice")
	category := seedCategory(t, store, "World", "world")
	article := seedArticle(t, store, "Headline", "headline", category.ID, author.ID)

	svc := NewCommentService(store)
	comment, err := svc.Create(article.ID, author.ID, nil, "doomed")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := svc.ToggleLike(comment.ID, alice.ID); err != nil {
		t.Fatalf("toggle like: %v", err)
	}

	if err := svc.Delete(comment.ID, author.ID, false); err != nil {
		t.Fatalf("delete comment: %v", err)
	}

	var rows int64
	if err := store.DB().Model(&db.CommentLike{}).
		Where("comment_id = ?", comment.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count like rows: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected like rows cleaned up, found %d", rows)
	}

	got, err := store.ArticleByID(article.ID)
	if err != nil {
		t.Fatalf("load article: %v", err)
	}
	if got.CommentCount != 0 {
		t.Fatalf("expected commentCount back to 0, got %d", got.CommentCount)
	}
}

func TestDeleteParentCommentCascadesReplies(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	reader := seedUser(t, store, "reader")
	category := seedCategory(t, store, "World", "world")
	article := seedArticle(t, store, "Headline", "headline", category.ID, author.ID)

	svc := NewCommentService(store)
	parent, err := svc.Create(article.ID, author.ID, nil, "parent")
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	reply, err := svc.Create(article.ID, reader.ID, &parent.ID, "reply")
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if _, err := svc.ToggleLike(reply.ID, author.ID); err != nil {
		t.Fatalf("like reply: %v", err)
	}

	if err := svc.Delete(parent.ID, author.ID, false); err != nil {
		t.Fatalf("delete parent: %v", err)
	}

	// no reply may survive with a parentId pointing at a deleted comment
	views, err := svc.ListByArticle(article.ID, 0)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no comments left, got %+v", views)
	}

	var commentRows, likeRows int64
	if err := store.DB().Model(&db.Comment{}).Count(&commentRows).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if err := store.DB().Model(&db.CommentLike{}).Count(&likeRows).Error; err != nil {
		t.Fatalf("count like rows: %v", err)
	}
	if commentRows != 0 || likeRows != 0 {
		t.Fatalf("expected full cleanup, found %d comments and %d like rows", commentRows, likeRows)
	}

	got, err := store.ArticleByID(article.ID)
	if err != nil {
		t.Fatalf("load article: %v", err)
	}
	if got.CommentCount != 0 {
		t.Fatalf("expected commentCount back to 0, got %d", got.CommentCount)
	}
}

func TestDeleteCommentRequiresAuthorOrAdmin(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	stranger := seedUser(t, store, "stranger")
	category := seedCategory(t, store, "World", "world")
	article := seedArticle(t, store, "Headline", "headline", category.ID, author.ID)
	comment := seedComment(t, store, article.ID, author.ID, "mine")

	svc := NewCommentService(store)
	if err := svc.Delete(comment.ID, stranger.ID, false); !errors.Is(err, ErrNotCommentAuthor) {
		t.Fatalf("expected ErrNotCommentAuthor, got %v", err)
	}
	if err := svc.Delete(comment.ID, stranger.ID, true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestListByArticleMarksLikesForCurrentUser(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	reader := seedUser(t, store, "reader")
	category := seedCategory(t, store, "World", "world")
	article := seedArticle(t, store, "Headline", "headline", category.ID, author.ID)
	liked := seedComment(t, store, article.ID, author.ID, "liked one")
	seedComment(t, store, article.ID, author.ID, "plain one")

	svc := NewCommentService(store)
	if _, err := svc.ToggleLike(liked.ID, reader.ID); err != nil {
		t.Fatalf("toggle like: %v", err)
	}

	views, err := svc.ListByArticle(article.ID, reader.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(views))
	}
	for _, view := range views {
		wantLiked := view.ID == liked.ID
		if view.IsLikedByCurrentUser != wantLiked {
			t.Fatalf("comment %d: expected liked=%v", view.ID, wantLiked)
		}
		if view.Author.Username != "author" {
			t.Fatalf("expected embedded author summary, got %+v", view.Author)
		}
	}

	// anonymous requests carry no like decoration
	anon, err := svc.ListByArticle(article.ID, 0)
	if err != nil {
		t.Fatalf("anonymous list: %v", err)
	}
	for _, view := range anon {
		if view.IsLikedByCurrentUser {
			t.Fatalf("anonymous view must not be marked liked: %+v", view)
		}
	}
}

func TestLegacyIncrementLikeOnlyGrows(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	author := seedUser(t, store, "author")
	category := seedCategory(t, store, "World", "world")
	article := seedArticle(t, store, "Headline", "headline", category.ID, author.ID)
	comment := seedComment(t, store, article.ID, author.ID, "legacy")

	svc := NewCommentService(store)
	for i := 1; i <= 3; i++ {
		got, err := svc.IncrementLike(comment.ID)
		if err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
		if got.LikeCount != i {
			t.Fatalf("expected likeCount=%d, got %d", i, got.LikeCount)
		}
	}

	if _, err := svc.IncrementLike(999); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}
