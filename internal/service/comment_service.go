package service

import (
	"errors"
	"strings"
	"time"

	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCommentEmpty     = errors.New("comment content is required")
	ErrParentNotFound   = errors.New("parent comment not found")
	ErrParentMismatch   = errors.New("parent comment belongs to another article")
	ErrParentNested     = errors.New("replies to replies are not supported")
	ErrNotCommentAuthor = errors.New("comment belongs to another user")
)

// CommentService handles comment CRUD, the per-user like toggle, and the
// denormalized counters that hang off both.
type CommentService struct {
	store storage.Storage
}

// NewCommentService creates a CommentService instance.
func NewCommentService(store storage.Storage) *CommentService {
	return &CommentService{store: store}
}

// CommentAuthor is the embedded user summary on a listed comment.
type CommentAuthor struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// CommentView is a comment as the listing endpoint returns it, decorated for
// the requesting user.
type CommentView struct {
	ID                   uint          `json:"id"`
	ArticleID            uint          `json:"articleId"`
	ParentID             *uint         `json:"parentId"`
	Content              string        `json:"content"`
	LikeCount            int           `json:"likeCount"`
	CreatedAt            time.Time     `json:"createdAt"`
	Author               CommentAuthor `json:"author"`
	IsLikedByCurrentUser bool          `json:"isLikedByCurrentUser"`
}

// LikeResult is the outcome of a like toggle. IsLikedByCurrentUser is
// re-derived from storage after the mutation rather than trusting the branch
// taken.
type LikeResult struct {
	Liked                bool `json:"liked"`
	LikeCount            int  `json:"newLikeCount"`
	IsLikedByCurrentUser bool `json:"isLikedByCurrentUser"`
}

// ListByArticle returns an article's comments oldest first, with author
// summaries and like state for the requesting user (0 means anonymous).
func (s *CommentService) ListByArticle(articleID, currentUserID uint) ([]CommentView, error) {
	comments, err := s.store.CommentsByArticle(articleID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}
	liked, err := s.store.LikedCommentIDs(currentUserID, ids)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, CommentView{
			ID:        comment.ID,
			ArticleID: comment.ArticleID,
			ParentID:  comment.ParentID,
			Content:   comment.Content,
			LikeCount: comment.LikeCount,
			CreatedAt: comment.CreatedAt,
			Author: CommentAuthor{
				ID:          comment.User.ID,
				Username:    comment.User.Username,
				DisplayName: comment.User.DisplayName,
			},
			IsLikedByCurrentUser: liked[comment.ID],
		})
	}
	return views, nil
}

// Create stores a comment and increments the article's comment counter.
// Replies must target a top-level comment on the same article.
func (s *CommentService) Create(articleID, userID uint, parentID *uint, content string) (*db.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentEmpty
	}

	if _, err := s.store.ArticleByID(articleID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if parentID != nil {
		parent, err := s.store.CommentByID(*parentID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.ArticleID != articleID {
			return nil, ErrParentMismatch
		}
		if parent.ParentID != nil {
			return nil, ErrParentNested
		}
	}

	comment := db.Comment{
		ArticleID: articleID,
		UserID:    userID,
		ParentID:  parentID,
		Content:   content,
	}
	if err := s.store.CreateComment(&comment); err != nil {
		return nil, err
	}
	if err := s.store.AddArticleCommentCount(articleID, 1); err != nil &&
		!errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment together with its replies and every like row
// hanging off either, then decrements the article's comment counter by the
// number of comments removed. Only the author or an admin may delete.
func (s *CommentService) Delete(id, userID uint, isAdmin bool) error {
	comment, err := s.store.CommentByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != userID && !isAdmin {
		return ErrNotCommentAuthor
	}

	removed := 1
	if comment.ParentID == nil {
		replies, err := s.store.RepliesByComment(id)
		if err != nil {
			return err
		}
		for _, reply := range replies {
			if err := s.store.DeleteCommentLikesByComment(reply.ID); err != nil {
				return err
			}
			if err := s.store.DeleteComment(reply.ID); err != nil &&
				!errors.Is(err, storage.ErrNotFound) {
				return err
			}
			removed++
		}
	}

	if err := s.store.DeleteCommentLikesByComment(id); err != nil {
		return err
	}
	if err := s.store.DeleteComment(id); err != nil {
		return err
	}
	if err := s.store.AddArticleCommentCount(comment.ArticleID, -removed); err != nil &&
		!errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// ToggleLike flips the user's like state on a comment. The existence row and
// the denormalized counter move together; a duplicate insert from a racing
// toggle is absorbed as "already liked".
func (s *CommentService) ToggleLike(commentID, userID uint) (*LikeResult, error) {
	if _, err := s.store.CommentByID(commentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	liked := false
	_, err := s.store.CommentLike(commentID, userID)
	switch {
	case err == nil:
		if err := s.store.DeleteCommentLike(commentID, userID); err != nil &&
			!errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if err := s.store.AddCommentLikeCount(commentID, -1); err != nil {
			return nil, err
		}
	case errors.Is(err, storage.ErrNotFound):
		liked = true
		createErr := s.store.CreateCommentLike(&db.CommentLike{CommentID: commentID, UserID: userID})
		if createErr != nil && !errors.Is(createErr, storage.ErrDuplicate) {
			return nil, createErr
		}
		if createErr == nil {
			if err := s.store.AddCommentLikeCount(commentID, 1); err != nil {
				return nil, err
			}
		}
	default:
		return nil, err
	}

	comment, err := s.store.CommentByID(commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	_, likeErr := s.store.CommentLike(commentID, userID)
	stillLiked := likeErr == nil

	return &LikeResult{
		Liked:                liked,
		LikeCount:            comment.LikeCount,
		IsLikedByCurrentUser: stillLiked,
	}, nil
}

// IncrementLike is the deprecated increment-only like path kept for older
// clients. It bumps the counter without an existence row.
func (s *CommentService) IncrementLike(commentID uint) (*db.Comment, error) {
	if err := s.store.AddCommentLikeCount(commentID, 1); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	comment, err := s.store.CommentByID(commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
