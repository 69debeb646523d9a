package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/service"
)

type commentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

// GetArticleComments 返回文章的评论，并为当前用户标记点赞状态
func (a *API) GetArticleComments(c *gin.Context) {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid article id")
		return
	}

	comments, err := a.comments.ListByArticle(articleID, currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment 发表评论或回复
func (a *API) CreateComment(c *gin.Context) {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid article id")
		return
	}

	var req commentRequest
	if !bindJSON(c, &req, "comment content is required") {
		return
	}

	comment, err := a.comments.Create(articleID, currentUserID(c), req.ParentID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			respondError(c, http.StatusNotFound, "article not found")
		case errors.Is(err, service.ErrCommentEmpty):
			respondError(c, http.StatusBadRequest, "comment content is required")
		case errors.Is(err, service.ErrParentNotFound):
			respondError(c, http.StatusBadRequest, "parent comment not found")
		case errors.Is(err, service.ErrParentMismatch):
			respondError(c, http.StatusBadRequest, "parent comment belongs to another article")
		case errors.Is(err, service.ErrParentNested):
			respondError(c, http.StatusBadRequest, "replies to replies are not supported")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create comment")
		}
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment 删除评论，仅作者或管理员可操作
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	session := currentUserID(c)
	isAdmin := false
	if user, err := a.users.ByID(session); err == nil {
		isAdmin = user.IsAdmin
	}

	if err := a.comments.Delete(id, session, isAdmin); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			respondError(c, http.StatusNotFound, "comment not found")
		case errors.Is(err, service.ErrNotCommentAuthor):
			respondError(c, http.StatusForbidden, "comment belongs to another user")
		default:
			respondError(c, http.StatusInternalServerError, "failed to delete comment")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleCommentLike 切换当前用户对评论的点赞状态
func (a *API) ToggleCommentLike(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	result, err := a.comments.ToggleLike(id, currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "comment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to toggle like")
		return
	}
	c.JSON(http.StatusOK, result)
}

// IncrementCommentLike 旧版点赞接口，只增不减。
// Deprecated: clients should use the toggle endpoint.
func (a *API) IncrementCommentLike(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	comment, err := a.comments.IncrementLike(id)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "comment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to like comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": comment.ID, "likeCount": comment.LikeCount})
}
