package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/service"
	"github.com/pressroom/internal/storage"
	"go.uber.org/zap"
)

// GetArticles 返回文章列表，支持栏目、置顶、突发与关键字过滤
func (a *API) GetArticles(c *gin.Context) {
	filter := storage.ArticleFilter{
		Search: c.Query("search"),
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}
	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
	}
	if raw := c.Query("breaking"); raw != "" {
		breaking := raw == "true" || raw == "1"
		filter.Breaking = &breaking
	}

	var (
		articles []db.Article
		err      error
	)
	if slug := c.Query("category"); slug != "" {
		articles, err = a.articles.ListByCategorySlug(slug, filter)
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusOK, []any{})
			return
		}
	} else {
		articles, err = a.articles.List(filter)
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list articles")
		return
	}

	response := make([]gin.H, 0, len(articles))
	for i := range articles {
		response = append(response, a.articleJSON(&articles[i], false))
	}
	c.JSON(http.StatusOK, response)
}

// GetArticle 返回单篇文章，路径段既接受数字 ID 也接受 slug，
// 正文渲染为净化后的 HTML
func (a *API) GetArticle(c *gin.Context) {
	var (
		article *db.Article
		err     error
	)
	if id, parseErr := parseUintParam(c, "id"); parseErr == nil {
		article, err = a.articles.Get(id)
	} else {
		article, err = a.articles.GetBySlug(c.Param("id"))
	}
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "article not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load article")
		return
	}
	c.JSON(http.StatusOK, a.articleJSON(article, true))
}

// CreateArticle 创建文章
func (a *API) CreateArticle(c *gin.Context) {
	var input service.ArticleInput
	if !bindJSON(c, &input, "invalid article payload") {
		return
	}

	article, err := a.articles.Create(currentUserID(c), input)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusBadRequest, "category does not exist")
		case errors.Is(err, service.ErrArticleSlugTaken):
			respondError(c, http.StatusBadRequest, "slug already exists")
		default:
			respondError(c, http.StatusInternalServerError, "failed to create article")
		}
		return
	}
	c.JSON(http.StatusCreated, a.articleJSON(article, false))
}

// UpdateArticle 部分更新文章
func (a *API) UpdateArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid article id")
		return
	}

	var update service.ArticleUpdate
	if !bindJSON(c, &update, "invalid article payload") {
		return
	}

	article, err := a.articles.Update(id, update)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			respondError(c, http.StatusNotFound, "article not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusBadRequest, "category does not exist")
		case errors.Is(err, service.ErrArticleSlugTaken):
			respondError(c, http.StatusBadRequest, "slug already exists")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update article")
		}
		return
	}
	c.JSON(http.StatusOK, a.articleJSON(article, false))
}

// DeleteArticle 删除文章并级联清理评论与点赞
func (a *API) DeleteArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := a.articles.Delete(id); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "article not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleArticleLike 切换当前用户对文章的点赞状态
func (a *API) ToggleArticleLike(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid article id")
		return
	}

	result, err := a.articles.ToggleLike(id, currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "article not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to toggle like")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *API) articleJSON(article *db.Article, withBody bool) gin.H {
	payload := gin.H{
		"id":           article.ID,
		"title":        article.Title,
		"slug":         article.Slug,
		"excerpt":      article.Excerpt,
		"coverImage":   article.CoverImage,
		"categoryId":   article.CategoryID,
		"authorId":     article.AuthorID,
		"likeCount":    article.LikeCount,
		"commentCount": article.CommentCount,
		"isFeatured":   article.IsFeatured,
		"isBreaking":   article.IsBreaking,
		"createdAt":    article.CreatedAt,
		"updatedAt":    article.UpdatedAt,
	}
	if article.Category.ID != 0 {
		payload["category"] = gin.H{
			"id":   article.Category.ID,
			"name": article.Category.Name,
			"slug": article.Category.Slug,
		}
	}
	if article.Author.ID != 0 {
		payload["author"] = gin.H{
			"id":          article.Author.ID,
			"username":    article.Author.Username,
			"displayName": article.Author.DisplayName,
		}
	}
	if withBody {
		payload["content"] = article.Content
		rendered, err := service.RenderMarkdown(article.Content)
		if err != nil {
			a.logger.Warn("markdown rendering failed", zap.Uint("article", article.ID), zap.Error(err))
		} else {
			payload["contentHtml"] = rendered
		}
	}
	return payload
}
