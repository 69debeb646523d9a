package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/service"
)

// GetCategories 返回全部栏目
func (a *API) GetCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory 按 slug 返回单个栏目
func (a *API) GetCategory(c *gin.Context) {
	category, err := a.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory 创建栏目
func (a *API) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if !bindJSON(c, &input, "invalid category payload") {
		return
	}

	category, err := a.categories.Create(input)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		if errors.Is(err, service.ErrCategorySlugTaken) {
			respondError(c, http.StatusBadRequest, "slug already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory 更新栏目
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	var update service.CategoryUpdate
	if !bindJSON(c, &update, "invalid category payload") {
		return
	}

	category, err := a.categories.Update(id, update)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrCategorySlugTaken):
			respondError(c, http.StatusBadRequest, "slug already exists")
		default:
			respondError(c, http.StatusInternalServerError, "failed to update category")
		}
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory 删除栏目，仍有文章时拒绝
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := a.categories.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, http.StatusBadRequest, "category still has articles")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "category not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to delete category")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
