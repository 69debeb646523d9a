package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/service"
	"go.uber.org/zap"
)

// GetEligibleAdvertisements 返回指定位置当前可投放的广告
func (a *API) GetEligibleAdvertisements(c *gin.Context) {
	position := c.Query("position")

	ads, err := a.ads.ListEligible(position, time.Now())
	if err != nil {
		// Ad absence must never break the surrounding page: degrade to
		// an empty set instead of an error.
		a.logger.Warn("eligible advertisements lookup failed", zap.Error(err))
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, ads)
}

// GetAllAdvertisements 返回全部广告（后台）
func (a *API) GetAllAdvertisements(c *gin.Context) {
	ads, err := a.ads.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list advertisements")
		return
	}
	c.JSON(http.StatusOK, ads)
}

// GetAdvertisement 返回单个广告；路径段为 all 时返回全部广告（仅管理员）
func (a *API) GetAdvertisement(c *gin.Context) {
	if c.Param("id") == "all" {
		if currentUserID(c) == 0 {
			respondError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if !currentSessionIsAdmin(c) {
			respondError(c, http.StatusForbidden, "admin access required")
			return
		}
		a.GetAllAdvertisements(c)
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid advertisement id")
		return
	}

	ad, err := a.ads.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrAdvertisementNotFound) {
			respondError(c, http.StatusNotFound, "advertisement not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load advertisement")
		return
	}
	c.JSON(http.StatusOK, ad)
}

// CreateAdvertisement 创建广告
func (a *API) CreateAdvertisement(c *gin.Context) {
	var input service.AdvertisementInput
	if !bindJSON(c, &input, "invalid advertisement payload") {
		return
	}

	ad, err := a.ads.Create(input)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create advertisement")
		return
	}
	c.JSON(http.StatusCreated, ad)
}

// UpdateAdvertisement 部分更新广告
func (a *API) UpdateAdvertisement(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid advertisement id")
		return
	}

	var update service.AdvertisementUpdate
	if !bindJSON(c, &update, "invalid advertisement payload") {
		return
	}

	ad, err := a.ads.Update(id, update)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		if errors.Is(err, service.ErrAdvertisementNotFound) {
			respondError(c, http.StatusNotFound, "advertisement not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update advertisement")
		return
	}
	c.JSON(http.StatusOK, ad)
}

// DeleteAdvertisement 删除广告
func (a *API) DeleteAdvertisement(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid advertisement id")
		return
	}

	if err := a.ads.Delete(id); err != nil {
		if errors.Is(err, service.ErrAdvertisementNotFound) {
			respondError(c, http.StatusNotFound, "advertisement not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete advertisement")
		return
	}
	c.Status(http.StatusNoContent)
}

// TrackImpression 广告曝光打点，无论广告是否存在都返回 200
func (a *API) TrackImpression(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid advertisement id")
		return
	}

	if err := a.ads.TrackImpression(id); err != nil {
		a.logger.Warn("impression tracking failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"tracked": true})
}

// TrackClick 广告点击打点，契约与曝光一致
func (a *API) TrackClick(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid advertisement id")
		return
	}

	if err := a.ads.TrackClick(id); err != nil {
		a.logger.Warn("click tracking failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"tracked": true})
}
