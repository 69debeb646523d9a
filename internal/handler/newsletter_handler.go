package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/service"
)

type subscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

type unsubscribeRequest struct {
	Token string `json:"token" binding:"required"`
}

// SubscribeNewsletter 订阅邮件列表
func (a *API) SubscribeNewsletter(c *gin.Context) {
	var req subscribeRequest
	if !bindJSON(c, &req, "email is required") {
		return
	}

	sub, err := a.newsletter.Subscribe(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, http.StatusBadRequest, "invalid email address")
		case errors.Is(err, service.ErrAlreadySubscribed):
			respondError(c, http.StatusBadRequest, "email already subscribed")
		default:
			respondError(c, http.StatusInternalServerError, "subscription failed")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"email": sub.Email})
}

// UnsubscribeNewsletter 通过令牌退订
func (a *API) UnsubscribeNewsletter(c *gin.Context) {
	var req unsubscribeRequest
	if !bindJSON(c, &req, "token is required") {
		return
	}

	if err := a.newsletter.Unsubscribe(req.Token); err != nil {
		if errors.Is(err, service.ErrSubscriberNotFound) {
			respondError(c, http.StatusNotFound, "subscriber not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "unsubscribe failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

// GetSubscribers 返回订阅者列表（后台）
func (a *API) GetSubscribers(c *gin.Context) {
	subs, err := a.newsletter.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list subscribers")
		return
	}
	c.JSON(http.StatusOK, subs)
}
