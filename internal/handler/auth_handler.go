package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/service"
)

const (
	sessionUserIDKey  = "user_id"
	sessionIsAdminKey = "is_admin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 处理注册请求并直接建立会话
func (a *API) Register(c *gin.Context) {
	var req service.RegisterInput
	if !bindJSON(c, &req, "invalid registration payload") {
		return
	}

	user, err := a.users.Register(req)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		if errors.Is(err, service.ErrUsernameTaken) {
			respondError(c, http.StatusBadRequest, "username or email already taken")
			return
		}
		respondError(c, http.StatusInternalServerError, "registration failed")
		return
	}

	if err := setSessionUser(c, user); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": userJSON(user)})
}

// Login 处理登录请求
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "username and password are required") {
		return
	}

	user, err := a.users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "login failed")
		return
	}

	if err := setSessionUser(c, user); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to clear session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me 返回当前登录用户
func (a *API) Me(c *gin.Context) {
	userID := currentUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "not logged in")
		return
	}

	user, err := a.users.ByID(userID)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "not logged in")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// AuthRequired rejects requests without a logged-in session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUserID(c) == 0 {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired rejects sessions that do not belong to an admin account.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentSessionIsAdmin(c) {
			respondError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentSessionIsAdmin reports whether the session belongs to an admin.
func currentSessionIsAdmin(c *gin.Context) bool {
	session := sessions.Default(c)
	isAdmin, ok := session.Get(sessionIsAdminKey).(bool)
	return ok && isAdmin
}

func setSessionUser(c *gin.Context, user *db.User) error {
	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionIsAdminKey, user.IsAdmin)
	return session.Save()
}

// currentUserID returns the session's user id, or 0 for anonymous requests.
func currentUserID(c *gin.Context) uint {
	session := sessions.Default(c)
	if id, ok := session.Get(sessionUserIDKey).(uint); ok {
		return id
	}
	return 0
}

func userJSON(user *db.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"displayName": user.DisplayName,
		"isAdmin":     user.IsAdmin,
	}
}
