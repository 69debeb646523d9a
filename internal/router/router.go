package router

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/handler"
	"go.uber.org/zap"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("pressroom_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	apiGroup := r.Group("/api")
	{
		// 无需登录的读取与打点接口
		apiGroup.GET("/advertisements", api.GetEligibleAdvertisements)
		// GetAdvertisement also serves the admin-only /advertisements/all
		// listing; the literal segment would conflict with :id in gin's
		// tree, so the handler gates that branch itself.
		apiGroup.GET("/advertisements/:id", api.GetAdvertisement)
		apiGroup.POST("/advertisements/impression/:id", api.TrackImpression)
		apiGroup.POST("/advertisements/click/:id", api.TrackClick)

		apiGroup.GET("/articles", api.GetArticles)
		// :id also accepts a slug; gin keeps one wildcard per segment so a
		// separate /articles/slug/... route would conflict with it.
		apiGroup.GET("/articles/:id", api.GetArticle)
		apiGroup.GET("/articles/:id/comments", api.GetArticleComments)

		apiGroup.GET("/categories", api.GetCategories)
		apiGroup.GET("/categories/:slug", api.GetCategory)

		apiGroup.POST("/newsletter/subscribe", api.SubscribeNewsletter)
		apiGroup.POST("/newsletter/unsubscribe", api.UnsubscribeNewsletter)

		apiGroup.POST("/auth/register", api.Register)
		apiGroup.POST("/auth/login", api.Login)
		apiGroup.POST("/auth/logout", api.Logout)
		apiGroup.GET("/auth/me", api.Me)

		// 需要登录的用户操作
		auth := apiGroup.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.POST("/articles/:id/comments", api.CreateComment)
			auth.POST("/articles/:id/like", api.ToggleArticleLike)
			auth.DELETE("/comments/:id", api.DeleteComment)
			auth.POST("/comments/:id/like", api.IncrementCommentLike)
			auth.POST("/comments/:id/like/toggle", api.ToggleCommentLike)
			auth.POST("/upload", api.UploadImage)
		}

		// 仅管理员可用的管理接口
		admin := apiGroup.Group("")
		admin.Use(handler.AuthRequired(), handler.AdminRequired())
		{
			admin.POST("/advertisements", api.CreateAdvertisement)
			admin.PATCH("/advertisements/:id", api.UpdateAdvertisement)
			admin.DELETE("/advertisements/:id", api.DeleteAdvertisement)

			admin.POST("/articles", api.CreateArticle)
			admin.PATCH("/articles/:id", api.UpdateArticle)
			admin.DELETE("/articles/:id", api.DeleteArticle)

			admin.POST("/categories", api.CreateCategory)
			admin.PATCH("/categories/:id", api.UpdateCategory)
			admin.DELETE("/categories/:id", api.DeleteCategory)

			admin.GET("/newsletter/subscribers", api.GetSubscribers)
		}
	}

	return r
}

// requestLogger 以结构化字段记录每个请求的概要信息
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.Int("status_code", c.Writer.Status()),
			zap.Int("response_length", c.Writer.Size()),
			zap.String("method", c.Request.Method),
			zap.String("uri", c.Request.RequestURI),
			zap.String("remote_addr", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("errors", c.Errors.String()),
		)
	}
}
