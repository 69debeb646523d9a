package handler

import (
	"github.com/pressroom/internal/service"
	"github.com/pressroom/internal/storage"
	"go.uber.org/zap"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store      storage.Storage
	users      *service.UserService
	categories *service.CategoryService
	articles   *service.ArticleService
	comments   *service.CommentService
	ads        *service.AdvertisementService
	newsletter *service.NewsletterService
	logger     *zap.Logger
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(store storage.Storage, logger *zap.Logger, uploadDir, uploadURL string) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		store:      store,
		users:      service.NewUserService(store),
		categories: service.NewCategoryService(store),
		articles:   service.NewArticleService(store),
		comments:   service.NewCommentService(store),
		ads:        service.NewAdvertisementService(store),
		newsletter: service.NewNewsletterService(store),
		logger:     logger,
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}
