// Package memdb is a volatile storage.Storage implementation guarded by a
// single mutex. It backs the server when the sqlite database cannot be
// opened, trading durability for availability.
package memdb

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
	"gorm.io/gorm"
)

// MemDB keeps every entity in maps keyed by id. All methods are safe for
// concurrent use; multi-step counter updates run under one lock hold.
type MemDB struct {
	mu sync.Mutex

	nextID uint

	users        map[uint]db.User
	categories   map[uint]db.Category
	articles     map[uint]db.Article
	comments     map[uint]db.Comment
	commentLikes map[uint]db.CommentLike
	articleLikes map[uint]db.Like
	ads          map[uint]db.Advertisement
	subscribers  map[uint]db.NewsletterSubscriber
}

// New returns an empty in-memory store.
func New() *MemDB {
	return &MemDB{
		users:        make(map[uint]db.User),
		categories:   make(map[uint]db.Category),
		articles:     make(map[uint]db.Article),
		comments:     make(map[uint]db.Comment),
		commentLikes: make(map[uint]db.CommentLike),
		articleLikes: make(map[uint]db.Like),
		ads:          make(map[uint]db.Advertisement),
		subscribers:  make(map[uint]db.NewsletterSubscriber),
	}
}

// stamp assigns the next id and creation timestamps, mirroring what gorm
// does on insert.
func (m *MemDB) stamp(model *gorm.Model) {
	m.nextID++
	model.ID = m.nextID
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now
}

// users

func (m *MemDB) CreateUser(user *db.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return storage.ErrDuplicate
		}
	}
	m.stamp(&user.Model)
	m.users[user.ID] = *user
	return nil
}

func (m *MemDB) UserByID(id uint) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (m *MemDB) UserByUsername(username string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

// categories

func (m *MemDB) CreateCategory(category *db.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.Slug == category.Slug {
			return storage.ErrDuplicate
		}
	}
	m.stamp(&category.Model)
	m.categories[category.ID] = *category
	return nil
}

func (m *MemDB) Categories() ([]db.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	categories := make([]db.Category, 0, len(m.categories))
	for _, category := range m.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (m *MemDB) CategoryByID(id uint) (*db.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	category, ok := m.categories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &category, nil
}

func (m *MemDB) CategoryBySlug(slug string) (*db.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, category := range m.categories {
		if category.Slug == slug {
			c := category
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *MemDB) SaveCategory(category *db.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[category.ID]; !ok {
		return storage.ErrNotFound
	}
	category.UpdatedAt = time.Now()
	m.categories[category.ID] = *category
	return nil
}

func (m *MemDB) DeleteCategory(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *MemDB) AddCategoryPostCount(id uint, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addCategoryPostCountLocked(id, delta)
	return nil
}

func (m *MemDB) TransferCategoryPostCount(fromID, toID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fromID != 0 {
		m.addCategoryPostCountLocked(fromID, -1)
	}
	if toID != 0 {
		m.addCategoryPostCountLocked(toID, 1)
	}
	return nil
}

func (m *MemDB) addCategoryPostCountLocked(id uint, delta int) {
	category, ok := m.categories[id]
	if !ok {
		return
	}
	category.PostCount += delta
	if category.PostCount < 0 {
		category.PostCount = 0
	}
	category.UpdatedAt = time.Now()
	m.categories[id] = category
}

// articles

func (m *MemDB) CreateArticle(article *db.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.articles {
		if existing.Slug == article.Slug {
			return storage.ErrDuplicate
		}
	}
	m.stamp(&article.Model)
	m.articles[article.ID] = *article
	return nil
}

func (m *MemDB) Articles(filter storage.ArticleFilter) ([]db.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	articles := make([]db.Article, 0, len(m.articles))
	for _, article := range m.articles {
		if filter.CategoryID != 0 && article.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Featured != nil && article.IsFeatured != *filter.Featured {
			continue
		}
		if filter.Breaking != nil && article.IsBreaking != *filter.Breaking {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(article.Title), needle) &&
				!strings.Contains(strings.ToLower(article.Excerpt), needle) {
				continue
			}
		}
		m.attachArticleRefsLocked(&article)
		articles = append(articles, article)
	}

	sort.Slice(articles, func(i, j int) bool {
		if articles[i].CreatedAt.Equal(articles[j].CreatedAt) {
			return articles[i].ID > articles[j].ID
		}
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(articles) {
			return []db.Article{}, nil
		}
		articles = articles[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(articles) {
		articles = articles[:filter.Limit]
	}
	return articles, nil
}

func (m *MemDB) ArticleByID(id uint) (*db.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	article, ok := m.articles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	m.attachArticleRefsLocked(&article)
	return &article, nil
}

func (m *MemDB) ArticleBySlug(slug string) (*db.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, article := range m.articles {
		if article.Slug == slug {
			a := article
			m.attachArticleRefsLocked(&a)
			return &a, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *MemDB) SaveArticle(article *db.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[article.ID]; !ok {
		return storage.ErrNotFound
	}
	article.UpdatedAt = time.Now()
	stored := *article
	stored.Category = db.Category{}
	stored.Author = db.User{}
	m.articles[article.ID] = stored
	return nil
}

func (m *MemDB) DeleteArticle(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

func (m *MemDB) AddArticleLikeCount(id uint, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	article, ok := m.articles[id]
	if !ok {
		return storage.ErrNotFound
	}
	article.LikeCount = clamp(article.LikeCount + delta)
	m.articles[id] = article
	return nil
}

func (m *MemDB) AddArticleCommentCount(id uint, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	article, ok := m.articles[id]
	if !ok {
		return storage.ErrNotFound
	}
	article.CommentCount = clamp(article.CommentCount + delta)
	m.articles[id] = article
	return nil
}

func (m *MemDB) attachArticleRefsLocked(article *db.Article) {
	if category, ok := m.categories[article.CategoryID]; ok {
		article.Category = category
	}
	if author, ok := m.users[article.AuthorID]; ok {
		article.Author = author
	}
}

// comments

func (m *MemDB) CreateComment(comment *db.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stamp(&comment.Model)
	m.comments[comment.ID] = *comment
	return nil
}

func (m *MemDB) CommentByID(id uint) (*db.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comment, ok := m.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if user, ok := m.users[comment.UserID]; ok {
		comment.User = user
	}
	return &comment, nil
}

func (m *MemDB) CommentsByArticle(articleID uint) ([]db.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comments := make([]db.Comment, 0)
	for _, comment := range m.comments {
		if comment.ArticleID != articleID {
			continue
		}
		if user, ok := m.users[comment.UserID]; ok {
			comment.User = user
		}
		comments = append(comments, comment)
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MemDB) RepliesByComment(parentID uint) ([]db.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	replies := make([]db.Comment, 0)
	for _, comment := range m.comments {
		if comment.ParentID != nil && *comment.ParentID == parentID {
			replies = append(replies, comment)
		}
	}
	sort.Slice(replies, func(i, j int) bool { return replies[i].ID < replies[j].ID })
	return replies, nil
}

func (m *MemDB) DeleteComment(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *MemDB) AddCommentLikeCount(id uint, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	comment, ok := m.comments[id]
	if !ok {
		return storage.ErrNotFound
	}
	comment.LikeCount = clamp(comment.LikeCount + delta)
	m.comments[id] = comment
	return nil
}

// comment likes

func (m *MemDB) CommentLike(commentID, userID uint) (*db.CommentLike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, like := range m.commentLikes {
		if like.CommentID == commentID && like.UserID == userID {
			l := like
			return &l, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *MemDB) CreateCommentLike(like *db.CommentLike) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.commentLikes {
		if existing.CommentID == like.CommentID && existing.UserID == like.UserID {
			return storage.ErrDuplicate
		}
	}
	m.stamp(&like.Model)
	m.commentLikes[like.ID] = *like
	return nil
}

func (m *MemDB) DeleteCommentLike(commentID, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, like := range m.commentLikes {
		if like.CommentID == commentID && like.UserID == userID {
			delete(m.commentLikes, id)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *MemDB) DeleteCommentLikesByComment(commentID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, like := range m.commentLikes {
		if like.CommentID == commentID {
			delete(m.commentLikes, id)
		}
	}
	return nil
}

func (m *MemDB) LikedCommentIDs(userID uint, commentIDs []uint) (map[uint]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[uint]bool, len(commentIDs))
	for _, id := range commentIDs {
		wanted[id] = true
	}

	liked := make(map[uint]bool)
	for _, like := range m.commentLikes {
		if like.UserID == userID && wanted[like.CommentID] {
			liked[like.CommentID] = true
		}
	}
	return liked, nil
}

// article likes

func (m *MemDB) ArticleLike(articleID, userID uint) (*db.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, like := range m.articleLikes {
		if like.ArticleID == articleID && like.UserID == userID {
			l := like
			return &l, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *MemDB) CreateArticleLike(like *db.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.articleLikes {
		if existing.ArticleID == like.ArticleID && existing.UserID == like.UserID {
			return storage.ErrDuplicate
		}
	}
	m.stamp(&like.Model)
	m.articleLikes[like.ID] = *like
	return nil
}

func (m *MemDB) DeleteArticleLike(articleID, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, like := range m.articleLikes {
		if like.ArticleID == articleID && like.UserID == userID {
			delete(m.articleLikes, id)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *MemDB) DeleteArticleLikesByArticle(articleID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, like := range m.articleLikes {
		if like.ArticleID == articleID {
			delete(m.articleLikes, id)
		}
	}
	return nil
}

// advertisements

func (m *MemDB) CreateAdvertisement(ad *db.Advertisement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stamp(&ad.Model)
	m.ads[ad.ID] = *ad
	return nil
}

func (m *MemDB) Advertisements() ([]db.Advertisement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ads := make([]db.Advertisement, 0, len(m.ads))
	for _, ad := range m.ads {
		ads = append(ads, ad)
	}
	sort.Slice(ads, func(i, j int) bool { return ads[i].ID > ads[j].ID })
	return ads, nil
}

func (m *MemDB) AdvertisementByID(id uint) (*db.Advertisement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ad, ok := m.ads[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &ad, nil
}

func (m *MemDB) EligibleAdvertisements(position string, now time.Time) ([]db.Advertisement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ads := make([]db.Advertisement, 0)
	for _, ad := range m.ads {
		if ad.Position != position || !ad.IsActive {
			continue
		}
		if now.Before(ad.StartDate) || now.After(ad.EndDate) {
			continue
		}
		ads = append(ads, ad)
	}
	sort.Slice(ads, func(i, j int) bool {
		if ads[i].Priority == ads[j].Priority {
			return ads[i].ID < ads[j].ID
		}
		return ads[i].Priority > ads[j].Priority
	})
	return ads, nil
}

func (m *MemDB) SaveAdvertisement(ad *db.Advertisement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ads[ad.ID]; !ok {
		return storage.ErrNotFound
	}
	ad.UpdatedAt = time.Now()
	m.ads[ad.ID] = *ad
	return nil
}

func (m *MemDB) DeleteAdvertisement(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ads[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.ads, id)
	return nil
}

func (m *MemDB) AddImpression(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ad, ok := m.ads[id]
	if !ok {
		return storage.ErrNotFound
	}
	ad.Impressions++
	m.ads[id] = ad
	return nil
}

func (m *MemDB) AddClick(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ad, ok := m.ads[id]
	if !ok {
		return storage.ErrNotFound
	}
	ad.Clicks++
	m.ads[id] = ad
	return nil
}

// newsletter

func (m *MemDB) CreateSubscriber(sub *db.NewsletterSubscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.subscribers {
		if existing.Email == sub.Email {
			return storage.ErrDuplicate
		}
	}
	m.stamp(&sub.Model)
	m.subscribers[sub.ID] = *sub
	return nil
}

func (m *MemDB) Subscribers() ([]db.NewsletterSubscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs := make([]db.NewsletterSubscriber, 0, len(m.subscribers))
	for _, sub := range m.subscribers {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID > subs[j].ID })
	return subs, nil
}

func (m *MemDB) SubscriberByEmail(email string) (*db.NewsletterSubscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subscribers {
		if sub.Email == email {
			s := sub
			return &s, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *MemDB) SubscriberByToken(token string) (*db.NewsletterSubscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subscribers {
		if sub.UnsubscribeToken == token {
			s := sub
			return &s, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *MemDB) DeleteSubscriber(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subscribers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.subscribers, id)
	return nil
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
