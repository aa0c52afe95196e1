package handlers

import (
	"context"
	"sync"
	"time"

	"sunnah-steps/models"

	"gorm.io/gorm"
)

// In-memory repositories so the router can be exercised end to end without
// Postgres.

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (r *memoryUsers) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memoryUsers) setRole(id string, role models.UserRole) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[id]
	u.Role = role
	r.users[id] = u
}

type memoryArticles struct {
	mu       sync.Mutex
	articles map[string]models.Article
}

func (r *memoryArticles) Create(_ context.Context, article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles[article.ID] = *article
	return nil
}

func (r *memoryArticles) GetByID(_ context.Context, id string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *memoryArticles) GetBySlug(_ context.Context, slug string, publishedOnly bool) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.Slug == slug && (a.Published || !publishedOnly) {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryArticles) GetList(_ context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Article{}
	for _, a := range r.articles {
		if a.Published && (params.Category == "" || a.Category == params.Category) {
			a.Content = ""
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryArticles) Update(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.articles[id]
	if title, ok := fields["title"].(string); ok {
		a.Title = title
	}
	r.articles[id] = a
	return nil
}

func (r *memoryArticles) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.articles[id]
	a.Views++
	r.articles[id] = a
	return nil
}

func (r *memoryArticles) DeleteBySlug(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.articles {
		if a.Slug == slug {
			delete(r.articles, id)
			return true, nil
		}
	}
	return false, nil
}

type memoryProgress struct {
	mu   sync.Mutex
	rows map[string]*models.Progress
}

func (r *memoryProgress) row(userID string) *models.Progress {
	p, ok := r.rows[userID]
	if !ok {
		p = &models.Progress{ID: "p-" + userID, UserID: userID}
		r.rows[userID] = p
	}
	return p
}

func (r *memoryProgress) GetOrCreate(_ context.Context, userID string) (*models.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *r.row(userID)
	p.ReadArticles = append([]models.ReadEvent(nil), p.ReadArticles...)
	p.BookmarkedArticles = append([]models.Bookmark(nil), p.BookmarkedArticles...)
	return &p, nil
}

func (r *memoryProgress) RecordRead(_ context.Context, event *models.ReadEvent, today, yesterday time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.row(event.UserID)
	p.ReadArticles = append(p.ReadArticles, *event)
	p.TotalReadingTime += event.TimeSpent
	switch {
	case p.LastActive != nil && p.LastActive.Equal(yesterday):
		p.Streak++
	case p.LastActive != nil && p.LastActive.Equal(today):
	default:
		p.Streak = 1
	}
	p.LastActive = &today
	return nil
}

func (r *memoryProgress) ToggleBookmark(_ context.Context, userID, articleID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.row(userID)
	for i, b := range p.BookmarkedArticles {
		if b.ArticleID == articleID {
			p.BookmarkedArticles = append(p.BookmarkedArticles[:i], p.BookmarkedArticles[i+1:]...)
			return false, nil
		}
	}
	p.BookmarkedArticles = append(p.BookmarkedArticles, models.Bookmark{UserID: userID, ArticleID: articleID})
	return true, nil
}
