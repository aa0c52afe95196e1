package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"sunnah-steps/models"

	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*models.User{}, byEmail: map[string]string{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[user.Email]; taken {
		return gorm.ErrDuplicatedKey
	}
	u := *user
	r.byID[u.ID] = &u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeArticleRepo struct {
	mu       sync.Mutex
	articles map[string]*models.Article
}

func newFakeArticleRepo(articles ...models.Article) *fakeArticleRepo {
	r := &fakeArticleRepo{articles: map[string]*models.Article{}}
	for i := range articles {
		a := articles[i]
		r.articles[a.ID] = &a
	}
	return r
}

func (r *fakeArticleRepo) Create(_ context.Context, article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.Slug == article.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	a := *article
	r.articles[a.ID] = &a
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeArticleRepo) GetBySlug(_ context.Context, slug string, publishedOnly bool) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.Slug == slug && (!publishedOnly || a.Published) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeArticleRepo) GetList(_ context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Article
	for _, a := range r.articles {
		if !a.Published {
			continue
		}
		if params.Category != "" && a.Category != params.Category {
			continue
		}
		if params.Featured == "true" && !a.Featured {
			continue
		}
		cp := *a
		cp.Content = ""
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))

	start := (params.Page - 1) * params.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + params.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *fakeArticleRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			a.Title = v.(string)
		case "excerpt":
			a.Excerpt = v.(string)
		case "content":
			a.Content = v.(string)
		case "category":
			a.Category = v.(string)
		case "featured":
			a.Featured = v.(bool)
		case "published":
			a.Published = v.(bool)
		case "read_time":
			a.ReadTime = v.(int)
		}
	}
	return nil
}

func (r *fakeArticleRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.articles[id]; ok {
		a.Views++
	}
	return nil
}

func (r *fakeArticleRepo) DeleteBySlug(_ context.Context, slug string) (bool, error) {
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

// fakeProgressRepo applies the same counter rules as the SQL update.
type fakeProgressRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: map[string]*models.Progress{}}
}

func (r *fakeProgressRepo) ensure(userID string) *models.Progress {
	p, ok := r.rows[userID]
	if !ok {
		p = &models.Progress{ID: "p-" + userID, UserID: userID}
		r.rows[userID] = p
	}
	return p
}

func (r *fakeProgressRepo) GetOrCreate(_ context.Context, userID string) (*models.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *r.ensure(userID)
	p.ReadArticles = append([]models.ReadEvent(nil), p.ReadArticles...)
	p.BookmarkedArticles = append([]models.Bookmark(nil), p.BookmarkedArticles...)
	return &p, nil
}

func (r *fakeProgressRepo) RecordRead(_ context.Context, event *models.ReadEvent, today, yesterday time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.ensure(event.UserID)
	p.ReadArticles = append(p.ReadArticles, *event)
	p.TotalReadingTime += event.TimeSpent

	switch {
	case p.LastActive != nil && p.LastActive.Equal(yesterday):
		p.Streak++
	case p.LastActive != nil && p.LastActive.Equal(today):
	default:
		p.Streak = 1
	}
	d := today
	p.LastActive = &d
	return nil
}

func (r *fakeProgressRepo) ToggleBookmark(_ context.Context, userID, articleID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.ensure(userID)
	for i, b := range p.BookmarkedArticles {
		if b.ArticleID == articleID {
			p.BookmarkedArticles = append(p.BookmarkedArticles[:i], p.BookmarkedArticles[i+1:]...)
			return false, nil
		}
	}
	p.BookmarkedArticles = append(p.BookmarkedArticles, models.Bookmark{UserID: userID, ArticleID: articleID})
	return true, nil
}
