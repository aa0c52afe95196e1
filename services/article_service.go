package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sunnah-steps/helper"
	"sunnah-steps/models"
	"sunnah-steps/repositories"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// MaxPageSize caps the article list page size.
const MaxPageSize = 100

type ArticleService interface {
	CreateArticle(ctx context.Context, req models.CreateArticleRequest, authorID string) (*models.Article, error)
	GetArticles(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error)
	GetPublishedArticle(ctx context.Context, slug string) (*models.Article, error)
	UpdateArticle(ctx context.Context, slug string, req models.UpdateArticleRequest) (*models.Article, error)
	DeleteArticle(ctx context.Context, slug string) error
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	policy      *bluemonday.Policy
	now         func() time.Time
}

func NewArticleService(articleRepo repositories.ArticleRepository) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		policy:      bluemonday.UGCPolicy(),
		now:         time.Now,
	}
}

func (s *articleService) CreateArticle(ctx context.Context, req models.CreateArticleRequest, authorID string) (*models.Article, error) {
	if !models.ValidCategory(req.Category) {
		return nil, models.ErrInvalidCategory
	}

	base := helper.Slugify(req.Title)
	if base == "" {
		base = "article"
	}

	readTime := req.ReadTime
	if readTime <= 0 {
		readTime = models.DefaultReadTime
	}

	article := &models.Article{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Slug:      fmt.Sprintf("%s-%d", base, s.now().UnixMilli()),
		Excerpt:   strings.TrimSpace(req.Excerpt),
		Content:   s.policy.Sanitize(req.Content),
		Category:  req.Category,
		Image:     req.Image,
		AuthorID:  authorID,
		ReadTime:  readTime,
		Tags:      normalizeTags(req.Tags),
		Published: true,
		Featured:  req.Featured,
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("create article: %w", err)
	}

	return article, nil
}

func (s *articleService) GetArticles(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}
	if params.Limit > MaxPageSize {
		params.Limit = MaxPageSize
	}
	return s.articleRepo.GetList(ctx, params)
}

// GetPublishedArticle counts a view and returns the article with the
// updated counter.
func (s *articleService) GetPublishedArticle(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.findBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}

	if err := s.articleRepo.IncrementViews(ctx, article.ID); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}

	return s.findBySlug(ctx, slug, true)
}

func (s *articleService) UpdateArticle(ctx context.Context, slug string, req models.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.findBySlug(ctx, slug, false)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Excerpt != nil {
		fields["excerpt"] = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		fields["content"] = s.policy.Sanitize(*req.Content)
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return nil, models.ErrInvalidCategory
		}
		fields["category"] = *req.Category
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Tags != nil {
		fields["tags"] = normalizeTags(req.Tags)
	}
	if req.ReadTime != nil {
		fields["read_time"] = *req.ReadTime
	}
	if req.Featured != nil {
		fields["featured"] = *req.Featured
	}
	if req.Published != nil {
		fields["published"] = *req.Published
	}

	if len(fields) > 0 {
		if err := s.articleRepo.Update(ctx, article.ID, fields); err != nil {
			return nil, fmt.Errorf("update article: %w", err)
		}
	}

	return s.findBySlug(ctx, slug, false)
}

func (s *articleService) DeleteArticle(ctx context.Context, slug string) error {
	deleted, err := s.articleRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if !deleted {
		return models.ErrArticleNotFound
	}
	return nil
}

func (s *articleService) findBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug, publishedOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return article, nil
}

func normalizeTags(tags []string) pq.StringArray {
	out := pq.StringArray{}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
