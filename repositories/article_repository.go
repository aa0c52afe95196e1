package repositories

import (
	"context"

	"sunnah-steps/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Article, error)
	GetList(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	IncrementViews(ctx context.Context, id string) error
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	return translateError(r.db.WithContext(ctx).Create(article).Error)
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Article, error) {
	var article models.Article
	query := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if err := query.First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetList(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Article{}).Where("published = ?", true)

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Featured == "true" {
		query = query.Where("featured = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	err := query.Omit("content").
		Order("created_at desc").
		Offset(offset).
		Limit(params.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return translateError(r.db.WithContext(ctx).Model(&models.Article{ID: id}).Updates(fields).Error)
}

// IncrementViews bumps the counter in place so concurrent readers never lose
// a view.
func (r *articleRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *articleRepository) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Article{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
