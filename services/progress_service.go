package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sunnah-steps/models"
	"sunnah-steps/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*models.Progress, error)
	RecordRead(ctx context.Context, userID string, req models.RecordReadRequest) (*models.Progress, error)
	ToggleBookmark(ctx context.Context, userID, articleID string) (*models.BookmarkResult, error)
}

type progressService struct {
	progressRepo repositories.ProgressRepository
	articleRepo  repositories.ArticleRepository
	location     *time.Location
	now          func() time.Time
}

// NewProgressService builds the ledger service. Streak days are counted as
// calendar days in loc.
func NewProgressService(progressRepo repositories.ProgressRepository, articleRepo repositories.ArticleRepository, loc *time.Location) ProgressService {
	if loc == nil {
		loc = time.UTC
	}
	return &progressService{
		progressRepo: progressRepo,
		articleRepo:  articleRepo,
		location:     loc,
		now:          time.Now,
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID string) (*models.Progress, error) {
	progress, err := s.progressRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress.PrepareView()
	return progress, nil
}

func (s *progressService) RecordRead(ctx context.Context, userID string, req models.RecordReadRequest) (*models.Progress, error) {
	if req.TimeSpent < 0 {
		return nil, models.ErrInvalidTimeSpent
	}
	if err := s.ensureArticle(ctx, req.ArticleID); err != nil {
		return nil, err
	}

	now := s.now()
	today, yesterday := calendarDays(now, s.location)
	event := &models.ReadEvent{
		UserID:    userID,
		ArticleID: req.ArticleID,
		ReadAt:    now,
		TimeSpent: req.TimeSpent,
	}

	if err := s.progressRepo.RecordRead(ctx, event, today, yesterday); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, models.ErrArticleNotFound
		}
		return nil, err
	}

	return s.GetProgress(ctx, userID)
}

func (s *progressService) ToggleBookmark(ctx context.Context, userID, articleID string) (*models.BookmarkResult, error) {
	if err := s.ensureArticle(ctx, articleID); err != nil {
		return nil, err
	}

	bookmarked, err := s.progressRepo.ToggleBookmark(ctx, userID, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, models.ErrArticleNotFound
		}
		return nil, err
	}

	return &models.BookmarkResult{ArticleID: articleID, Bookmarked: bookmarked}, nil
}

func (s *progressService) ensureArticle(ctx context.Context, articleID string) error {
	if _, err := uuid.Parse(articleID); err != nil {
		return models.ErrInvalidArticleID
	}
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrArticleNotFound
		}
		return fmt.Errorf("find article: %w", err)
	}
	return nil
}

// calendarDays returns today's and yesterday's dates in loc, each expressed
// as midnight UTC so they bind cleanly to a DATE column.
func calendarDays(now time.Time, loc *time.Location) (today, yesterday time.Time) {
	local := now.In(loc)
	today = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return today, today.AddDate(0, 0, -1)
}
