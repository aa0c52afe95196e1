package repositories

import (
	"context"
	"fmt"
	"time"

	"sunnah-steps/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository owns the engagement ledger. Every mutation is a
// field-level update executed by Postgres, never a load-modify-save in Go.
type ProgressRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Progress, error)
	RecordRead(ctx context.Context, event *models.ReadEvent, today, yesterday time.Time) error
	ToggleBookmark(ctx context.Context, userID, articleID string) (bool, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// streakExpr advances the streak when the previous activity was yesterday,
// keeps it on a same-day repeat and restarts it at 1 otherwise (including a
// NULL last_active).
const streakExpr = "CASE WHEN last_active = ? THEN streak + 1 WHEN last_active = ? THEN streak ELSE 1 END"

// ensureProgress inserts the empty ledger row unless one already exists.
// The unique index on user_id makes concurrent first accesses converge on a
// single row.
func ensureProgress(tx *gorm.DB, userID string) error {
	row := models.Progress{ID: uuid.NewString(), UserID: userID}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("ensure progress: %w", translateError(err))
	}
	return nil
}

func articleSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title", "slug", "image", "category", "excerpt", "read_time")
}

func (r *progressRepository) GetOrCreate(ctx context.Context, userID string) (*models.Progress, error) {
	db := r.db.WithContext(ctx)
	if err := ensureProgress(db, userID); err != nil {
		return nil, err
	}

	var progress models.Progress
	err := db.
		Preload("ReadArticles", func(db *gorm.DB) *gorm.DB { return db.Order("read_at asc, id asc") }).
		Preload("ReadArticles.Article", articleSummary).
		Preload("BookmarkedArticles", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("BookmarkedArticles.Article", articleSummary).
		Preload("QuizResults", func(db *gorm.DB) *gorm.DB { return db.Order("completed_at asc") }).
		Where("user_id = ?", userID).
		First(&progress).Error
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return &progress, nil
}

// RecordRead appends the read event and folds it into the counters in one
// transaction. today and yesterday are calendar dates (midnight UTC) in the
// streak time zone.
func (r *progressRepository) RecordRead(ctx context.Context, event *models.ReadEvent, today, yesterday time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProgress(tx, event.UserID); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(event).Error; err != nil {
			return fmt.Errorf("insert read event: %w", translateError(err))
		}

		err := tx.Model(&models.Progress{}).
			Where("user_id = ?", event.UserID).
			Updates(map[string]interface{}{
				"total_reading_time": gorm.Expr("total_reading_time + ?", event.TimeSpent),
				"streak":             gorm.Expr(streakExpr, yesterday, today),
				"last_active":        today,
			}).Error
		if err != nil {
			return fmt.Errorf("update progress counters: %w", err)
		}
		return nil
	})
}

// ToggleBookmark flips membership of articleID and reports whether it is
// bookmarked afterwards. The ledger row is locked for the duration so toggles
// from the same user apply one after another.
func (r *progressRepository) ToggleBookmark(ctx context.Context, userID, articleID string) (bool, error) {
	var bookmarked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProgress(tx, userID); err != nil {
			return err
		}

		var locked models.Progress
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("user_id = ?", userID).
			First(&locked).Error
		if err != nil {
			return fmt.Errorf("lock progress: %w", err)
		}

		res := tx.Where("user_id = ? AND article_id = ?", userID, articleID).Delete(&models.Bookmark{})
		if res.Error != nil {
			return fmt.Errorf("delete bookmark: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			bookmarked = false
			return nil
		}

		bookmark := models.Bookmark{UserID: userID, ArticleID: articleID}
		err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
			DoNothing: true,
		}).Create(&bookmark).Error
		if err != nil {
			return fmt.Errorf("insert bookmark: %w", translateError(err))
		}
		bookmarked = true
		return nil
	})
	return bookmarked, err
}
