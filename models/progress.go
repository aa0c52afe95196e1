package models

import (
	"time"
)

// Weekly goal targets shown on the dashboard.
const (
	WeeklyArticleGoal        = 5
	WeeklyReadingMinutesGoal = 30
)

// Progress is the per-user engagement ledger. One row per user, created on
// first dashboard, read or bookmark access.
type Progress struct {
	ID                 string       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID             string       `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	ReadArticles       []ReadEvent  `json:"readArticles" gorm:"foreignKey:UserID;references:UserID"`
	BookmarkedArticles []Bookmark   `json:"bookmarkedArticles" gorm:"foreignKey:UserID;references:UserID"`
	QuizResults        []QuizResult `json:"quizResults" gorm:"foreignKey:UserID;references:UserID"`
	TotalReadingTime   int          `json:"totalReadingTime" gorm:"not null"`
	Streak             int          `json:"streak" gorm:"not null"`
	LastActive         *time.Time   `json:"lastActive" gorm:"type:date"`
	WeeklyGoals        WeeklyGoals  `json:"weeklyGoals" gorm:"-"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

func (Progress) TableName() string {
	return "progresses"
}

// ReadEvent is one entry of the append-only reading history. Repeat reads of
// the same article are separate entries.
type ReadEvent struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    string    `json:"-" gorm:"type:uuid;not null"`
	ArticleID string    `json:"articleId" gorm:"type:uuid;not null"`
	Article   *Article  `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	ReadAt    time.Time `json:"readAt" gorm:"not null"`
	TimeSpent int       `json:"timeSpent" gorm:"not null"`
}

type Bookmark struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    string    `json:"-" gorm:"type:uuid;not null"`
	ArticleID string    `json:"articleId" gorm:"type:uuid;not null"`
	Article   *Article  `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	CreatedAt time.Time `json:"createdAt"`
}

type QuizResult struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	UserID         string    `json:"-" gorm:"type:uuid;not null"`
	QuizID         string    `json:"quizId" gorm:"type:uuid;not null"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Passed         bool      `json:"passed"`
	CompletedAt    time.Time `json:"completedAt"`
}

// WeeklyGoals is derived from the ledger at read time and never stored.
type WeeklyGoals struct {
	ArticlesRead     int     `json:"articlesRead"`
	ArticlesTarget   int     `json:"articlesTarget"`
	ArticlesProgress float64 `json:"articlesProgress"`
	ReadingMinutes   int     `json:"readingMinutes"`
	ReadingTarget    int     `json:"readingTarget"`
	ReadingProgress  float64 `json:"readingProgress"`
}

func ComputeWeeklyGoals(articlesRead, readingMinutes int) WeeklyGoals {
	return WeeklyGoals{
		ArticlesRead:     articlesRead,
		ArticlesTarget:   WeeklyArticleGoal,
		ArticlesProgress: float64(min(articlesRead, WeeklyArticleGoal)) / WeeklyArticleGoal,
		ReadingMinutes:   readingMinutes,
		ReadingTarget:    WeeklyReadingMinutesGoal,
		ReadingProgress:  float64(min(readingMinutes, WeeklyReadingMinutesGoal)) / WeeklyReadingMinutesGoal,
	}
}

// PrepareView fills the projections and replaces nil collections so the
// payload always carries arrays.
func (p *Progress) PrepareView() {
	if p.ReadArticles == nil {
		p.ReadArticles = []ReadEvent{}
	}
	if p.BookmarkedArticles == nil {
		p.BookmarkedArticles = []Bookmark{}
	}
	if p.QuizResults == nil {
		p.QuizResults = []QuizResult{}
	}
	p.WeeklyGoals = ComputeWeeklyGoals(len(p.ReadArticles), p.TotalReadingTime)
}

func (p *Progress) IsBookmarked(articleID string) bool {
	for _, b := range p.BookmarkedArticles {
		if b.ArticleID == articleID {
			return true
		}
	}
	return false
}
