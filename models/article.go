package models

import (
	"time"

	"github.com/lib/pq"
)

const DefaultReadTime = 5

var ArticleCategories = []string{
	"Aqeedah",
	"Fiqh",
	"Seerah",
	"Tafseer",
	"Hadith",
	"Islamic History",
	"Contemporary Issues",
}

type Article struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string         `json:"title" gorm:"not null"`
	Slug      string         `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt   string         `json:"excerpt" gorm:"not null"`
	Content   string         `json:"content,omitempty" gorm:"type:text;not null"`
	Category  string         `json:"category" gorm:"not null"`
	Image     string         `json:"image" gorm:"not null"`
	AuthorID  string         `json:"authorId" gorm:"type:uuid;not null"`
	Author    *User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	ReadTime  int            `json:"readTime"`
	Tags      pq.StringArray `json:"tags" gorm:"type:text[]"`
	Views     int64          `json:"views"`
	Published bool           `json:"published"`
	Featured  bool           `json:"featured"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func ValidCategory(category string) bool {
	for _, c := range ArticleCategories {
		if c == category {
			return true
		}
	}
	return false
}
