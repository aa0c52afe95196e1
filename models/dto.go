package models

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ProfileResponse struct {
	User User `json:"user"`
}

type ProgressResponse struct {
	Progress *Progress `json:"progress"`
}

type BookmarkRequest struct {
	ArticleID string `json:"articleId" validate:"required,uuid"`
}

type BookmarkResult struct {
	ArticleID  string `json:"articleId"`
	Bookmarked bool   `json:"bookmarked"`
}

type RecordReadRequest struct {
	ArticleID string `json:"articleId" validate:"required,uuid"`
	TimeSpent int    `json:"timeSpent" validate:"min=0,max=1440"`
}

type CreateArticleRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Excerpt  string   `json:"excerpt" validate:"required,max=500"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Image    string   `json:"image" validate:"required,url"`
	Tags     []string `json:"tags" validate:"max=20,dive,max=50"`
	ReadTime int      `json:"readTime" validate:"min=0"`
	Featured bool     `json:"featured"`
}

type UpdateArticleRequest struct {
	Title     *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Excerpt   *string  `json:"excerpt" validate:"omitempty,min=1,max=500"`
	Content   *string  `json:"content" validate:"omitempty,min=1"`
	Category  *string  `json:"category"`
	Image     *string  `json:"image" validate:"omitempty,url"`
	Tags      []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	ReadTime  *int     `json:"readTime" validate:"omitempty,min=1"`
	Featured  *bool    `json:"featured"`
	Published *bool    `json:"published"`
}

type ArticleListParams struct {
	Category string `form:"category"`
	Featured string `form:"featured"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
}
