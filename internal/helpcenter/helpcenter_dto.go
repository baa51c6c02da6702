package helpcenter

type CreateArticleRequest struct {
	Title string `json:"title" binding:"required,min=3,max=200"`
	Topic string `json:"topic" binding:"required,min=2,max=50"`
	Body  string `json:"body" binding:"required"`
}

type UpdateArticleRequest struct {
	Title     string `json:"title" binding:"required,min=3,max=200"`
	Topic     string `json:"topic" binding:"required,min=2,max=50"`
	Body      string `json:"body" binding:"required"`
	Published *bool  `json:"published" binding:"required"`
}

type ListArticleQuery struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Topic  string `form:"topic"`
	Search string `form:"search"`
}

type ArticleSummaryResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Topic       string `json:"topic"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

type ArticleResponse struct {
	ArticleSummaryResponse
	Body      string `json:"body"`
	Published bool   `json:"published"`
	UpdatedAt string `json:"updatedAt"`
}
