package handler

type SourceResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ArticleResponse struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	URL         string         `json:"url"`
	URLToImage  string         `json:"urlToImage"`
	PublishedAt string         `json:"publishedAt"`
	Source      SourceResponse `json:"source"`
	Category    string         `json:"category"`
	CreatedAt   string         `json:"createdAt"`
}

type NewsResponse struct {
	News        []ArticleResponse `json:"news"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}
