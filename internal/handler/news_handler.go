package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"autonews/internal/model"

	"github.com/gin-gonic/gin"
)

const recentArticleCount = 5

type ArticleStore interface {
	GetNews(limit, offset int, category string) ([]model.Article, error)
	GetNewsTotal(category string) (int, error)
	GetRecent(n int) ([]model.Article, error)
}

// IngestStatus reports when the fetcher last completed a cycle. Optional; the
// health endpoint works without it.
type IngestStatus interface {
	LastFetch() (time.Time, error)
}

type NewsHandler struct {
	repository ArticleStore
	status     IngestStatus
}

func NewNewsHandler(repository ArticleStore, status IngestStatus) *NewsHandler {
	return &NewsHandler{repository: repository, status: status}
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	page := getQueryPage(c)
	limit := getQueryLimit(c)
	category := c.Query("category")
	offset := (page - 1) * limit

	articles, err := h.repository.GetNews(limit, offset, category)
	if err != nil {
		slog.Error("error fetching news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	total, err := h.repository.GetNewsTotal(category)
	if err != nil {
		slog.Error("error fetching news total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	totalPages := (total + limit - 1) / limit

	c.JSON(http.StatusOK, NewsResponse{
		News:        toArticleResponses(articles),
		TotalPages:  totalPages,
		CurrentPage: page,
	})
}

func (h *NewsHandler) GetTrending(c *gin.Context) {
	articles, err := h.repository.GetRecent(recentArticleCount)
	if err != nil {
		slog.Error("error fetching trending news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toArticleResponses(articles))
}

// GetBreaking issues the same recency query as GetTrending; the two endpoints
// are intentionally identical in behavior.
func (h *NewsHandler) GetBreaking(c *gin.Context) {
	articles, err := h.repository.GetRecent(recentArticleCount)
	if err != nil {
		slog.Error("error fetching breaking news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toArticleResponses(articles))
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetNewsTotal("")
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	res := gin.H{
		"status":   "healthy",
		"database": "connected",
	}

	if h.status != nil {
		if t, err := h.status.LastFetch(); err == nil {
			res["lastFetch"] = t.Format(time.RFC3339)
		}
	}

	c.JSON(http.StatusOK, res)
}

func toArticleResponses(articles []model.Article) []ArticleResponse {
	res := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		publishedAt := ""
		if !a.PublishedAt.IsZero() {
			publishedAt = a.PublishedAt.Format(time.RFC3339)
		}

		res = append(res, ArticleResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			PublishedAt: publishedAt,
			Source: SourceResponse{
				Name: a.SourceName,
				URL:  a.SourceURL,
			},
			Category:  a.Category,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}
	return res
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsed
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQueryPage(c *gin.Context) int {
	page := getQueryInt("page", 1, c)
	if page < 1 {
		slog.Warn("invalid query parameter, using default", "param", "page", "value", page, "default", 1)
		return 1
	}
	return page
}
