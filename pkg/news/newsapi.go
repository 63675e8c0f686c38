package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultCategory = "general"

type NewsAPIClient struct {
	apiKey     string
	country    string
	pageSize   int
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey, country string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		country:    country,
		pageSize:   50,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) Fetch() ([]Article, error) {
	url := fmt.Sprintf(
		"https://newsapi.org/v2/top-headlines?apiKey=%s&country=%s&pageSize=%d",
		c.apiKey, c.country, c.pageSize,
	)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi fetch: unexpected status %d", resp.StatusCode)
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			URLToImage:  item.URLToImage,
			PublishedAt: publishedAt,
			SourceName:  item.Source.Name,
			Category:    defaultCategory,
		})
	}

	return articles, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
