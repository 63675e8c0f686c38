package repository

import (
	"database/sql"
	"time"

	"autonews/internal/model"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SaveArticle inserts the article unless one with the same url already exists.
// The conflict clause makes check and insert a single atomic operation, so
// concurrent ingestion runs can never produce duplicate urls. Returns false
// when the url was already present.
func (r *ArticleRepository) SaveArticle(article *model.Article) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO article(title, description, content, url, url_to_image, published_at, source_name, source_url, category)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, article.Title, article.Description, article.Content, article.URL, article.URLToImage,
		nullTime(article.PublishedAt), article.SourceName, article.SourceURL, article.Category).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id
	return true, nil
}

func (r *ArticleRepository) GetNews(limit int, offset int, category string) ([]model.Article, error) {
	query := `
		SELECT id, title, description, content, url, url_to_image, published_at, source_name, source_url, category, created_at
		FROM article
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1 OFFSET $2
	`
	args := []any{limit, offset}

	if category != "" {
		query = `
			SELECT id, title, description, content, url, url_to_image, published_at, source_name, source_url, category, created_at
			FROM article
			WHERE category = $3
			ORDER BY published_at DESC NULLS LAST
			LIMIT $1 OFFSET $2
		`
		args = append(args, category)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

func (r *ArticleRepository) GetNewsTotal(category string) (int, error) {
	var total int
	var err error
	if category != "" {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM article WHERE category = $1`, category).Scan(&total)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM article`).Scan(&total)
	}
	return total, err
}

// GetRecent returns the n most recently published articles. Both the trending
// and breaking endpoints are backed by this query.
func (r *ArticleRepository) GetRecent(n int) ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, description, content, url, url_to_image, published_at, source_name, source_url, category, created_at
		FROM article
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

func scanArticles(rows *sql.Rows) ([]model.Article, error) {
	var articles []model.Article
	for rows.Next() {
		var a model.Article
		var publishedAt sql.NullTime
		err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Content, &a.URL, &a.URLToImage,
			&publishedAt, &a.SourceName, &a.SourceURL, &a.Category, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		if publishedAt.Valid {
			a.PublishedAt = publishedAt.Time
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
