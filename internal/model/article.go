package model

import "time"

const DefaultCategory = "general"

// Article is a normalized news item. URL is the natural key: the store never
// holds two articles with the same URL, and stored rows are never updated or
// deleted. CreatedAt is assigned by the database at insertion time and reflects
// ingestion time, not publication time.
type Article struct {
	ID          int64
	Title       string
	Description string
	Content     string
	URL         string
	URLToImage  string
	PublishedAt time.Time
	SourceName  string
	SourceURL   string
	Category    string
	CreatedAt   time.Time
}
