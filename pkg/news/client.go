package news

import "time"

// Article is the normalized shape every source adapter produces. Only URL is
// required; a zero PublishedAt means the source did not supply a usable date.
type Article struct {
	Title       string
	Description string
	Content     string
	URL         string
	URLToImage  string
	PublishedAt time.Time
	SourceName  string
	SourceURL   string
	Category    string
}

type Source interface {
	Fetch() ([]Article, error)
	Name() string
}
