package news

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultFeeds is the fixed set of feeds polled when none are configured.
var DefaultFeeds = []string{
	"https://feeds.bbci.co.uk/news/rss.xml",
	"http://rss.cnn.com/rss/cnn_topstories.rss",
	"https://feeds.reuters.com/reuters/topNews",
	"https://www.theguardian.com/international/rss",
}

type RSSClient struct {
	feedURLs   []string
	httpClient *http.Client
}

func NewRSSClient(feedURLs []string) *RSSClient {
	return &RSSClient{
		feedURLs:   feedURLs,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *RSSClient) Name() string {
	return "RSS"
}

// Fetch processes each configured feed in order. A feed that fails to fetch or
// parse is logged and skipped; it must never stop the remaining feeds. The
// returned slice is the union of all items from the feeds that succeeded.
func (c *RSSClient) Fetch() ([]Article, error) {
	var articles []Article

	for _, feedURL := range c.feedURLs {
		items, err := c.fetchFeed(feedURL)
		if err != nil {
			slog.Error("error fetching RSS feed", "feed", feedURL, "error", err)
			continue
		}
		articles = append(articles, items...)
	}

	return articles, nil
}

func (c *RSSClient) fetchFeed(feedURL string) ([]Article, error) {
	req, err := http.NewRequest("GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("rss request: %w", err)
	}
	req.Header.Set("User-Agent", "autonews/1.0 (+feed aggregator)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rss fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rss fetch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rss read: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("rss parse: %w", err)
	}

	articles := make([]Article, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		articles = append(articles, Article{
			Title:       item.Title,
			Description: stripHTML(item.Description),
			URL:         item.Link,
			URLToImage:  item.Enclosure.URL,
			PublishedAt: parsePubDate(item.PubDate),
			SourceName:  feed.Channel.Title,
			SourceURL:   feedURL,
			Category:    defaultCategory,
		})
	}

	return articles, nil
}

func parsePubDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// stripHTML reduces a feed description to plain text the way snippet fields
// usually are: tags removed, whitespace collapsed.
func stripHTML(text string) string {
	var b strings.Builder
	inTag := false
	for _, ch := range text {
		switch {
		case ch == '<':
			inTag = true
		case ch == '>':
			inTag = false
		case !inTag:
			b.WriteRune(ch)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

type rssFeed struct {
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string       `xml:"title"`
	Link        string       `xml:"link"`
	Description string       `xml:"description"`
	PubDate     string       `xml:"pubDate"`
	Enclosure   rssEnclosure `xml:"enclosure"`
}

type rssEnclosure struct {
	URL string `xml:"url,attr"`
}
