package news

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example News</title>
    <item>
      <title>Storm Hits Coast</title>
      <link>https://example.com/storm</link>
      <description>&lt;p&gt;A severe storm made landfall &lt;b&gt;overnight&lt;/b&gt;.&lt;/p&gt;</description>
      <pubDate>Wed, 26 Aug 2026 18:30:00 +0000</pubDate>
      <enclosure url="https://example.com/storm.jpg" type="image/jpeg" length="1234"/>
    </item>
    <item>
      <title>Election Results In</title>
      <link>https://example.com/election</link>
      <description>Votes have been counted.</description>
      <pubDate>Wed, 26 Aug 2026 17:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestRSSFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewRSSClient([]string{srv.URL})
	client.httpClient = srv.Client()

	articles, err := client.Fetch()

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))

	a := articles[0]
	assert.Equal(t, "Storm Hits Coast", a.Title)
	assert.Equal(t, "A severe storm made landfall overnight.", a.Description)
	assert.Equal(t, "https://example.com/storm", a.URL)
	assert.Equal(t, "https://example.com/storm.jpg", a.URLToImage)
	assert.Equal(t, "Example News", a.SourceName)
	assert.Equal(t, srv.URL, a.SourceURL)
	assert.Equal(t, "general", a.Category)
	assert.Equal(t, 2026, a.PublishedAt.Year())
	assert.Equal(t, 18, a.PublishedAt.Hour())

	// second item carries no enclosure
	assert.Equal(t, "", articles[1].URLToImage)
	assert.NotEqual(t, time.Time{}, articles[1].PublishedAt)
}

func TestRSSFetchBadFeedDoesNotStopOthers(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not xml {"))
	}))
	defer bad.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer good.Close()

	client := NewRSSClient([]string{bad.URL, down.URL, good.URL})

	articles, err := client.Fetch()

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "Storm Hits Coast", articles[0].Title)
}

func TestParsePubDate(t *testing.T) {
	got := parsePubDate("Wed, 26 Aug 2026 18:30:00 +0000")
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.August, got.Month())
	assert.Equal(t, 26, got.Day())

	got = parsePubDate("Wed, 26 Aug 2026 18:30:00 GMT")
	assert.Equal(t, 18, got.Hour())

	assert.Equal(t, time.Time{}, parsePubDate(""))
	assert.Equal(t, time.Time{}, parsePubDate("not a date"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", stripHTML("plain text"))
	assert.Equal(t, "a bold move", stripHTML("<p>a <b>bold</b>  move</p>"))
	assert.Equal(t, "", stripHTML("<br/>"))
}
