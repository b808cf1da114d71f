package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswatch/pkg/config"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>news search: dozn</title>
  <item>
    <title>dozn older story</title>
    <link>https://news.example.com/old</link>
    <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>dozn breaking story</title>
    <link>https://news.example.com/new</link>
    <pubDate>Tue, 02 Jan 2024 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>[sponsored] dozn promo</title>
    <link>https://news.example.com/promo</link>
    <pubDate>Tue, 02 Jan 2024 09:00:00 GMT</pubDate>
  </item>
</channel>
</rss>`

func TestRSSSource_Discover(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dozn", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed)
	}))
	defer server.Close()

	cfg := config.SearchConfig{
		RSSTemplate: server.URL + "/rss?query=%s",
		UserAgent:   "newswatch-test/1.0",
		Timeout:     5 * time.Second,
	}

	src := NewRSSSource(cfg, 5, NewFilter([]string{"sponsored"}, nil))
	candidates, err := src.Discover(context.Background(), "dozn")
	require.NoError(t, err)

	// newest first, sponsored one filtered out
	require.Len(t, candidates, 2)
	assert.Equal(t, "dozn breaking story", candidates[0].Title)
	assert.Equal(t, "https://news.example.com/new", candidates[0].URL)
	assert.Equal(t, "dozn older story", candidates[1].Title)
}

func TestRSSSource_CapEnforced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed)
	}))
	defer server.Close()

	cfg := config.SearchConfig{RSSTemplate: server.URL + "/rss?query=%s", Timeout: 5 * time.Second}

	src := NewRSSSource(cfg, 1, NewFilter(nil, nil))
	candidates, err := src.Discover(context.Background(), "dozn")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "https://news.example.com/new", candidates[0].URL)
}

func TestRSSSource_BadFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not xml at all")
	}))
	defer server.Close()

	cfg := config.SearchConfig{RSSTemplate: server.URL + "/rss?query=%s", Timeout: 5 * time.Second}

	src := NewRSSSource(cfg, 5, NewFilter(nil, nil))
	candidates, err := src.Discover(context.Background(), "dozn")
	require.Error(t, err)
	assert.Empty(t, candidates)
}

func TestNew_PicksSource(t *testing.T) {
	filter := NewFilter(nil, nil)

	searchCfg := config.SearchConfig{URLTemplate: "https://search.example.com?q=%s"}
	assert.IsType(t, &SearchSource{}, New(searchCfg, 2, filter))

	rssCfg := config.SearchConfig{RSSTemplate: "https://search.example.com/rss?q=%s"}
	assert.IsType(t, &RSSSource{}, New(rssCfg, 2, filter))
}
