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

func searchConfig(serverURL string) config.SearchConfig {
	return config.SearchConfig{
		URLTemplate:  serverURL + "/search?query=%s",
		ItemSelector: "a.news_tit",
		Timeout:      5 * time.Second,
		UserAgent:    "newswatch-test/1.0",
	}
}

const searchPage = `<html><body>
<div class="news_area">
  <a class="news_tit" href="https://news.example.com/1">dozn wins fintech award</a>
  <a class="news_tit" href="https://news.example.com/2">dozn expands to japan</a>
  <a class="news_tit" href="https://news.example.com/3">dozn quarterly report</a>
  <a class="news_tit" href="">empty link dropped</a>
  <a class="news_tit" href="https://news.example.com/4"> </a>
  <a class="other_link" href="https://news.example.com/5">unrelated selector</a>
</div>
</body></html>`

func TestSearchSource_Discover(t *testing.T) {
	var gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, searchPage)
	}))
	defer server.Close()

	src := NewSearchSource(searchConfig(server.URL), 5, NewFilter(nil, nil))
	candidates, err := src.Discover(context.Background(), "dozn")
	require.NoError(t, err)

	assert.Equal(t, "dozn", gotQuery)
	assert.Equal(t, "newswatch-test/1.0", gotUA)

	require.Len(t, candidates, 3) // empty title/link and foreign selector dropped
	assert.Equal(t, "dozn wins fintech award", candidates[0].Title)
	assert.Equal(t, "https://news.example.com/1", candidates[0].URL)
	assert.Equal(t, "dozn", candidates[0].Entity)
	assert.Equal(t, "https://news.example.com/3", candidates[2].URL)
}

func TestSearchSource_CapEnforced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, searchPage)
	}))
	defer server.Close()

	src := NewSearchSource(searchConfig(server.URL), 2, NewFilter(nil, nil))
	candidates, err := src.Discover(context.Background(), "dozn")
	require.NoError(t, err)

	require.Len(t, candidates, 2)
	assert.Equal(t, "https://news.example.com/1", candidates[0].URL)
	assert.Equal(t, "https://news.example.com/2", candidates[1].URL)
}

func TestSearchSource_FiltersApplied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body>
<a class="news_tit" href="https://news.example.com/1">dozn wins award</a>
<a class="news_tit" href="https://news.example.com/2">[sponsored] dozn promo</a>
<a class="news_tit" href="https://blog.example.com/3">dozn blog chatter</a>
</body></html>`)
	}))
	defer server.Close()

	filter := NewFilter([]string{"sponsored"}, []string{"blog.example.com"})
	src := NewSearchSource(searchConfig(server.URL), 5, filter)
	candidates, err := src.Discover(context.Background(), "dozn")
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "https://news.example.com/1", candidates[0].URL)
}

func TestSearchSource_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	src := NewSearchSource(searchConfig(server.URL), 5, NewFilter(nil, nil))
	candidates, err := src.Discover(context.Background(), "dozn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
	assert.Empty(t, candidates)
}

func TestSearchSource_Unreachable(t *testing.T) {
	cfg := searchConfig("http://127.0.0.1:1")
	cfg.Timeout = 500 * time.Millisecond

	src := NewSearchSource(cfg, 5, NewFilter(nil, nil))
	candidates, err := src.Discover(context.Background(), "dozn")
	require.Error(t, err)
	assert.Empty(t, candidates)
}

func TestSearchSource_CustomSelector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body>
<div class="headline"><a href="https://news.example.com/n1">markup moved</a></div>
</body></html>`)
	}))
	defer server.Close()

	cfg := searchConfig(server.URL)
	cfg.ItemSelector = "div.headline a"

	src := NewSearchSource(cfg, 5, NewFilter(nil, nil))
	candidates, err := src.Discover(context.Background(), "dozn")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "markup moved", candidates[0].Title)
}
