package content

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswatch/pkg/config"
)

func extractConfig() config.ExtractConfig {
	return config.ExtractConfig{
		CharCap:   2500,
		Timeout:   5 * time.Second,
		Selectors: []string{".article_body", ".art_body", ".news_con", ".article_view"},
		UserAgent: "newswatch-test/1.0",
	}
}

func TestExtractor_KnownContainer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body>
<div class="nav">site navigation noise</div>
<div class="article_body">
  <p>First paragraph of the article.</p>
  <p>Second   paragraph with    odd spacing.</p>
</div>
<div class="footer">footer noise</div>
</body></html>`)
	}))
	defer server.Close()

	e := NewExtractor(extractConfig())
	res := e.Extract(context.Background(), server.URL)

	assert.Equal(t, "First paragraph of the article. Second paragraph with odd spacing.", res.Text)
	assert.False(t, res.Truncated)
}

func TestExtractor_SelectorPriority(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body>
<div class="news_con">secondary container</div>
<div class="article_body">primary container</div>
</body></html>`)
	}))
	defer server.Close()

	e := NewExtractor(extractConfig())
	res := e.Extract(context.Background(), server.URL)

	// .article_body comes first in the priority list
	assert.Equal(t, "primary container", res.Text)
}

func TestExtractor_FallbackWhenNoContainer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>story</title></head><body>
<main>
  <article>
    <h1>Company wins award</h1>
    <p>The company received the annual fintech award on Tuesday for its payment platform.</p>
    <p>Officials said the award recognizes years of steady infrastructure work across the sector.</p>
    <p>The ceremony took place in Seoul with several hundred industry participants attending.</p>
  </article>
</main>
</body></html>`)
	}))
	defer server.Close()

	e := NewExtractor(extractConfig())
	res := e.Extract(context.Background(), server.URL)

	assert.Contains(t, res.Text, "annual fintech award")
	assert.Contains(t, res.Text, "Seoul")
}

func TestExtractor_CapEnforced(t *testing.T) {
	long := strings.Repeat("가나다라 마바사아 자차카타 파하 ", 500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<html><body><div class="article_body"><p>%s</p></div></body></html>`, long)
	}))
	defer server.Close()

	cfg := extractConfig()
	cfg.CharCap = 300

	e := NewExtractor(cfg)
	res := e.Extract(context.Background(), server.URL)

	assert.True(t, res.Truncated)
	assert.Len(t, []rune(res.Text), 300)
}

func TestExtractor_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name string
		url  func(t *testing.T) string
	}{
		{
			name: "http error status",
			url: func(t *testing.T) string {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				}))
				t.Cleanup(server.Close)
				return server.URL
			},
		},
		{
			name: "unreachable host",
			url: func(t *testing.T) string {
				return "http://127.0.0.1:1/article"
			},
		},
		{
			name: "invalid url",
			url: func(t *testing.T) string {
				return "not-a-url"
			},
		},
		{
			name: "empty page",
			url: func(t *testing.T) string {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					fmt.Fprint(w, "<html><body></body></html>")
				}))
				t.Cleanup(server.Close)
				return server.URL
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := extractConfig()
			cfg.Timeout = 2 * time.Second

			e := NewExtractor(cfg)
			res := e.Extract(context.Background(), tt.url(t))

			assert.Empty(t, res.Text)
			assert.False(t, res.Truncated)
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	out, truncated := truncateRunes("short", 100)
	assert.Equal(t, "short", out)
	assert.False(t, truncated)

	out, truncated = truncateRunes("가나다라마", 3)
	assert.Equal(t, "가나다", out)
	assert.True(t, truncated)

	out, truncated = truncateRunes("anything", 0)
	assert.Equal(t, "anything", out)
	assert.False(t, truncated)
}

func TestNormalizeSpace(t *testing.T) {
	require.Equal(t, "a b c", normalizeSpace("  a\n\tb   c  "))
	require.Equal(t, "", normalizeSpace("   \n "))
}
