package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html/charset"

	"newswatch/pkg/config"
	"newswatch/pkg/domain"
)

// maxBodySize bounds how much of an article page is read, pages beyond this
// carry no extra summarizable text
const maxBodySize = 2 << 20 // 2MB

// Extractor pulls article text out of arbitrary news-site HTML. It trades
// precision for availability: a fixed priority list of known article-body
// selectors is tried first, then a generic readability pass, and any failure
// along the way degrades to empty text instead of an error so the pipeline
// can continue with a placeholder summary.
type Extractor struct {
	selectors []string
	charCap   int
	userAgent string
	client    *http.Client
}

// NewExtractor creates a content extractor
func NewExtractor(cfg config.ExtractConfig) *Extractor {
	return &Extractor{
		selectors: cfg.Selectors,
		charCap:   cfg.CharCap,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Extract retrieves text content from the given URL. It never fails: fetch
// or parse problems are logged and yield an empty result.
func (e *Extractor) Extract(ctx context.Context, urlStr string) domain.ExtractResult {
	res, err := e.extract(ctx, urlStr)
	if err != nil {
		lgr.Printf("[WARN] content extraction failed for %s: %v", urlStr, err)
		return domain.ExtractResult{}
	}
	return res
}

func (e *Extractor) extract(ctx context.Context, urlStr string) (domain.ExtractResult, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return domain.ExtractResult{}, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return domain.ExtractResult{}, fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return domain.ExtractResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	addBrowserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return domain.ExtractResult{}, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ExtractResult{}, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	// decode to utf-8 first, article pages from older outlets are EUC-KR
	decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return domain.ExtractResult{}, fmt.Errorf("detect charset for %s: %w", urlStr, err)
	}
	body, err := io.ReadAll(io.LimitReader(decoded, maxBodySize))
	if err != nil {
		return domain.ExtractResult{}, fmt.Errorf("read body of %s: %w", urlStr, err)
	}

	text := e.fromSelectors(body)
	if text == "" {
		text = e.fromReadability(body, parsedURL)
	}
	if text == "" {
		return domain.ExtractResult{}, fmt.Errorf("no content extracted from %s", urlStr)
	}

	capped, truncated := truncateRunes(text, e.charCap)
	return domain.ExtractResult{Text: capped, Truncated: truncated}, nil
}

// fromSelectors tries the configured article-body containers in priority
// order and returns the joined paragraph text of the first that matches
func (e *Extractor) fromSelectors(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	for _, selector := range e.selectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}

		var parts []string
		sel.Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		if joined := normalizeSpace(strings.Join(parts, " ")); joined != "" {
			return joined
		}
	}
	return ""
}

// fromReadability is the generic fallback when no known container matches,
// it runs a full readability extraction over the page
func (e *Extractor) fromReadability(body []byte, pageURL *url.URL) string {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil || result == nil {
		return ""
	}
	return normalizeSpace(result.ContentText)
}

// normalizeSpace collapses runs of whitespace into single spaces
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes enforces the content cap without splitting multi-byte runes
func truncateRunes(s string, limit int) (out string, truncated bool) {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}
