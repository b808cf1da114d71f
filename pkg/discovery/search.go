package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"golang.org/x/net/html/charset"

	"newswatch/pkg/config"
	"newswatch/pkg/domain"
)

// SearchSource discovers candidates by scraping a rendered news-search
// result page. The url template and the anchor selector are configuration
// because search-engine markup drifts and has to be swappable without
// touching the pipeline.
type SearchSource struct {
	urlTemplate string
	selector    string
	userAgent   string
	cap         int
	filter      *Filter
	client      *http.Client
}

// NewSearchSource creates a search-page discovery source
func NewSearchSource(cfg config.SearchConfig, perEntityCap int, filter *Filter) *SearchSource {
	return &SearchSource{
		urlTemplate: cfg.URLTemplate,
		selector:    cfg.ItemSelector,
		userAgent:   cfg.UserAgent,
		cap:         perEntityCap,
		filter:      filter,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Discover returns up to the configured cap of candidates for one entity,
// newest first as rendered by the search surface, with exclusion filters
// applied. Malformed title/link pairs are dropped, not surfaced as errors.
func (s *SearchSource) Discover(ctx context.Context, entity string) ([]domain.Candidate, error) {
	searchURL := fmt.Sprintf(s.urlTemplate, url.QueryEscape(entity))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch search page for %q: %w", entity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for search %q", resp.StatusCode, entity)
	}

	// korean news portals still serve EUC-KR now and then
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset for %q: %w", entity, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse search page for %q: %w", entity, err)
	}

	var candidates []domain.Candidate
	doc.Find(s.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		link := strings.TrimSpace(sel.AttrOr("href", ""))
		if title == "" || !validLink(link) {
			return true
		}

		if blocked, reason := s.filter.Blocked(title, link); blocked {
			lgr.Printf("[DEBUG] dropped candidate %q for %q: %s", title, entity, reason)
			return true
		}

		candidates = append(candidates, domain.Candidate{Entity: entity, Title: title, URL: link})
		return len(candidates) < s.cap
	})

	return candidates, nil
}
