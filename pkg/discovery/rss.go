package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"newswatch/pkg/config"
	"newswatch/pkg/domain"
)

// RSSSource discovers candidates through a query-parameterized RSS endpoint.
// It is an alternative to SearchSource for surfaces that expose search
// results as a feed, and keeps the same cap and exclusion semantics.
type RSSSource struct {
	template string
	cap      int
	filter   *Filter
	parser   *gofeed.Parser
}

// NewRSSSource creates an RSS discovery source
func NewRSSSource(cfg config.SearchConfig, perEntityCap int, filter *Filter) *RSSSource {
	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgent
	parser.Client = &http.Client{Timeout: cfg.Timeout}
	return &RSSSource{
		template: cfg.RSSTemplate,
		cap:      perEntityCap,
		filter:   filter,
		parser:   parser,
	}
}

// Discover fetches the entity's feed and returns up to cap candidates,
// newest first by published time, with exclusion filters applied
func (s *RSSSource) Discover(ctx context.Context, entity string) ([]domain.Candidate, error) {
	feedURL := fmt.Sprintf(s.template, url.QueryEscape(entity))

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed for %q: %w", entity, err)
	}

	items := feed.Items
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := items[i].PublishedParsed, items[j].PublishedParsed
		if pi == nil || pj == nil {
			return false // keep feed order when times are missing
		}
		return pi.After(*pj)
	})

	var candidates []domain.Candidate
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || !validLink(link) {
			continue
		}

		if blocked, reason := s.filter.Blocked(title, link); blocked {
			lgr.Printf("[DEBUG] dropped candidate %q for %q: %s", title, entity, reason)
			continue
		}

		candidates = append(candidates, domain.Candidate{Entity: entity, Title: title, URL: link})
		if len(candidates) >= s.cap {
			break
		}
	}

	return candidates, nil
}

// New picks the discovery source implied by the configuration: RSS when a
// feed template is set, search-page scraping otherwise
func New(cfg config.SearchConfig, perEntityCap int, filter *Filter) Source {
	if cfg.RSSTemplate != "" {
		return NewRSSSource(cfg, perEntityCap, filter)
	}
	return NewSearchSource(cfg, perEntityCap, filter)
}

// Source yields discovery candidates for one entity
type Source interface {
	Discover(ctx context.Context, entity string) ([]domain.Candidate, error)
}
