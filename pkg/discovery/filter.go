package discovery

import (
	"net/url"
	"strings"
)

// Filter drops candidates matching exclusion rules: a blocked term anywhere
// in the title or a blocked origin in the url. Matching is case-insensitive.
type Filter struct {
	terms   []string
	origins []string
}

// NewFilter creates a filter from configured blocked terms and origins
func NewFilter(terms, origins []string) *Filter {
	f := &Filter{
		terms:   make([]string, 0, len(terms)),
		origins: make([]string, 0, len(origins)),
	}
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			f.terms = append(f.terms, t)
		}
	}
	for _, o := range origins {
		if o = strings.ToLower(strings.TrimSpace(o)); o != "" {
			f.origins = append(f.origins, o)
		}
	}
	return f
}

// Blocked reports whether the candidate should be dropped and why
func (f *Filter) Blocked(title, link string) (blocked bool, reason string) {
	lowTitle := strings.ToLower(title)
	for _, t := range f.terms {
		if strings.Contains(lowTitle, t) {
			return true, "blocked term: " + t
		}
	}

	host := link
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ToLower(host)
	lowLink := strings.ToLower(link)
	for _, o := range f.origins {
		if host == o || strings.HasSuffix(host, "."+o) || strings.Contains(lowLink, o) {
			return true, "blocked origin: " + o
		}
	}

	return false, ""
}

// validLink accepts only absolute http(s) urls, anything else is malformed
// and silently dropped at discovery time
func validLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
