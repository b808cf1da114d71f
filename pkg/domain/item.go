package domain

import "time"

// Candidate represents a discovered article not yet checked against history.
// URL is the global dedup key: the same article returned for two different
// watched entities must be delivered at most once.
type Candidate struct {
	Entity string
	Title  string
	URL    string
}

// ExtractResult holds article text after extraction. Text is empty when
// extraction failed; callers treat short or empty text as insufficient for
// summarization rather than as an error.
type ExtractResult struct {
	Text      string
	Truncated bool
}

// SummaryStatus describes how a summary was produced
type SummaryStatus string

// summary statuses, degraded ones map to fixed placeholder texts
const (
	SummaryOk                  SummaryStatus = "ok"
	SummaryInsufficientContent SummaryStatus = "insufficient_content"
	SummaryServiceUnavailable  SummaryStatus = "service_unavailable"
	SummaryUnconfigured        SummaryStatus = "unconfigured"
)

// Summary is always produced; degraded statuses carry a human-readable
// placeholder in Text so the notification can still go out.
type Summary struct {
	Text   string
	Status SummaryStatus
}

// Record is the unit persisted for deduplication, one per delivered article
type Record struct {
	URL    string
	Title  string
	SentAt time.Time
}

// RunStats aggregates the outcome of one pipeline pass
type RunStats struct {
	Entities   int       `json:"entities"`
	Discovered int       `json:"discovered"`
	Seen       int       `json:"seen"`
	Sent       int       `json:"sent"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	Duration   string    `json:"duration"`
}
