package proc

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/time/rate"

	"newswatch/pkg/domain"
	"newswatch/pkg/notify"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . HistoryStore

// Source yields discovery candidates for one entity, capped and filtered
type Source interface {
	Discover(ctx context.Context, entity string) ([]domain.Candidate, error)
}

// Extractor retrieves article text, degrading to empty on failure
type Extractor interface {
	Extract(ctx context.Context, url string) domain.ExtractResult
}

// Summarizer produces a summary, always, possibly a placeholder
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) domain.Summary
}

// Notifier delivers one formatted message, no internal retries
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// HistoryStore is the persistent dedup set
type HistoryStore interface {
	Load(ctx context.Context) map[string]bool
	Append(ctx context.Context, rec domain.Record) error
}

// itemState is the terminal state of one candidate in a pass
type itemState int

const (
	stateSeen itemState = iota // already delivered, skipped before any side effect
	stateSent                  // delivered and recorded
	stateFailed                // delivery failed, key left absent for retry next run
)

// Params holds all dependencies and tuning for the processor
type Params struct {
	Source     Source
	Extractor  Extractor
	Summarizer Summarizer
	Notifier   Notifier
	Store      HistoryStore

	Entities        []string
	SummaryCooldown time.Duration
	NotifyCooldown  time.Duration
	DryRun          bool
}

// Processor drives the per-entity, per-item pipeline: discover, dedup,
// extract, summarize, deliver, record. It runs strictly sequentially on
// purpose - the summarization and notification backends are rate-limited
// per caller, so serialization with explicit pacing is the correctness
// mechanism here, not a simplification. Failures are isolated per entity
// and per item; the history store is appended only after confirmed
// delivery, which makes delivery at-least-once and never silently lossy.
type Processor struct {
	source     Source
	extractor  Extractor
	summarizer Summarizer
	notifier   Notifier
	store      HistoryStore

	entities []string
	dryRun   bool

	summaryLimiter *rate.Limiter
	notifyLimiter  *rate.Limiter

	mu      sync.Mutex
	lastRun *domain.RunStats
}

// NewProcessor creates the pipeline processor
func NewProcessor(p Params) *Processor {
	return &Processor{
		source:         p.Source,
		extractor:      p.Extractor,
		summarizer:     p.Summarizer,
		notifier:       p.Notifier,
		store:          p.Store,
		entities:       p.Entities,
		dryRun:         p.DryRun,
		summaryLimiter: newLimiter(p.SummaryCooldown),
		notifyLimiter:  newLimiter(p.NotifyCooldown),
	}
}

// newLimiter converts a cooldown into a token bucket with burst 1, zero
// cooldown means no pacing
func newLimiter(cooldown time.Duration) *rate.Limiter {
	if cooldown <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(cooldown), 1)
}

// Run executes one full pass over all watched entities. It returns the pass
// stats and the context error if the run was cut short; no other error is
// fatal to a run.
func (p *Processor) Run(ctx context.Context) (domain.RunStats, error) {
	started := time.Now()
	stats := domain.RunStats{Entities: len(p.entities), StartedAt: started}

	history := p.store.Load(ctx)
	lgr.Printf("[INFO] pipeline pass started, %d entities, %d known keys", len(p.entities), len(history))

	for _, entity := range p.entities {
		if ctx.Err() != nil {
			break
		}

		candidates, err := p.source.Discover(ctx, entity)
		if err != nil {
			// one entity's discovery failure never aborts the rest
			lgr.Printf("[WARN] discovery failed for %q: %v", entity, err)
			continue
		}
		lgr.Printf("[DEBUG] discovered %d candidates for %q", len(candidates), entity)
		stats.Discovered += len(candidates)

		for _, cand := range candidates {
			if ctx.Err() != nil {
				break
			}
			switch p.processItem(ctx, cand, history) {
			case stateSeen:
				stats.Seen++
			case stateSent:
				stats.Sent++
			case stateFailed:
				stats.Failed++
			}
		}
	}

	stats.Duration = time.Since(started).Round(time.Millisecond).String()
	lgr.Printf("[INFO] pipeline pass completed in %s: %d sent, %d seen, %d failed",
		stats.Duration, stats.Sent, stats.Seen, stats.Failed)

	p.mu.Lock()
	p.lastRun = &stats
	p.mu.Unlock()

	return stats, ctx.Err()
}

// processItem walks one candidate through extraction, summarization and
// delivery. History membership is checked before extraction (so known items
// cost nothing) and re-checked immediately before the send, closing the
// window against a shared store mutating mid-item.
func (p *Processor) processItem(ctx context.Context, cand domain.Candidate, history map[string]bool) itemState {
	if history[cand.URL] {
		lgr.Printf("[DEBUG] skipping known item: %s", cand.Title)
		return stateSeen
	}

	lgr.Printf("[INFO] new item for %q: %s", cand.Entity, cand.Title)

	extracted := p.extractor.Extract(ctx, cand.URL)

	// pace summarization to stay under the backend's per-minute quota
	if err := p.summaryLimiter.Wait(ctx); err != nil {
		return stateFailed
	}
	summary := p.summarizer.Summarize(ctx, cand.Title, extracted.Text)
	if summary.Status != domain.SummaryOk {
		lgr.Printf("[WARN] degraded summary (%s) for %s", summary.Status, cand.URL)
	}

	msg := notify.Message{Entity: cand.Entity, Title: cand.Title, Summary: summary.Text, URL: cand.URL}

	// last dedup check before the side-effecting call
	if history[cand.URL] {
		return stateSeen
	}

	if p.dryRun {
		lgr.Printf("[INFO] dry-run: would deliver %s", cand.URL)
		history[cand.URL] = true
		return stateSent
	}

	if err := p.notifyLimiter.Wait(ctx); err != nil {
		return stateFailed
	}
	if err := p.notifier.Send(ctx, msg.Format()); err != nil {
		// key stays absent from history, the item is retried next run
		lgr.Printf("[WARN] notification failed for %s: %v", cand.URL, err)
		return stateFailed
	}

	if err := p.store.Append(ctx, domain.Record{URL: cand.URL, Title: cand.Title, SentAt: time.Now()}); err != nil {
		// message went out but the record did not stick, next run may send a
		// duplicate - the at-least-once tradeoff, better than losing items
		lgr.Printf("[ERROR] delivered %s but failed to record it: %v", cand.URL, err)
	}
	history[cand.URL] = true

	lgr.Printf("[INFO] delivered: %s", cand.Title)
	return stateSent
}

// LastRun returns the stats of the most recent completed pass
func (p *Processor) LastRun() (domain.RunStats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastRun == nil {
		return domain.RunStats{}, false
	}
	return *p.lastRun, true
}
