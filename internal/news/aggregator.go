package news

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arcanedigitalshield/siteapi/internal/metrics"
)

// DefaultMaxItems caps the merged, ranked aggregate.
const DefaultMaxItems = 9

// SourceFetcher retrieves all usable items for one logical source.
type SourceFetcher interface {
	Fetch(ctx context.Context, src Source) ([]NewsItem, error)
}

// Result is one aggregation outcome.
type Result struct {
	News         []NewsItem `json:"news"`
	LastUpdated  time.Time  `json:"lastUpdated"`
	SourcesCount int        `json:"sourcesCount"`
}

// Aggregator fans out over every registered source, tolerates
// individual failures, and merges the survivors into a ranked list.
type Aggregator struct {
	fetcher  SourceFetcher
	sources  []Source
	maxItems int
	clock    Clock
	logger   *zap.Logger
}

// NewAggregator constructs an Aggregator. maxItems <= 0 selects
// DefaultMaxItems.
func NewAggregator(fetcher SourceFetcher, sources []Source, maxItems int, clock Clock, logger *zap.Logger) *Aggregator {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		fetcher:  fetcher,
		sources:  sources,
		maxItems: maxItems,
		clock:    clock,
		logger:   logger,
	}
}

// Aggregate fetches every source concurrently and joins on all of them
// settling; a dead source never blocks or fails the whole run. Only
// when every source comes up empty does it fail, with a *NoNewsError
// carrying the first source's failure class.
func (a *Aggregator) Aggregate(ctx context.Context) (Result, error) {
	type outcome struct {
		items []NewsItem
		err   error
	}
	outcomes := make([]outcome, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			items, err := a.fetcher.Fetch(ctx, src)
			outcomes[i] = outcome{items: items, err: err}
		}(i, src)
	}
	wg.Wait()

	var merged []NewsItem
	var firstErr error
	succeeded := 0
	for i, out := range outcomes {
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
			}
			a.logger.Warn("source yielded no items",
				zap.String("source", a.sources[i].Name),
				zap.Error(out.err),
			)
			continue
		}
		if len(out.items) == 0 {
			continue
		}
		succeeded++
		merged = append(merged, out.items...)
	}

	if len(merged) == 0 {
		metrics.ObserveAggregation("empty")
		return Result{}, &NoNewsError{Cause: firstErr}
	}

	// Zero publish dates sort to the tail; no secondary tie-break on
	// source order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})
	if len(merged) > a.maxItems {
		merged = merged[:a.maxItems]
	}

	metrics.ObserveAggregation("ok")
	return Result{
		News:         merged,
		LastUpdated:  a.clock.Now(),
		SourcesCount: succeeded,
	}, nil
}
