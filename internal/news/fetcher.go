package news

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/arcanedigitalshield/siteapi/internal/metrics"
)

const (
	// DefaultFetchTimeout bounds each URL attempt.
	DefaultFetchTimeout = 8 * time.Second
	// DefaultPerSourceMax caps how many entries one source contributes.
	DefaultPerSourceMax = 3

	excerptLimit = 150
)

// Fetcher retrieves one logical source, trying its candidate URLs in
// order until one yields at least one item.
type Fetcher struct {
	timeout      time.Duration
	perSourceMax int
	logger       *zap.Logger
}

// NewFetcher constructs a Fetcher. Zero values select the defaults.
func NewFetcher(timeout time.Duration, perSourceMax int, logger *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if perSourceMax <= 0 {
		perSourceMax = DefaultPerSourceMax
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		timeout:      timeout,
		perSourceMax: perSourceMax,
		logger:       logger,
	}
}

// Fetch tries each candidate URL in order within the per-attempt
// timeout. All URLs failing is a soft failure: the classified error of
// the last attempt is returned for logging, and the caller treats the
// source as empty.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]NewsItem, error) {
	var lastErr error
	for _, feedURL := range src.URLs {
		items, err := f.fetchOne(ctx, src, feedURL)
		if err != nil {
			lastErr = err
			metrics.ObserveFeedFetch(src.Name, "error")
			f.logger.Warn("feed attempt failed",
				zap.String("source", src.Name),
				zap.String("url", feedURL),
				zap.Error(err),
			)
			continue
		}
		if len(items) == 0 {
			lastErr = fmt.Errorf("%w: no usable entries at %s", ErrFeedParse, feedURL)
			metrics.ObserveFeedFetch(src.Name, "empty")
			continue
		}
		metrics.ObserveFeedFetch(src.Name, "ok")
		return items, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: source %s has no candidate URLs", ErrFeedFetch, src.Name)
	}
	return nil, lastErr
}

func (f *Fetcher) fetchOne(ctx context.Context, src Source, feedURL string) ([]NewsItem, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, attemptCtx)
	if err != nil {
		return nil, classify(err)
	}

	items := make([]NewsItem, 0, f.perSourceMax)
	for _, entry := range feed.Items {
		if len(items) >= f.perSourceMax {
			break
		}
		item, ok := mapEntry(entry, src)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// mapEntry builds a NewsItem from one feed entry. Entries without both
// a title and a link are discarded rather than propagated.
func mapEntry(entry *gofeed.Item, src Source) (NewsItem, bool) {
	if entry == nil {
		return NewsItem{}, false
	}
	title := strings.TrimSpace(entry.Title)
	link := strings.TrimSpace(entry.Link)
	if title == "" || link == "" {
		return NewsItem{}, false
	}

	var published time.Time
	switch {
	case entry.PublishedParsed != nil:
		published = *entry.PublishedParsed
	case entry.UpdatedParsed != nil:
		published = *entry.UpdatedParsed
	}

	return NewsItem{
		Title:       title,
		Excerpt:     excerpt(entry),
		Date:        displayDate(published),
		Category:    src.Category,
		Source:      src.Name,
		Link:        link,
		PublishedAt: published,
	}, true
}

func excerpt(entry *gofeed.Item) string {
	text := strings.TrimSpace(entry.Description)
	if text == "" {
		text = strings.TrimSpace(entry.Content)
	}
	if text == "" {
		return "No excerpt available"
	}
	if utf8.RuneCountInString(text) <= excerptLimit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:excerptLimit])) + "..."
}

func displayDate(published time.Time) string {
	if published.IsZero() {
		return ""
	}
	return published.Format("1/2/2006")
}

// classify translates a gofeed error into one of the per-source
// failure classes.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrFeedTimeout, err)
	}
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("%w: %w", ErrFeedFetch, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %w", ErrFeedFetch, err)
	}
	return fmt.Errorf("%w: %w", ErrFeedParse, err)
}
