// Package news aggregates security headlines from a fixed set of
// upstream feeds into a ranked, deduplicated-by-construction list.
package news

import (
	"errors"
	"time"
)

// NewsItem is one aggregated article, constructed fresh per request and
// never persisted.
type NewsItem struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Source   string `json:"source"`
	Link     string `json:"link"`

	// PublishedAt backs the date-descending sort; zero when the feed
	// entry carried no usable timestamp.
	PublishedAt time.Time `json:"-"`
}

// Source is one logical feed provider with a priority-ordered list of
// candidate URLs.
type Source struct {
	Name     string
	Category string
	URLs     []string
}

// DefaultSources is the static registry of upstream feeds. Order is the
// fan-out order only; ranking is by publish date.
func DefaultSources() []Source {
	return []Source{
		{
			Name:     "The Hacker News",
			Category: "Security News",
			URLs: []string{
				"https://feeds.feedburner.com/TheHackersNews",
				"https://thehackernews.com/feeds/posts/default?alt=rss",
			},
		},
		{
			Name:     "Bleeping Computer",
			Category: "Threat Intel",
			URLs: []string{
				"https://www.bleepingcomputer.com/feed/",
			},
		},
		{
			Name:     "Krebs on Security",
			Category: "Analysis",
			URLs: []string{
				"https://krebsonsecurity.com/feed/",
				"https://krebsonsecurity.com/feed/atom/",
			},
		},
	}
}

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Per-source failure classes. They never reach the end caller on their
// own; the class of the first failing source rides along on NoNewsError
// when every source comes up empty.
var (
	ErrFeedFetch   = errors.New("feed fetch failed")
	ErrFeedParse   = errors.New("feed parse failed")
	ErrFeedTimeout = errors.New("feed fetch timed out")
)

// NoNewsError reports that no source yielded any item.
type NoNewsError struct {
	Cause error
}

func (e *NoNewsError) Error() string {
	if e.Cause == nil {
		return "no news available from any source"
	}
	return "no news available from any source: " + e.Cause.Error()
}

// Unwrap exposes the representative per-source failure class.
func (e *NoNewsError) Unwrap() error {
	return e.Cause
}
