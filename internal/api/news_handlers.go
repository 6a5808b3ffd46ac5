package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/arcanedigitalshield/siteapi/internal/news"
)

type newsResponse struct {
	News         []news.NewsItem `json:"news"`
	LastUpdated  time.Time       `json:"lastUpdated"`
	Status       string          `json:"status"`
	SourcesCount int             `json:"sourcesCount"`
}

type newsErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (s *Server) getNews(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	res, err := s.news.Aggregate(r.Context())
	if err != nil {
		s.logger.Warn("news aggregation failed", zap.Error(err))
		// Failures must not outlive the outage in shared caches.
		w.Header().Set("Cache-Control", "no-store")
		status, payload := classifyNewsError(err)
		s.writeJSON(w, status, payload)
		return
	}

	// The aggregate is the same for every visitor; let shared caches
	// hold it for the refresh interval.
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, s-maxage=%d",
		int(s.cfg.CacheTTL().Seconds()), int(s.cfg.CacheTTL().Seconds())))

	s.writeJSON(w, http.StatusOK, newsResponse{
		News:         res.News,
		LastUpdated:  res.LastUpdated,
		Status:       "success",
		SourcesCount: res.SourcesCount,
	})
}

// classifyNewsError maps aggregation failures to distinct statuses:
// upstream fetch 503, parse 422, timeout 504, anything else 500.
func classifyNewsError(err error) (int, newsErrorResponse) {
	switch {
	case errors.Is(err, news.ErrFeedTimeout):
		return http.StatusGatewayTimeout, newsErrorResponse{
			Error:   "Request timeout",
			Message: "The news feed request took too long to complete",
			Status:  "error",
		}
	case errors.Is(err, news.ErrFeedParse):
		return http.StatusUnprocessableEntity, newsErrorResponse{
			Error:   "Failed to parse news feed",
			Message: err.Error(),
			Status:  "error",
		}
	case errors.Is(err, news.ErrFeedFetch):
		return http.StatusServiceUnavailable, newsErrorResponse{
			Error:   "Failed to fetch news feed",
			Message: err.Error(),
			Status:  "error",
		}
	}

	var noNews *news.NoNewsError
	if errors.As(err, &noNews) {
		return http.StatusServiceUnavailable, newsErrorResponse{
			Error:   "Failed to fetch news feed",
			Message: noNews.Error(),
			Status:  "error",
		}
	}

	return http.StatusInternalServerError, newsErrorResponse{
		Error:   "Internal server error",
		Message: "An unexpected error occurred while fetching news",
		Status:  "error",
	}
}
