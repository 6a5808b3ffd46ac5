// Package app initializes and holds long-lived application services,
// acting as a dependency injection container.
package app

import (
	"context"
	"fmt"

	gcsclient "cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/arcanedigitalshield/siteapi/internal/clock/system"
	"github.com/arcanedigitalshield/siteapi/internal/config"
	"github.com/arcanedigitalshield/siteapi/internal/contact"
	"github.com/arcanedigitalshield/siteapi/internal/id/token"
	"github.com/arcanedigitalshield/siteapi/internal/news"
	"github.com/arcanedigitalshield/siteapi/internal/storage/fallback"
	"github.com/arcanedigitalshield/siteapi/internal/storage/gcs"
	"github.com/arcanedigitalshield/siteapi/internal/storage/local"
	"github.com/arcanedigitalshield/siteapi/internal/storage/memory"
)

// App holds the shared, long-lived services. It is initialized once at
// startup and handed to the HTTP server.
type App struct {
	Store  contact.Store
	Intake *contact.Intake
	Query  *contact.Query
	News   news.Provider

	gcsClient *gcsclient.Client
	logger    *zap.Logger
}

// New builds the service graph from configuration. The storage backend
// is selected here, once, for the process lifetime: GCS with local
// fallback when remote storage is eligible, local only otherwise.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{logger: logger}

	var localStore contact.Store
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		localStore = memory.New()
		logger.Info("using in-memory submission store")
	default:
		fileStore, err := local.New(local.Config{
			Dir:      cfg.Storage.LocalDir,
			FileName: cfg.Storage.ObjectName,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize local store: %w", err)
		}
		localStore = fileStore
	}
	a.Store = localStore

	if cfg.RemoteStorageEligible() {
		client, err := gcsclient.NewClient(ctx)
		if err != nil {
			// The fallback contract starts at the first operation, not
			// at client construction: a process that cannot reach GCS
			// at all still serves from local storage.
			logger.Warn("GCS client init failed, using local storage only", zap.Error(err))
		} else {
			remote, err := gcs.New(client, gcs.Config{
				Bucket:  cfg.Storage.GCSBucket,
				Object:  cfg.Storage.ObjectName,
				Project: cfg.Storage.GCSProject,
			})
			if err != nil {
				return nil, fmt.Errorf("initialize GCS store: %w", err)
			}
			orchestrated, err := fallback.New(remote, localStore, logger)
			if err != nil {
				return nil, fmt.Errorf("initialize fallback store: %w", err)
			}
			a.gcsClient = client
			a.Store = orchestrated
			logger.Info("using GCS submission store with local fallback",
				zap.String("bucket", cfg.Storage.GCSBucket),
			)
		}
	} else if cfg.Storage.Backend == config.StorageBackendFile {
		logger.Info("using local submission store",
			zap.String("dir", cfg.Storage.LocalDir),
		)
	}

	clk := system.New()
	a.Intake = contact.NewIntake(a.Store, token.New(), clk, cfg.Contact.MaxSubmissions, logger)
	a.Query = contact.NewQuery(a.Store)

	fetcher := news.NewFetcher(cfg.FetchTimeout(), cfg.News.PerSourceMax, logger)
	aggregator := news.NewAggregator(fetcher, news.DefaultSources(), cfg.News.MaxItems, clk, logger)
	a.News = news.NewCache(aggregator, cfg.CacheTTL(), clk)

	return a, nil
}

// Close releases the remote storage client, if any.
func (a *App) Close() {
	if a.gcsClient != nil {
		if err := a.gcsClient.Close(); err != nil {
			a.logger.Warn("error closing GCS client", zap.Error(err))
		}
	}
}
