package tasks

import (
	"context"
	"time"

	"github.com/lysyi3m/realty-desk/app/feed"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the API to manage background processing.
// Example usage:
//
//	scheduler := NewScheduler(configCache, feedRepo, postRepo, fetcher, extractor, interval, workers)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewProcessFeedTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

type FetcherInterface interface {
	Run(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

type ExtractorInterface interface {
	Run(data []byte) (*feed.Feed, error)
}

var (
	_ FetcherInterface   = (*feed.Fetcher)(nil)
	_ ExtractorInterface = (*feed.Extractor)(nil)
)
