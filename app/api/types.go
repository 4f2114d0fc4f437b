package api

import (
	"github.com/lysyi3m/realty-desk/app/database"
	"github.com/lysyi3m/realty-desk/app/feed"
	"github.com/lysyi3m/realty-desk/app/format"
	"github.com/lysyi3m/realty-desk/app/invest"
	"github.com/lysyi3m/realty-desk/app/tasks"
)

type Handler struct {
	feedRepo    database.FeedRepository
	postRepo    database.PostRepository
	configCache *feed.ConfigCache
	scenarios   *invest.ScenarioCache
	scheduler   tasks.TaskSchedulerInterface
	fetcher     tasks.FetcherInterface
	extractor   *feed.Extractor
	verifier    *feed.Verifier
	formatter   *format.Formatter
	version     string
}

// Dependencies groups the collaborators of Handler. Fetcher and Extractor are
// shared with the scheduler so refreshes behave like scheduled runs.
type Dependencies struct {
	FeedRepo    database.FeedRepository
	PostRepo    database.PostRepository
	ConfigCache *feed.ConfigCache
	Scenarios   *invest.ScenarioCache
	Scheduler   tasks.TaskSchedulerInterface
	Fetcher     tasks.FetcherInterface
	Extractor   *feed.Extractor
	Formatter   *format.Formatter
	Version     string
}
