package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/realty-desk/app/database"
	"github.com/lysyi3m/realty-desk/app/feed"
)

// ProcessFeedTask fetches a feed, extracts its items and replaces the stored
// snapshot. A malformed document keeps the previous snapshot and waits for
// the next refresh instead of retrying.
type ProcessFeedTask struct {
	Task
	FeedConfig *feed.Config
	fetcher    FetcherInterface
	extractor  ExtractorInterface
	feedRepo   database.FeedRepository
	postRepo   database.PostRepository
}

func NewProcessFeedTask(feedName string, feedConfig *feed.Config, fetcher FetcherInterface, extractor ExtractorInterface, feedRepo database.FeedRepository, postRepo database.PostRepository) *ProcessFeedTask {
	return &ProcessFeedTask{
		Task:       NewTask(TaskTypeProcessFeed, feedName),
		FeedConfig: feedConfig,
		fetcher:    fetcher,
		extractor:  extractor,
		feedRepo:   feedRepo,
		postRepo:   postRepo,
	}
}

func (t *ProcessFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.FeedConfig.Settings.Enabled {
		slog.Debug("Feed disabled, skipping", "feed", t.FeedName)
		return nil
	}

	timeout := time.Duration(t.FeedConfig.Settings.Timeout) * time.Second
	data, err := t.fetcher.Run(ctx, t.FeedConfig.URL, timeout)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	parsed, err := t.extractor.Run(data)
	if errors.Is(err, feed.ErrMalformedFeed) {
		slog.Warn("Malformed feed, keeping previous posts", "feed", t.FeedName, "error", err)
		if err := t.feedRepo.UpdateNextFetch(t.FeedName, t.nextFetch()); err != nil {
			return fmt.Errorf("failed to update next fetch time: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to extract feed: %w", err)
	}

	items := parsed.Items
	if maxItems := t.FeedConfig.Settings.MaxItems; maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	if err := t.postRepo.ReplacePosts(t.FeedName, toFeedPosts(items)); err != nil {
		return fmt.Errorf("failed to store posts: %w", err)
	}

	if err := t.feedRepo.UpdateFeedMetadata(t.FeedName, parsed.Title, parsed.Link, parsed.Description, t.nextFetch()); err != nil {
		return fmt.Errorf("failed to update feed metadata: %w", err)
	}

	slog.Info("Task completed",
		"type", "ProcessFeed",
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"total", len(parsed.Items),
		"stored", len(items))

	return nil
}

func (t *ProcessFeedTask) nextFetch() time.Time {
	return time.Now().UTC().Add(time.Duration(t.FeedConfig.Settings.RefreshInterval) * time.Second)
}

func toFeedPosts(items []feed.Item) []database.FeedPost {
	posts := make([]database.FeedPost, 0, len(items))
	for _, item := range items {
		posts = append(posts, database.FeedPost{
			Title:        item.Title,
			Link:         item.Link,
			Description:  item.Description,
			Content:      item.Content,
			Categories:   item.Categories,
			PublishedRaw: item.PublishedAt,
			Author:       item.Author,
			ImageURL:     item.ImageURL,
		})
	}
	return posts
}
