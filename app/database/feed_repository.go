package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var _ FeedRepository = (*feedRepository)(nil)

type feedRepository struct {
	db *DB
}

func NewFeedRepository(db *DB) FeedRepository {
	return &feedRepository{db: db}
}

const feedColumns = `id, name, feed_url, title, link, description,
		       last_fetched_at, next_fetch_at, created_at, updated_at`

// GetFeed returns nil, nil when the feed has not been registered yet.
func (r *feedRepository) GetFeed(feedName string) (*Feed, error) {
	var (
		feed        Feed
		lastFetched sql.NullInt64
		nextFetch   sql.NullInt64
		createdAt   int64
		updatedAt   int64
	)

	err := r.db.QueryRow(`SELECT `+feedColumns+` FROM feeds WHERE name = ?`, feedName).Scan(
		&feed.ID, &feed.Name, &feed.FeedURL, &feed.Title, &feed.Link, &feed.Description,
		&lastFetched, &nextFetch, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}

	feed.LastFetchedAt = fromUnix(lastFetched)
	feed.NextFetchAt = fromUnix(nextFetch)
	feed.CreatedAt = time.Unix(createdAt, 0).UTC()
	feed.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &feed, nil
}

func (r *feedRepository) GetFeedCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM feeds").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get feed count: %w", err)
	}
	return count, nil
}

// UpsertFeed registers a feed by name. A changed URL resets the schedule so
// the new source is fetched on the next scheduler tick.
func (r *feedRepository) UpsertFeed(feedName, feedURL string) error {
	now := toUnix(time.Now())

	_, err := r.db.Exec(`
		INSERT INTO feeds (name, feed_url, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			next_fetch_at = CASE WHEN feeds.feed_url = excluded.feed_url THEN feeds.next_fetch_at ELSE NULL END,
			feed_url = excluded.feed_url,
			updated_at = excluded.updated_at
	`, feedName, feedURL, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert feed: %w", err)
	}

	return nil
}

func (r *feedRepository) UpdateFeedMetadata(feedName string, title string, link string, description string, nextFetch time.Time) error {
	now := toUnix(time.Now())

	result, err := r.db.Exec(`
		UPDATE feeds
		SET title = ?, link = ?, description = ?, last_fetched_at = ?, next_fetch_at = ?, updated_at = ?
		WHERE name = ?
	`, title, link, description, now, toUnix(nextFetch), now, feedName)
	if err != nil {
		return fmt.Errorf("failed to update feed metadata: %w", err)
	}

	return requireAffected(result, feedName)
}

func (r *feedRepository) UpdateNextFetch(feedName string, nextFetch time.Time) error {
	now := toUnix(time.Now())

	result, err := r.db.Exec(`
		UPDATE feeds
		SET last_fetched_at = ?, next_fetch_at = ?
		WHERE name = ?
	`, now, toUnix(nextFetch), feedName)
	if err != nil {
		return fmt.Errorf("failed to update next fetch time: %w", err)
	}

	return requireAffected(result, feedName)
}

func requireAffected(result sql.Result, feedName string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("feed '%s' not found", feedName)
	}
	return nil
}
