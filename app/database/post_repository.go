package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var _ PostRepository = (*postRepository)(nil)

type postRepository struct {
	db *DB
}

func NewPostRepository(db *DB) PostRepository {
	return &postRepository{db: db}
}

// GetPosts returns up to limit posts of the latest snapshot in document order.
func (r *postRepository) GetPosts(feedName string, limit int) ([]Post, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.feed_id, p.position, p.title, p.link, p.description, p.content,
		       p.categories, p.published_raw, p.author, p.image_url, p.created_at
		FROM posts p
		JOIN feeds f ON f.id = p.feed_id
		WHERE f.name = ?
		ORDER BY p.position
		LIMIT ?
	`, feedName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var (
			post       Post
			categories string
			createdAt  int64
		)
		err := rows.Scan(
			&post.ID, &post.FeedID, &post.Position, &post.Title, &post.Link, &post.Description, &post.Content,
			&categories, &post.PublishedRaw, &post.Author, &post.ImageURL, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		if err := json.Unmarshal([]byte(categories), &post.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories of post %d: %w", post.ID, err)
		}
		post.CreatedAt = time.Unix(createdAt, 0).UTC()
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetPostCount(feedName string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM posts p
		JOIN feeds f ON f.id = p.feed_id
		WHERE f.name = ?
	`, feedName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get post count: %w", err)
	}
	return count, nil
}

// ReplacePosts swaps the stored snapshot for posts in a single transaction,
// so readers never observe a partially written feed.
func (r *postRepository) ReplacePosts(feedName string, posts []FeedPost) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var feedID int64
	err = tx.QueryRow("SELECT id FROM feeds WHERE name = ?", feedName).Scan(&feedID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("feed '%s' not found", feedName)
	}
	if err != nil {
		return fmt.Errorf("failed to get feed id: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM posts WHERE feed_id = ?", feedID); err != nil {
		return fmt.Errorf("failed to delete previous posts: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO posts (
			feed_id, position, title, link, description, content,
			categories, published_raw, author, image_url, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := toUnix(time.Now())
	for i, post := range posts {
		categories, err := json.Marshal(nonNil(post.Categories))
		if err != nil {
			return fmt.Errorf("failed to encode categories: %w", err)
		}

		_, err = stmt.Exec(feedID, i, post.Title, post.Link, post.Description, post.Content,
			string(categories), post.PublishedRaw, post.Author, post.ImageURL, now)
		if err != nil {
			return fmt.Errorf("failed to insert post %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit posts: %w", err)
	}

	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
