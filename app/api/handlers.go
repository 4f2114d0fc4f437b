package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/realty-desk/app/database"
	"github.com/lysyi3m/realty-desk/app/feed"
	"github.com/lysyi3m/realty-desk/app/tasks"
)

func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		feedRepo:    deps.FeedRepo,
		postRepo:    deps.PostRepo,
		configCache: deps.ConfigCache,
		scenarios:   deps.Scenarios,
		scheduler:   deps.Scheduler,
		fetcher:     deps.Fetcher,
		extractor:   deps.Extractor,
		verifier:    feed.NewVerifier(deps.Extractor),
		formatter:   deps.Formatter,
		version:     deps.Version,
	}
}

type postResponse struct {
	feed.Post
	PublishedDisplay string `json:"published_display"`
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		health["feeds"] = feedCount
	} else {
		slog.Error("Database error", "operation", "get_feed_count", "error", err)
		health["status"] = "degraded"
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()
	health["scenarios"] = len(h.scenarios.GetScenarios())

	c.JSON(http.StatusOK, health)
}

// GetPosts serves the stored snapshot of a feed. When nothing usable is
// stored the response carries a single placeholder post instead of an
// empty list.
func (h *Handler) GetPosts(c *gin.Context) {
	name := c.Param("name")

	feedConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed configuration not found"})
		return
	}

	limit := feed.DefaultPostLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	limit = feed.ClampLimit(limit)

	var title, link string
	stored, err := h.feedRepo.GetFeed(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed", "feed", name, "error", err)
	} else if stored != nil {
		title, link = stored.Title, stored.Link
	}

	rows, err := h.postRepo.GetPosts(name, limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_posts", "feed", name, "error", err)
	}

	var posts []feed.Post
	fallback := err != nil || len(rows) == 0
	if fallback {
		posts = []feed.Post{feed.FallbackPost(link, feedConfig.CategoryURL)}
	} else {
		posts = feed.ToPosts(toItems(rows), limit, feedConfig.CategoryURL)
	}

	response := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, postResponse{
			Post:             post,
			PublishedDisplay: h.formatter.Date(post.PublishedAt),
		})
	}

	c.Header("X-Feed-Name", name)
	c.Header("X-Feed-Items", strconv.Itoa(len(response)))

	c.JSON(http.StatusOK, gin.H{
		"feed":     name,
		"title":    title,
		"fallback": fallback,
		"posts":    response,
	})
}

func (h *Handler) APIListFeeds(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	feeds := make([]map[string]interface{}, 0, len(configs))

	for _, feedConfig := range configs {
		feedInfo := map[string]interface{}{
			"name":             feedConfig.Name,
			"url":              feedConfig.URL,
			"category_url":     feedConfig.CategoryURL,
			"title":            "",
			"enabled":          feedConfig.Settings.Enabled,
			"max_items":        feedConfig.Settings.MaxItems,
			"refresh_interval": (time.Duration(feedConfig.Settings.RefreshInterval) * time.Second).String(),
		}

		if stored, err := h.feedRepo.GetFeed(feedConfig.Name); err == nil && stored != nil {
			feedInfo["title"] = stored.Title
			feedInfo["last_fetched_at"] = stored.LastFetchedAt
			feedInfo["next_fetch_at"] = stored.NextFetchAt
		}

		if postCount, err := h.postRepo.GetPostCount(feedConfig.Name); err == nil {
			feedInfo["post_count"] = postCount
		}

		feeds = append(feeds, feedInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"feeds": feeds,
		"total": len(feeds),
	})
}

// APIGetFeedDiagnostics fetches the live document and reports how a strict
// parser and the lenient extractor each see it.
func (h *Handler) APIGetFeedDiagnostics(c *gin.Context) {
	name := c.Param("name")

	feedConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed configuration not found"})
		return
	}

	timeout := time.Duration(feedConfig.Settings.Timeout) * time.Second
	data, err := h.fetcher.Run(c.Request.Context(), feedConfig.URL, timeout)
	if err != nil {
		slog.Warn("Diagnostics fetch failed", "feed", name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch feed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feed":        name,
		"url":         feedConfig.URL,
		"bytes":       len(data),
		"diagnostics": h.verifier.Run(data),
	})
}

// APIRefreshFeed reloads the feed's configuration file, registers it and
// queues an immediate fetch.
func (h *Handler) APIRefreshFeed(c *gin.Context) {
	name := c.Param("name")

	if _, err := h.configCache.GetConfig(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed configuration not found"})
		return
	}

	feedConfig, err := h.configCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading configuration", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload configuration",
			"details": err.Error(),
		})
		return
	}

	syncTask := tasks.NewSyncFeedConfigTask(name, feedConfig, h.feedRepo)
	syncTask.Start()
	if err := syncTask.Execute(c.Request.Context()); err != nil {
		slog.Error("Error registering feed", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register feed"})
		return
	}

	processTask := tasks.NewProcessFeedTask(name, feedConfig, h.fetcher, h.extractor, h.feedRepo, h.postRepo)
	if err := h.scheduler.EnqueueTask(processTask); err != nil {
		slog.Error("Error enqueueing process task", "feed", name, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Failed to enqueue process task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Configuration reloaded and refresh enqueued",
		"feed": gin.H{
			"name": name,
			"url":  feedConfig.URL,
		},
		"task": gin.H{
			"id":   processTask.ID,
			"type": processTask.Type,
		},
	})
}

func toItems(rows []database.Post) []feed.Item {
	items := make([]feed.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, feed.Item{
			Title:       row.Title,
			Link:        row.Link,
			Description: row.Description,
			Content:     row.Content,
			Categories:  row.Categories,
			PublishedAt: row.PublishedRaw,
			Author:      row.Author,
			ImageURL:    row.ImageURL,
		})
	}
	return items
}
