// Package feedimport imports RSS and Atom feed items as posts.
package feedimport

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/content"
	"github.com/signalfire/auto-featured/internal/db/controller/post"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/logger"
)

const maxFeedSize = 5 << 20

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result counts the imported and skipped items of a feed.
type Result struct {
	Title    string
	Imported int
	Skipped  int
}

// Importer fetches feeds and saves their items through the content service.
type Importer struct {
	client    HTTPClient
	db        *gorm.DB
	content   *content.Service
	userAgent string
	timeout   time.Duration
	postType  string
	log       zerolog.Logger
}

// New creates an Importer. A nil client uses http.DefaultClient.
func New(client HTTPClient, db *gorm.DB, svc *content.Service, cfg config.Import) *Importer {
	if client == nil {
		client = http.DefaultClient
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second //nolint: mnd
	}

	return &Importer{
		client:    client,
		db:        db,
		content:   svc,
		userAgent: cfg.UserAgent,
		timeout:   timeout,
		postType:  cfg.PostType,
		log:       logger.Component("feedimport"),
	}
}

// Fetch downloads and parses a feed.
func (i *Importer) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if i.userAgent != "" {
		req.Header.Set("User-Agent", i.userAgent)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	return feed, nil
}

// Import saves every feed item not imported before as a post of the site.
func (i *Importer) Import(ctx context.Context, siteID uint64, url string) (Result, error) {
	feed, err := i.Fetch(ctx, url)
	if err != nil {
		return Result{}, err
	}

	res := Result{Title: feed.Title}

	for _, item := range feed.Items {
		guid := ItemGUID(item)

		_, err := post.FindByGUID(i.db.WithContext(ctx), siteID, guid)
		if err == nil {
			res.Skipped++

			continue
		}

		if !errors.Is(err, post.ErrPostNotFound) {
			return res, err
		}

		p := &models.Post{
			SiteID: siteID,
			Type:   i.postType,
			Title:  item.Title,
			Body:   itemBody(item),
			Status: "publish",
			GUID:   guid,
		}

		if err := i.content.Save(ctx, p); err != nil {
			return res, fmt.Errorf("save item %s: %w", guid, err)
		}

		i.log.Debug().Uint64("post", p.ID).Str("guid", guid).Msg("feed item imported")

		res.Imported++
	}

	i.log.Info().Str("feed", url).Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("feed imported")

	return res, nil
}

// ItemGUID returns the GUID of a feed item.
// Items without GUID get a hash of title and link.
func ItemGUID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}

	h := sha256.Sum256([]byte(item.Title + "|" + item.Link))

	return fmt.Sprintf("sha256:%x", h[:16])
}

func itemBody(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}

	return item.Description
}
