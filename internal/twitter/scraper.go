package twitter

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"ceo-tweet-analyzer/internal/logger"
	"ceo-tweet-analyzer/internal/types"
)

// MirrorSelectors defines CSS selectors for extracting post data from a
// public timeline mirror.
type MirrorSelectors struct {
	PostContainer string
	Text          string
	Permalink     string
	Timestamp     string
	Reposts       string
	Likes         string
}

// MirrorSource configures one credential-free timeline mirror.
type MirrorSource struct {
	Name      string
	BaseURL   string
	UserPath  string // e.g. "/{handle}"
	Selectors MirrorSelectors
	RateLimit time.Duration
}

// Scraper fetches posts from a public timeline mirror without API
// credentials. Used when no bearer token is configured; slower and
// engagement counts may lag the API.
type Scraper struct {
	source   MirrorSource
	maxPosts int
	timeout  time.Duration
}

// DefaultMirrorSource returns the built-in mirror configuration.
// BaseURL can be overridden per deployment since public mirrors rotate.
func DefaultMirrorSource(baseURL string) MirrorSource {
	if baseURL == "" {
		baseURL = "https://nitter.net"
	}
	return MirrorSource{
		Name:     "nitter",
		BaseURL:  strings.TrimRight(baseURL, "/"),
		UserPath: "/{handle}",
		Selectors: MirrorSelectors{
			PostContainer: "div.timeline-item",
			Text:          "div.tweet-content",
			Permalink:     "a.tweet-link",
			Timestamp:     "span.tweet-date a",
			Reposts:       "div.tweet-stats span.tweet-stat:nth-child(2)",
			Likes:         "div.tweet-stats span.tweet-stat:nth-child(4)",
		},
		RateLimit: 2 * time.Second,
	}
}

// NewScraper creates a mirror scraper. maxPosts <= 0 uses the default cap.
func NewScraper(source MirrorSource, maxPosts int, timeout time.Duration) *Scraper {
	if maxPosts <= 0 {
		maxPosts = defaultMaxPosts
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Scraper{source: source, maxPosts: maxPosts, timeout: timeout}
}

// FetchPosts scrapes the handle's timeline page and extracts posts
// newer than the lookback window.
func (s *Scraper) FetchPosts(ctx context.Context, handle string, days int) ([]types.Post, error) {
	logger.Info(ctx, "Scraping timeline mirror", "handle", handle, "source", s.source.Name)

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	posts := []types.Post{}

	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(s.source.BaseURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	c.OnHTML(s.source.Selectors.PostContainer, func(e *colly.HTMLElement) {
		if len(posts) >= s.maxPosts {
			return
		}

		post, ok := s.extractPost(e.DOM)
		if !ok {
			return
		}
		if days > 0 && post.CreatedAt.Before(cutoff) {
			return
		}

		posts = append(posts, post)
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = err
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", s.source.Name, "url", r.Request.URL.String())
	})

	pageURL := s.source.BaseURL + strings.ReplaceAll(s.source.UserPath, "{handle}", url.PathEscape(handle))
	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", pageURL, err)
	}
	c.Wait()

	if scrapeErr != nil && len(posts) == 0 {
		return nil, fmt.Errorf("failed to scrape %s: %w", pageURL, scrapeErr)
	}

	// Mirrors list newest first; keep that order to match the API.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	logger.Info(ctx, "Scraped posts", "handle", handle, "count", len(posts))
	return posts, nil
}

// extractPost pulls one post out of a timeline card.
func (s *Scraper) extractPost(sel *goquery.Selection) (types.Post, bool) {
	text := strings.TrimSpace(sel.Find(s.source.Selectors.Text).Text())
	if text == "" {
		return types.Post{}, false
	}

	permalink, _ := sel.Find(s.source.Selectors.Permalink).Attr("href")
	id := idFromPermalink(permalink)
	if id == "" {
		return types.Post{}, false
	}

	createdAt, ok := parseMirrorTimestamp(sel.Find(s.source.Selectors.Timestamp))
	if !ok {
		return types.Post{}, false
	}

	return types.Post{
		ID:          id,
		Text:        text,
		CreatedAt:   createdAt,
		RepostCount: parseStatCount(sel.Find(s.source.Selectors.Reposts).Text()),
		LikeCount:   parseStatCount(sel.Find(s.source.Selectors.Likes).Text()),
	}, true
}

// parseMirrorTimestamp reads the title attribute the mirror puts on
// date links, e.g. "Jan 2, 2026 · 3:04 PM UTC".
func parseMirrorTimestamp(sel *goquery.Selection) (time.Time, bool) {
	title, exists := sel.Attr("title")
	if !exists {
		return time.Time{}, false
	}

	for _, layout := range []string{
		"Jan 2, 2006 · 3:04 PM UTC",
		"Jan 2, 2006 · 15:04 UTC",
		"2/1/2006, 15:04:05",
	} {
		if t, err := time.Parse(layout, title); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// idFromPermalink extracts the numeric status ID from a permalink like
// "/elonmusk/status/1234567890#m".
func idFromPermalink(permalink string) string {
	idx := strings.LastIndex(permalink, "/status/")
	if idx < 0 {
		return ""
	}
	id := permalink[idx+len("/status/"):]
	if cut := strings.IndexAny(id, "#?"); cut >= 0 {
		id = id[:cut]
	}
	return id
}

// parseStatCount parses engagement counters like "1,234" or "12.3K".
func parseStatCount(raw string) int {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(raw, "K"):
		multiplier = 1_000
		raw = strings.TrimSuffix(raw, "K")
	case strings.HasSuffix(raw, "M"):
		multiplier = 1_000_000
		raw = strings.TrimSuffix(raw, "M")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(v * multiplier)
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	return u.Host
}
