package twitter

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"ceo-tweet-analyzer/internal/api"
	"ceo-tweet-analyzer/internal/logger"
	"ceo-tweet-analyzer/internal/types"
)

// twitterAPIBase is the Twitter API v2 base URL.
const twitterAPIBase = "https://api.twitter.com/2"

// defaultMaxPosts caps posts fetched per run. The cap keeps API credit
// usage bounded while still giving the correlation enough samples.
const defaultMaxPosts = 50

// userLookupResponse is the response from the user lookup endpoint
type userLookupResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

// timelineResponse is the response from the user tweets endpoint
type timelineResponse struct {
	Data []tweetData `json:"data"`
	Meta *struct {
		ResultCount int    `json:"result_count"`
		NextToken   string `json:"next_token"`
	} `json:"meta"`
}

type tweetData struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics *struct {
		RetweetCount int `json:"retweet_count"`
		LikeCount    int `json:"like_count"`
	} `json:"public_metrics"`
}

// APIFetcher fetches posts from the Twitter API v2 with bearer auth.
type APIFetcher struct {
	client   *api.Client
	maxPosts int
}

// NewAPIFetcher creates a Twitter API fetcher. maxPosts <= 0 uses the
// default cap.
func NewAPIFetcher(bearerToken string, maxPosts int) *APIFetcher {
	if maxPosts <= 0 {
		maxPosts = defaultMaxPosts
	}
	return &APIFetcher{
		client: api.NewClient(
			api.WithBaseURL(twitterAPIBase),
			api.WithBearerToken(bearerToken),
			api.WithTimeout(30*time.Second),
			api.WithLogging(true),
		),
		maxPosts: maxPosts,
	}
}

// FetchPosts fetches the latest original posts for a handle. The days
// parameter bounds the window but the hard post cap applies first.
func (f *APIFetcher) FetchPosts(ctx context.Context, handle string, days int) ([]types.Post, error) {
	logger.Debug(ctx, "Looking up user ID", "handle", handle)

	userID, err := f.lookupUserID(ctx, handle)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "Fetching timeline", "handle", handle, "user_id", userID, "max_posts", f.maxPosts)

	posts, err := f.fetchTimeline(ctx, userID, days)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Fetched posts", "handle", handle, "count", len(posts))
	return posts, nil
}

// lookupUserID resolves a handle to its numeric user ID.
func (f *APIFetcher) lookupUserID(ctx context.Context, handle string) (string, error) {
	resp, err := f.client.GET(ctx, "/users/by/username/"+url.PathEscape(handle))
	if err != nil {
		return "", fmt.Errorf("failed to look up user @%s: %w", handle, err)
	}

	var lookup userLookupResponse
	if err := resp.ParseJSON(&lookup); err != nil {
		return "", fmt.Errorf("failed to parse user lookup response: %w", err)
	}
	if lookup.Data.ID == "" {
		return "", fmt.Errorf("no user found for handle @%s", handle)
	}

	return lookup.Data.ID, nil
}

// fetchTimeline pages through the user timeline until the post cap or
// the lookback boundary is reached. Retweets and replies are excluded
// so only original content feeds the analysis.
func (f *APIFetcher) fetchTimeline(ctx context.Context, userID string, days int) ([]types.Post, error) {
	var posts []types.Post
	var nextToken string

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	perPage := f.maxPosts
	if perPage > 100 {
		perPage = 100 // API page limit
	}
	if perPage < 5 {
		perPage = 5 // API page minimum
	}

	for len(posts) < f.maxPosts {
		endpoint := fmt.Sprintf(
			"/users/%s/tweets?max_results=%d&tweet.fields=created_at,public_metrics&exclude=retweets,replies",
			userID, perPage)
		if nextToken != "" {
			endpoint += "&pagination_token=" + url.QueryEscape(nextToken)
		}

		resp, err := f.client.GETWithRetry(ctx, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch timeline: %w", err)
		}

		var page timelineResponse
		if err := resp.ParseJSON(&page); err != nil {
			return nil, fmt.Errorf("failed to parse timeline response: %w", err)
		}

		reachedCutoff := false
		for _, td := range page.Data {
			if len(posts) >= f.maxPosts {
				break
			}

			createdAt, err := time.Parse(time.RFC3339, td.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to parse post timestamp %q: %w", td.CreatedAt, err)
			}
			if days > 0 && createdAt.Before(cutoff) {
				reachedCutoff = true
				break
			}

			post := types.Post{
				ID:        td.ID,
				Text:      td.Text,
				CreatedAt: createdAt.UTC(),
			}
			if td.PublicMetrics != nil {
				post.RepostCount = td.PublicMetrics.RetweetCount
				post.LikeCount = td.PublicMetrics.LikeCount
			}
			posts = append(posts, post)
		}

		if reachedCutoff || page.Meta == nil || page.Meta.NextToken == "" || len(posts) >= f.maxPosts {
			break
		}
		nextToken = page.Meta.NextToken

		// Brief pause between pages to stay clear of rate limits.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	return posts, nil
}
