// Package twitter implements a minimal client for the Twitter v2
// recent-search endpoint.
//
// The client fetches tweets matching a query (retweets and non-English
// tweets are filtered server-side), expands author usernames, and maps the
// response onto the tweet record used by the rest of the pipeline. Rate
// limit responses are retried with backoff, honoring the Retry-After
// header when present.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jselig/mentionet/pkg/cache"
	"github.com/jselig/mentionet/pkg/errors"
	"github.com/jselig/mentionet/pkg/httputil"
	"github.com/jselig/mentionet/pkg/tweet"
)

// DefaultBaseURL is the production recent-search endpoint.
const DefaultBaseURL = "https://api.twitter.com/2/tweets/search/recent"

// maxPageSize is the API's cap on results per request.
const maxPageSize = 100

// Client talks to the recent-search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bearer     string
	cache      cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (e.g. with a test transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the endpoint URL, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCache caches raw search responses so repeated fetches of the same
// query within the TTL do not spend rate-limit budget.
func WithCache(ca cache.Cache) Option {
	return func(c *Client) { c.cache = ca }
}

// New creates a recent-search client authenticated with the given bearer
// token.
func New(bearerToken string, opts ...Option) (*Client, error) {
	if bearerToken == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "twitter bearer token is not set")
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		bearer:     bearerToken,
		cache:      cache.NewNullCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search fetches up to maxResults tweets matching query. Retweets are
// excluded and results restricted to English, matching the corpus the
// mention network is built from. maxResults is capped at the API page
// limit; values below the API minimum are raised to it.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]tweet.Tweet, error) {
	if query == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "search query is empty")
	}
	if maxResults > maxPageSize {
		maxResults = maxPageSize
	}
	if maxResults < 10 {
		maxResults = 10 // API minimum for max_results
	}

	key := cache.SearchKey(query, maxResults)
	if data, ok, _ := c.cache.Get(ctx, key); ok {
		return decodeSearch(data)
	}

	body, err := c.search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	tweets, err := decodeSearch(body)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, body, cache.SearchTTL)
	return tweets, nil
}

// search performs the HTTP request with retry on transient failures.
func (c *Client) search(ctx context.Context, query string, maxResults int) ([]byte, error) {
	params := url.Values{
		"query":        {query + " -is:retweet lang:en"},
		"max_results":  {strconv.Itoa(maxResults)},
		"tweet.fields": {"id,text,created_at,public_metrics,author_id"},
		"expansions":   {"author_id"},
		"user.fields":  {"id,username,name"},
	}

	var body []byte
	err := httputil.Retry(ctx, 4, time.Second, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.bearer)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "search request"))
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response"))
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = data
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			return &httputil.RetryableError{
				Err:        errors.New(errors.ErrCodeRateLimited, "rate limited by twitter api"),
				RetryAfter: retryAfter(resp),
			}
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return errors.New(errors.ErrCodeUnauthorized, "twitter api rejected credentials: %s", apiErrorDetail(data))
		case resp.StatusCode >= 500:
			return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "twitter api error %d", resp.StatusCode))
		default:
			return errors.New(errors.ErrCodeNetwork, "twitter api error %d: %s", resp.StatusCode, apiErrorDetail(data))
		}
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// decodeSearch maps a raw search response onto tweet records, joining
// author usernames from the expansion block.
func decodeSearch(body []byte) ([]tweet.Tweet, error) {
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "decode search response")
	}

	authors := make(map[string]apiUser, len(sr.Includes.Users))
	for _, u := range sr.Includes.Users {
		authors[u.ID] = u
	}

	tweets := make([]tweet.Tweet, 0, len(sr.Data))
	for _, t := range sr.Data {
		out := tweet.Tweet{
			ID:      t.ID,
			Text:    t.Text,
			Author:  authors[t.AuthorID].Username,
			Metrics: t.PublicMetrics,
		}
		if ts, err := time.Parse(time.RFC3339, t.CreatedAt); err == nil {
			out.CreatedAt = ts
		}
		tweets = append(tweets, out)
	}
	return tweets, nil
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

func apiErrorDetail(data []byte) string {
	var e apiError
	if err := json.Unmarshal(data, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%.200s", string(data))
}
