// Package blog fetches the latest posts for the home page teaser.
package blog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Limit is the number of posts shown in the teaser.
const Limit = 3

const (
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = 5 * time.Minute
	failureCacheTTL = 30 * time.Second
)

// ErrFeed wraps every failure to load the remote feed.
var ErrFeed = errors.New("blog: feed unavailable")

// Source tells where a post list came from.
type Source string

const (
	SourceFeed     Source = "feed"
	SourceFallback Source = "fallback"
)

// Post is one teaser entry.
type Post struct {
	ID        string
	Title     string
	Summary   string
	URL       string
	Image     string
	Tags      []string
	Published time.Time
	Modified  time.Time
}

// Date returns the timestamp the post is ordered by: published, then
// modified, then the zero time.
func (p Post) Date() time.Time {
	if !p.Published.IsZero() {
		return p.Published
	}
	return p.Modified
}

// Client loads the feed with a shared in-flight request and a TTL cache.
type Client struct {
	feedURL  string
	basePath string
	http     *http.Client
	logger   *zap.Logger
	ttl      time.Duration
	now      func() time.Time

	group singleflight.Group
	mu    sync.RWMutex
	cache cacheEntry
}

type cacheEntry struct {
	posts   []Post
	source  Source
	expires time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithBasePath sets the path site-relative links resolve against.
func WithBasePath(p string) Option {
	return func(c *Client) { c.basePath = p }
}

// WithLogger sets the logger used for feed failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCacheTTL overrides how long a successful fetch is served from memory.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// NewClient constructs a feed client. An empty feedURL serves the built-in posts.
func NewClient(feedURL string, opts ...Option) *Client {
	c := &Client{
		feedURL: strings.TrimSpace(feedURL),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
		ttl:     defaultCacheTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type result struct {
	posts  []Post
	source Source
}

// Latest returns up to Limit posts, newest first. Feed failures fall back to
// the built-in posts and are not reported as errors. When ctx ends before the
// result is ready, the result is discarded and ctx.Err() returned.
func (c *Client) Latest(ctx context.Context) ([]Post, Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if c == nil || c.feedURL == "" {
		return Fallback(), SourceFallback, nil
	}
	if posts, src, ok := c.cached(); ok {
		return posts, src, nil
	}

	ch := c.group.DoChan("latest", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
		defer cancel()

		posts, err := c.fetch(fetchCtx)
		if err != nil {
			c.logger.Warn("blog feed fallback", zap.String("feed", c.feedURL), zap.Error(err))
			c.store(Fallback(), SourceFallback, failureCacheTTL)
			return result{posts: Fallback(), source: SourceFallback}, nil
		}
		c.store(posts, SourceFeed, c.ttl)
		return result{posts: posts, source: SourceFeed}, nil
	})

	select {
	case <-ctx.Done():
		return nil, "", ctx.Err()
	case res := <-ch:
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		r := res.Val.(result)
		return clonePosts(r.posts), r.source, nil
	}
}

func (c *Client) fetch(ctx context.Context) ([]Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFeed, err)
	}
	req.Header.Set("Accept", "application/feed+json, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFeed, resp.StatusCode)
	}

	posts, err := Decode(resp.Body, c.basePath)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrFeed)
	}
	return Top(posts, Limit), nil
}

func (c *Client) cached() ([]Post, Source, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cache.posts == nil || !c.now().Before(c.cache.expires) {
		return nil, "", false
	}
	return clonePosts(c.cache.posts), c.cache.source, true
}

func (c *Client) store(posts []Post, src Source, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = cacheEntry{posts: clonePosts(posts), source: src, expires: c.now().Add(ttl)}
}

func clonePosts(src []Post) []Post {
	out := make([]Post, len(src))
	for i, p := range src {
		out[i] = p
		if p.Tags != nil {
			out[i].Tags = append([]string(nil), p.Tags...)
		}
	}
	return out
}
