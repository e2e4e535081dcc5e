package blog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleFeed = `{
  "version": "https://jsonfeed.org/version/1.1",
  "items": [
    {"id": "a", "url": "/posts/a", "title": "Oldest", "summary": "A", "date_published": "2024-01-01T00:00:00Z"},
    {"url": "https://blog.example.com/b", "title": "Modified only", "content_text": "B  text", "date_modified": "2024-06-01T00:00:00Z"},
    {"id": "c", "url": "posts/c", "title": "Newest", "content_html": "<p>Hello <b>there</b></p><img src=\"/img/c.png\">", "date_published": "2025-02-01T10:00:00Z", "tags": ["x", " "]},
    {"id": "d", "url": "/posts/d", "title": "Undated", "banner_image": "/img/d.png"},
    {"id": "e", "url": "/posts/e", "title": "Middle", "image": "https://cdn.example.com/e.png", "date_published": "2024-09-01"},
    {"id": "f", "url": "/posts/f", "title": ""}
  ]
}`

func feedServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/feed+json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestSortsAndLimits(t *testing.T) {
	srv := feedServer(t, http.StatusOK, sampleFeed, nil)
	c := NewClient(srv.URL, WithBasePath("/site/"))

	posts, src, err := c.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, SourceFeed, src)
	require.Len(t, posts, Limit)

	require.Equal(t, "c", posts[0].ID)
	require.Equal(t, "e", posts[1].ID)
	require.Equal(t, "https://blog.example.com/b", posts[2].ID)
	for i := 1; i < len(posts); i++ {
		require.False(t, posts[i].Date().After(posts[i-1].Date()), "posts must be non-increasing")
	}

	require.Equal(t, "/site/posts/c", posts[0].URL)
	require.Equal(t, "/site/img/c.png", posts[0].Image)
	require.Equal(t, "Hello there", posts[0].Summary)
	require.Equal(t, []string{"x"}, posts[0].Tags)
	require.Equal(t, "https://cdn.example.com/e.png", posts[1].Image)
	require.Equal(t, "B text", posts[2].Summary)
}

func TestLatestFallsBackOnFailures(t *testing.T) {
	cases := map[string]*httptest.Server{
		"status":    feedServer(t, http.StatusInternalServerError, `{}`, nil),
		"malformed": feedServer(t, http.StatusOK, `{"items": [`, nil),
		"empty":     feedServer(t, http.StatusOK, `{"items": []}`, nil),
	}
	for name, srv := range cases {
		t.Run(name, func(t *testing.T) {
			posts, src, err := NewClient(srv.URL).Latest(context.Background())
			require.NoError(t, err)
			require.Equal(t, SourceFallback, src)
			requireSamples(t, posts)
		})
	}
}

func TestLatestNetworkErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	posts, src, err := NewClient(url).Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, SourceFallback, src)
	requireSamples(t, posts)
}

func TestLatestWithoutFeedURL(t *testing.T) {
	posts, src, err := NewClient("").Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, SourceFallback, src)
	requireSamples(t, posts)
}

func requireSamples(t *testing.T, posts []Post) {
	t.Helper()
	require.Len(t, posts, 3)
	for _, p := range posts {
		require.True(t, strings.HasPrefix(p.ID, "sample-"), p.ID)
	}
}

func TestLatestCachesAndSharesFetch(t *testing.T) {
	var hits atomic.Int32
	srv := feedServer(t, http.StatusOK, sampleFeed, &hits)
	c := NewClient(srv.URL, WithCacheTTL(time.Hour))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = c.Latest(context.Background())
		}()
	}
	wg.Wait()
	_, _, err := c.Latest(context.Background())
	require.NoError(t, err)
	require.LessOrEqual(t, hits.Load(), int32(8))
	before := hits.Load()

	_, _, err = c.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, before, hits.Load(), "cached result must not refetch")

	clock := time.Now().Add(2 * time.Hour)
	c.now = func() time.Time { return clock }
	_, _, err = c.Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, before+1, hits.Load())
}

func TestLatestDiscardsResultForCancelledCaller(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	posts, src, err := NewClient(srv.URL).Latest(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, posts)
	require.Empty(t, src)

	ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	posts, _, err = NewClient(srv.URL).Latest(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Nil(t, posts)
}

func TestResolveURL(t *testing.T) {
	cases := []struct {
		base, raw, want string
	}{
		{"/", "/posts/a", "/posts/a"},
		{"", "posts/a", "/posts/a"},
		{"/site", "./img/x.png", "/site/img/x.png"},
		{"/site/", "/img/x.png", "/site/img/x.png"},
		{"/site", "https://example.com/a", "https://example.com/a"},
		{"/site", "http://example.com/a", "http://example.com/a"},
		{"/site", "javascript:alert(1)", ""},
		{"/site", "  ", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ResolveURL(tc.base, tc.raw), "%q + %q", tc.base, tc.raw)
	}
}

func TestTopKeepsFeedOrderForTies(t *testing.T) {
	posts := []Post{{ID: "1"}, {ID: "2"}, {ID: "3", Modified: time.Unix(10, 0)}, {ID: "4"}}
	top := Top(posts, 3)
	require.Equal(t, []string{"3", "1", "2"}, []string{top[0].ID, top[1].ID, top[2].ID})
}
