package acl

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotewall/internal/domain"
)

func newMemeClient(t *testing.T, handler http.HandlerFunc) *MemeClient {
	t.Helper()

	return NewMemeClient(MemeClientConfig{Client: upstream(t, "meme-service", handler), Logger: discard})
}

func TestNewMemeClient_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewMemeClient(MemeClientConfig{}) })
}

func TestMemeClient_GetMemes_PreservesOrder(t *testing.T) {
	urls := make([]string, 4)
	records := make([]map[string]any, len(urls))
	for i := range urls {
		urls[i] = gofakeit.URL() + ".jpg"
		records[i] = map[string]any{"url": urls[i], "id": gofakeit.UUID()}
	}

	body, err := json.Marshal(records)
	require.NoError(t, err)

	c := newMemeClient(t, jsonHandler(t, "/random/meme", http.StatusOK, string(body)))

	feed, err := c.GetMemes(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, len(urls))

	for i, m := range feed {
		assert.Equal(t, urls[i], m.URL)
	}

	latest, ok := feed.Latest()
	require.True(t, ok)
	assert.Equal(t, urls[len(urls)-1], latest.URL)
}

func TestMemeClient_GetMemes_Empty(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		t.Run(body, func(t *testing.T) {
			c := newMemeClient(t, jsonHandler(t, "/random/meme", http.StatusOK, body))

			feed, err := c.GetMemes(context.Background())
			require.NoError(t, err)
			assert.Empty(t, feed)

			_, ok := feed.Latest()
			assert.False(t, ok)
		})
	}
}

func TestMemeClient_GetMemes_MissingURLIsKept(t *testing.T) {
	c := newMemeClient(t, jsonHandler(t, "/random/meme", http.StatusOK, `[{"url":"a"},{"caption":"no url"}]`))

	feed, err := c.GetMemes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.MemeFeed{{URL: "a"}, {URL: ""}}, feed)
}

func TestMemeClient_GetMemes_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{name: "bad gateway", status: http.StatusBadGateway, check: domain.IsUnavailable},
		{name: "object instead of array", status: http.StatusOK, body: `{"url":"x"}`, check: domain.IsUnavailable},
		{name: "forbidden", status: http.StatusForbidden, body: `{"message":"no"}`, check: domain.IsUnavailable},
		{name: "misconfigured path", status: http.StatusNotFound, body: `{}`, check: domain.IsUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMemeClient(t, jsonHandler(t, "/random/meme", tt.status, tt.body))

			feed, err := c.GetMemes(context.Background())

			assert.Nil(t, feed)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}
}

func TestMemeClient_HealthCheck(t *testing.T) {
	c := newMemeClient(t, jsonHandler(t, "/random/meme", http.StatusOK, `[]`))

	assert.Equal(t, "meme-service", c.Name())
	assert.NoError(t, c.Check(context.Background()))
}
