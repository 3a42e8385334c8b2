package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/placelist"
	plmcp "github.com/fwojciec/placelist/mcp"
	"github.com/fwojciec/placelist/mock"
	"github.com/fwojciec/placelist/scrape"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callFetchList(t *testing.T, s *plmcp.Server, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = plmcp.FetchListTool
	req.Params.Arguments = args
	result, err := s.FetchList(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_FetchList(t *testing.T) {
	t.Parallel()

	t.Run("returns the scraped list as JSON", func(t *testing.T) {
		t.Parallel()

		var fetched string
		scraper := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetched = url
					return "<html></html>", nil
				},
			},
			Cards: &mock.CardReader{
				ReadCardsFn: func(_ string) ([]placelist.Card, error) {
					return []placelist.Card{
						{Text: "Weekend\nCozy Spots"},
						{Text: "Joe's Pizza\n4.5 (200)\nItalian · $$"},
					}, nil
				},
			},
		}

		result := callFetchList(t, plmcp.NewServer(scraper), map[string]any{"url": "https://maps.example.com/list/1"})

		assert.False(t, result.IsError)
		assert.Equal(t, "https://maps.example.com/list/1", fetched)
		assert.JSONEq(t, `{
			"list_description": "Cozy Spots",
			"items": [{"name": "Joe's Pizza", "rating": "4.5", "description": "Italian · $$", "price": "$$"}]
		}`, resultText(t, result))
	})

	t.Run("rejects blank url without scraping", func(t *testing.T) {
		t.Parallel()

		scraper := &mock.Scraper{
			ScrapeFn: func(_ context.Context, _ string) (*placelist.PlaceList, error) {
				t.Fatal("scrape should not be called")
				return nil, nil
			},
		}
		s := plmcp.NewServer(scraper)

		for _, args := range []map[string]any{{"url": "   "}, {}} {
			result := callFetchList(t, s, args)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), "non-empty")
		}
	})

	t.Run("scrape failure is a tool error", func(t *testing.T) {
		t.Parallel()

		scraper := &mock.Scraper{
			ScrapeFn: func(_ context.Context, _ string) (*placelist.PlaceList, error) {
				return nil, errors.New("browser crashed")
			},
		}

		result := callFetchList(t, plmcp.NewServer(scraper), map[string]any{"url": "https://maps.example.com"})

		assert.True(t, result.IsError)
		assert.Equal(t, "Failed to load URL: browser crashed", resultText(t, result))
	})

	t.Run("invalid url reports its message", func(t *testing.T) {
		t.Parallel()

		scraper := &scrape.Scraper{Fetcher: &mock.Fetcher{}}

		result := callFetchList(t, plmcp.NewServer(scraper), map[string]any{"url": "ftp://maps.example.com"})

		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "scheme must be http or https")
	})
}

func TestServer_HandleMessage(t *testing.T) {
	t.Parallel()

	s := plmcp.NewServer(&mock.Scraper{})

	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"name":"fetch_list"`)
	assert.Contains(t, string(b), `"url"`)
}
