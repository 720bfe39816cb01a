package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/mcpchat/tools"
)

func strPtr(s string) *string { return &s }

func TestResult_String_NoArticles(t *testing.T) {
	assert.Equal(t, "No news found for topic: quantum", NewResult("quantum", nil, nil).String())
	assert.Equal(t, "No news found for topic: quantum", NewResult("quantum", []Article{}, nil).String())
}

func TestResult_String_Listing(t *testing.T) {
	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("%d articles", n), func(t *testing.T) {
			var articles []Article
			for i := 1; i <= n; i++ {
				a := Article{Title: fmt.Sprintf("Title %d", i), URL: fmt.Sprintf("https://n.example/%d", i)}
				if i%2 == 1 {
					a.Description = strPtr(fmt.Sprintf("Desc %d", i))
				}
				articles = append(articles, a)
			}

			out := NewResult("AI", articles, nil).String()
			assert.True(t, strings.HasPrefix(out, "Latest news about 'AI':\n\n"))

			for i := 1; i <= n; i++ {
				entry := fmt.Sprintf("%d. Title %d\n", i, i)
				assert.Contains(t, out, entry)
				if i%2 == 1 {
					assert.Contains(t, out, fmt.Sprintf("   Desc %d...\n", i))
				}
				assert.Contains(t, out, fmt.Sprintf("   https://n.example/%d\n\n", i))
			}
			assert.NotContains(t, out, fmt.Sprintf("%d. ", n+1))
			assert.Equal(t, n/2, strings.Count(out, "No description"))
		})
	}
}

func TestResult_String_EmptyDescriptionIsNotFallback(t *testing.T) {
	out := NewResult("AI", []Article{{Title: "T", Description: strPtr(""), URL: "u"}}, nil).String()
	assert.NotContains(t, out, "No description")
	assert.Equal(t, "Latest news about 'AI':\n\n1. T\n   ...\n   u\n\n", out)
}

func TestResult_String_Failures(t *testing.T) {
	assert.Equal(t, "Error: News API key not configured",
		NewResult("AI", nil, &Failure{Kind: KindMissingKey, Err: ErrMissingAPIKey}).String())
	assert.Equal(t, "Error getting news for AI: "+assert.AnError.Error(),
		NewResult("AI", nil, assert.AnError).String())
}

func TestProvider_RegisterTools(t *testing.T) {
	var gotPageSize string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPageSize = r.URL.Query().Get("pageSize")
		w.Write([]byte(`{"status":"ok","articles":[{"title":"Rocket","description":null,"url":"https://s.example"}]}`))
	}))
	defer ts.Close()

	registry := tools.NewRegistry()
	require.NoError(t, NewProvider(NewClient("k", ts.URL, time.Second)).RegisterTools(registry))

	capability, ok := registry.Get(ToolName)
	require.True(t, ok)
	require.Len(t, capability.Params, 2)
	assert.Equal(t, DefaultLimit, capability.Params[1].Default)

	out, err := registry.Execute(context.Background(), ToolName, map[string]any{"topic": "space"})
	require.NoError(t, err)
	assert.Equal(t, "3", gotPageSize)
	assert.Equal(t, "Latest news about 'space':\n\n1. Rocket\n   No description...\n   https://s.example\n\n", out)

	_, err = registry.Execute(context.Background(), ToolName, map[string]any{"topic": "space", "limit": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, "7", gotPageSize)
}

func TestProvider_NeverFails(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	registry := tools.NewRegistry()
	require.NoError(t, NewProvider(NewClient("k", ts.URL, time.Second)).RegisterTools(registry))

	out, err := registry.Execute(context.Background(), ToolName, map[string]any{"topic": "markets"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Error getting news for markets: "), out)

	out, err = registry.Execute(context.Background(), ToolName, map[string]any{"topic": "markets", "limit": "lots"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Error getting news for markets: "), out)
}
