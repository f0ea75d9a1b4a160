package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-token", "db-123")
	client.BaseURL = server.URL
	return client, server
}

func TestCreatePage(t *testing.T) {
	var captured map[string]any
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/pages", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})
	defer server.Close()

	err := client.CreatePage(context.Background(), NewPlacePage{
		Name:     "東京タワー",
		Category: "旅行",
		Priority: "高",
		Memo:     "夜景がきれい",
		Address:  "東京都港区芝公園4丁目",
	})
	require.NoError(t, err)

	parent := captured["parent"].(map[string]any)
	assert.Equal(t, "db-123", parent["database_id"])

	properties := captured["properties"].(map[string]any)
	title := properties[PropName].(map[string]any)["title"].([]any)
	text := title[0].(map[string]any)["text"].(map[string]any)
	assert.Equal(t, "東京タワー", text["content"])

	category := properties[PropCategory].(map[string]any)["select"].(map[string]any)
	assert.Equal(t, "旅行", category["name"])

	visited := properties[PropVisited].(map[string]any)
	assert.Equal(t, false, visited["checkbox"])

	assert.Contains(t, properties, PropMemo)
	assert.Contains(t, properties, PropAddress)
}

func TestCreatePageOmitsEmptyOptionalProperties(t *testing.T) {
	var captured map[string]any
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})
	defer server.Close()

	err := client.CreatePage(context.Background(), NewPlacePage{
		Name:     "ラーメン屋",
		Category: "飲食店",
		Priority: "中",
	})
	require.NoError(t, err)

	properties := captured["properties"].(map[string]any)
	assert.NotContains(t, properties, PropMemo)
	assert.NotContains(t, properties, PropAddress)
}

func TestQueryActivePlaces(t *testing.T) {
	var captured map[string]any
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db-123/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results":[
			{"properties":{
				"名前":{"title":[{"plain_text":"東京タワー"}]},
				"カテゴリ":{"select":{"name":"旅行"}},
				"住所":{"rich_text":[{"plain_text":"東京都港区"}]}
			}},
			{"properties":{
				"名前":{"title":[]},
				"カテゴリ":{"select":null}
			}}
		]}`))
	})
	defer server.Close()

	places, err := client.QueryActivePlaces(context.Background())
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, Place{Name: "東京タワー", Category: "旅行", Address: "東京都港区"}, places[0])

	// Pages with an empty title keep a placeholder name.
	assert.Equal(t, "（名前なし）", places[1].Name)
	assert.Empty(t, places[1].Category)
	assert.Empty(t, places[1].Address)

	// The query must exclude soft-deleted pages with a two-arm OR filter:
	// select is not the deleted label, or select is empty.
	filter := captured["filter"].(map[string]any)
	arms := filter["or"].([]any)
	require.Len(t, arms, 2)

	first := arms[0].(map[string]any)
	assert.Equal(t, PropDeleted, first["property"])
	assert.Equal(t, "削除済み", first["select"].(map[string]any)["does_not_equal"])

	second := arms[1].(map[string]any)
	assert.Equal(t, PropDeleted, second["property"])
	assert.Equal(t, true, second["select"].(map[string]any)["is_empty"])
}

func TestQueryActivePlacesStatusError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"API token is invalid."}`))
	})
	defer server.Close()

	_, err := client.QueryActivePlaces(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
