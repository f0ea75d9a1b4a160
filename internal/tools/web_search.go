package tools

import (
	"context"
	"fmt"
	"strings"
)

const maxSearchResults = 5

// SearchWeb runs a web search and renders a digest of the hits.
func (t *Toolbox) SearchWeb(ctx context.Context, query string) string {
	results, err := t.searcher.Search(ctx, query, maxSearchResults)
	if err != nil {
		t.logger.Error("tools", "web search failed", map[string]interface{}{"query": query, "error": err.Error()})
		return fmt.Sprintf("「%s」のWeb検索に失敗しました: %v", query, err)
	}
	if len(results) == 0 {
		return fmt.Sprintf("「%s」の検索結果が見つかりませんでした。", query)
	}

	lines := []string{fmt.Sprintf("「%s」の検索結果:\n", query)}
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("%d. %s\n   %s\n   %s", i+1, r.Title, r.URL, r.Content))
	}
	return strings.Join(lines, "\n")
}
