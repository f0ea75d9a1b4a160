package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

// Database property names and the soft-delete label used by the
// 行きたいところリスト database schema.
const (
	PropName     = "名前"
	PropCategory = "カテゴリ"
	PropPriority = "優先度"
	PropMemo     = "メモ"
	PropAddress  = "住所"
	PropVisited  = "行った"
	PropDeleted  = "論理削除"

	deletedLabel = "削除済み"
)

// Place is the projection of a database page used for nearby search.
type Place struct {
	Name     string
	Category string
	Address  string
}

// NewPlacePage is the input to CreatePage. Memo and Address are omitted from
// the page properties entirely when empty.
type NewPlacePage struct {
	Name     string
	Category string
	Priority string
	Memo     string
	Address  string
}

// Client calls the Notion REST API for a single database.
type Client struct {
	Token      string
	DatabaseID string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(token, databaseID string) *Client {
	return &Client{
		Token:      token,
		DatabaseID: databaseID,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreatePage creates one database page with the place fields mapped onto the
// named properties. The visited checkbox always starts false.
func (c *Client) CreatePage(ctx context.Context, page NewPlacePage) error {
	properties := map[string]any{
		PropName: map[string]any{
			"title": []any{
				map[string]any{"type": "text", "text": map[string]any{"content": page.Name}},
			},
		},
		PropCategory: map[string]any{"select": map[string]any{"name": page.Category}},
		PropPriority: map[string]any{"select": map[string]any{"name": page.Priority}},
		PropVisited:  map[string]any{"checkbox": false},
	}
	if page.Memo != "" {
		properties[PropMemo] = richTextProperty(page.Memo)
	}
	if page.Address != "" {
		properties[PropAddress] = richTextProperty(page.Address)
	}

	payload := map[string]any{
		"parent":     map[string]any{"database_id": c.DatabaseID},
		"properties": properties,
	}
	return c.post(ctx, "/v1/pages", payload, nil)
}

// QueryActivePlaces returns every page whose soft-delete property is either
// absent or not equal to the deleted label, in the order the API returns them.
func (c *Client) QueryActivePlaces(ctx context.Context) ([]Place, error) {
	payload := map[string]any{
		"filter": map[string]any{
			"or": []any{
				map[string]any{
					"property": PropDeleted,
					"select":   map[string]any{"does_not_equal": deletedLabel},
				},
				map[string]any{
					"property": PropDeleted,
					"select":   map[string]any{"is_empty": true},
				},
			},
		},
	}

	var result struct {
		Results []struct {
			Properties map[string]struct {
				Title []struct {
					PlainText string `json:"plain_text"`
				} `json:"title"`
				RichText []struct {
					PlainText string `json:"plain_text"`
				} `json:"rich_text"`
				Select *struct {
					Name string `json:"name"`
				} `json:"select"`
			} `json:"properties"`
		} `json:"results"`
	}
	path := fmt.Sprintf("/v1/databases/%s/query", c.DatabaseID)
	if err := c.post(ctx, path, payload, &result); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(result.Results))
	for _, page := range result.Results {
		place := Place{Name: "（名前なし）"}

		if prop, ok := page.Properties[PropName]; ok && len(prop.Title) > 0 {
			place.Name = prop.Title[0].PlainText
		}
		if prop, ok := page.Properties[PropAddress]; ok && len(prop.RichText) > 0 {
			place.Address = prop.RichText[0].PlainText
		}
		if prop, ok := page.Properties[PropCategory]; ok && prop.Select != nil {
			place.Category = prop.Select.Name
		}

		places = append(places, place)
	}
	return places, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+path,
		bytes.NewBuffer(payloadJson),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	if out != nil {
		return json.Unmarshal(resBody, out)
	}
	return nil
}

func richTextProperty(content string) map[string]any {
	return map[string]any{
		"rich_text": []any{
			map[string]any{"type": "text", "text": map[string]any{"content": content}},
		},
	}
}
