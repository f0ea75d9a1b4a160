// Package tools implements the agent-callable tool functions. Every tool
// returns a plain result string describing success or failure; errors never
// cross the tool boundary.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/y-ymmt/ikitaitoko-bot/internal/pkg/logger"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/geo"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/llm"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/notion"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/search"
)

// PlaceStore is the document-store surface the tools need.
type PlaceStore interface {
	CreatePage(ctx context.Context, page notion.NewPlacePage) error
	QueryActivePlaces(ctx context.Context) ([]notion.Place, error)
}

// WebSearcher runs a web search for the search_web tool.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

type Toolbox struct {
	store    PlaceStore
	geocoder geo.Geocoder
	searcher WebSearcher
	logger   logger.ILogger

	// Now is the clock used by get_current_datetime; replaced in tests.
	Now func() time.Time
}

func NewToolbox(store PlaceStore, geocoder geo.Geocoder, searcher WebSearcher, log logger.ILogger) *Toolbox {
	return &Toolbox{
		store:    store,
		geocoder: geocoder,
		searcher: searcher,
		logger:   log,
		Now:      time.Now,
	}
}

// Definitions lists every tool exposed to the agent.
func (t *Toolbox) Definitions() []llm.ToolDef {
	return []llm.ToolDef{
		{
			Name:        "add_place",
			Description: "行きたいところリストに新しい場所を追加します。",
			Properties: map[string]any{
				"name":     map[string]any{"type": "string", "description": "追加する場所の名前（必須）"},
				"category": map[string]any{"type": "string", "description": "カテゴリ。「旅行」「飲食店」「買い物」「その他」のいずれか。デフォルトは「その他」"},
				"priority": map[string]any{"type": "string", "description": "優先度。「高」「中」「低」のいずれか。デフォルトは「中」"},
				"memo":     map[string]any{"type": "string", "description": "メモ（任意）"},
				"address":  map[string]any{"type": "string", "description": "住所（任意）。距離検索に使用されます"},
			},
			Required: []string{"name"},
		},
		{
			Name:        "geocode",
			Description: "住所や場所名から座標（緯度・経度）を取得します。",
			Properties: map[string]any{
				"query": map[string]any{"type": "string", "description": "住所または場所名（例: \"東京都渋谷区\"、\"新宿駅\"、\"東京タワー\"）"},
			},
			Required: []string{"query"},
		},
		{
			Name:        "get_distance",
			Description: "2つの場所間の直線距離を計算します。",
			Properties: map[string]any{
				"origin":      map[string]any{"type": "string", "description": "出発地点（住所または場所名、例: \"新宿駅\"）"},
				"destination": map[string]any{"type": "string", "description": "目的地（住所または場所名、例: \"東京タワー\"）"},
			},
			Required: []string{"origin", "destination"},
		},
		{
			Name:        "find_nearby_places",
			Description: "指定した場所から近い順に、行きたいところリストの場所を検索します。リスト内の各場所の「住所」プロパティを元に距離を計算します。",
			Properties: map[string]any{
				"reference_location": map[string]any{"type": "string", "description": "基準となる場所（住所または場所名、例: \"新宿駅\"、\"東京都渋谷区\"）"},
				"max_distance_km":    map[string]any{"type": "number", "description": "検索する最大距離（km）。デフォルトは10km"},
			},
			Required: []string{"reference_location"},
		},
		{
			Name:        "get_current_datetime",
			Description: "現在の日時を日本標準時（JST）で取得します。",
			Properties:  map[string]any{},
		},
		{
			Name:        "get_google_maps_route_url",
			Description: "Googleマップで経路を表示するURLを生成します。",
			Properties: map[string]any{
				"origin":      map[string]any{"type": "string", "description": "出発地（場所名または住所）"},
				"destination": map[string]any{"type": "string", "description": "目的地（場所名または住所）"},
				"waypoints":   map[string]any{"type": "string", "description": "経由地。複数ある場合は「|」で区切る（例: \"渋谷駅|品川駅\"）。省略可"},
				"travel_mode": map[string]any{"type": "string", "description": "移動手段。「車」「電車」「徒歩」「自転車」のいずれか。省略するとGoogleマップのデフォルト"},
			},
			Required: []string{"origin", "destination"},
		},
		{
			Name:        "search_web",
			Description: "場所に関する情報をWeb検索します。検索結果を要約してユーザーに伝えてください。",
			Properties: map[string]any{
				"query": map[string]any{"type": "string", "description": "検索クエリ"},
			},
			Required: []string{"query"},
		},
	}
}

// Execute dispatches one tool call by name. It satisfies llm.ToolExecutor.
func (t *Toolbox) Execute(ctx context.Context, name string, args json.RawMessage) (string, bool) {
	switch name {
	case "add_place":
		var in struct {
			Name     string `json:"name"`
			Category string `json:"category"`
			Priority string `json:"priority"`
			Memo     string `json:"memo"`
			Address  string `json:"address"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fmt.Sprintf("invalid arguments: %v", err), true
		}
		return t.AddPlace(ctx, in.Name, in.Category, in.Priority, in.Memo, in.Address), false

	case "geocode":
		var in struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fmt.Sprintf("invalid arguments: %v", err), true
		}
		return t.Geocode(ctx, in.Query), false

	case "get_distance":
		var in struct {
			Origin      string `json:"origin"`
			Destination string `json:"destination"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fmt.Sprintf("invalid arguments: %v", err), true
		}
		return t.GetDistance(ctx, in.Origin, in.Destination), false

	case "find_nearby_places":
		var in struct {
			ReferenceLocation string  `json:"reference_location"`
			MaxDistanceKm     float64 `json:"max_distance_km"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fmt.Sprintf("invalid arguments: %v", err), true
		}
		return t.FindNearbyPlaces(ctx, in.ReferenceLocation, in.MaxDistanceKm), false

	case "get_current_datetime":
		return t.GetCurrentDatetime(), false

	case "get_google_maps_route_url":
		var in struct {
			Origin      string `json:"origin"`
			Destination string `json:"destination"`
			Waypoints   string `json:"waypoints"`
			TravelMode  string `json:"travel_mode"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fmt.Sprintf("invalid arguments: %v", err), true
		}
		return GoogleMapsRouteURL(in.Origin, in.Destination, in.Waypoints, in.TravelMode), false

	case "search_web":
		var in struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return fmt.Sprintf("invalid arguments: %v", err), true
		}
		return t.SearchWeb(ctx, in.Query), false
	}
	return fmt.Sprintf("unknown tool: %s", name), true
}
