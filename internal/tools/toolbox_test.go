package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/y-ymmt/ikitaitoko-bot/pkg/geo"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/search"
)

func TestDefinitionsCoverEveryTool(t *testing.T) {
	tb := newTestToolbox(nil, nil, nil)
	defs := tb.Definitions()

	want := []string{
		"add_place",
		"geocode",
		"get_distance",
		"find_nearby_places",
		"get_current_datetime",
		"get_google_maps_route_url",
		"search_web",
	}
	if len(defs) != len(want) {
		t.Fatalf("got %d tool definitions, want %d", len(defs), len(want))
	}
	for i, name := range want {
		if defs[i].Name != name {
			t.Errorf("definition %d = %q, want %q", i, defs[i].Name, name)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	geocoder := &fakeGeocoder{coords: map[string]geo.Coordinate{
		"東京駅": {Lat: 35.6812, Lon: 139.7671},
	}}
	store := &fakeStore{}
	tb := newTestToolbox(store, geocoder, nil)

	tests := []struct {
		name      string
		tool      string
		args      string
		wantText  string
		wantError bool
	}{
		{
			name:     "add_place routes arguments",
			tool:     "add_place",
			args:     `{"name":"東京駅","category":"旅行","priority":"高"}`,
			wantText: "「東京駅」を行きたいところリストに追加しました！",
		},
		{
			name:     "geocode",
			tool:     "geocode",
			args:     `{"query":"東京駅"}`,
			wantText: "「東京駅」の座標:\n緯度: 35.6812\n経度: 139.7671",
		},
		{
			name:     "get_current_datetime takes no arguments",
			tool:     "get_current_datetime",
			args:     `{}`,
			wantText: "現在の日時:",
		},
		{
			name:      "malformed arguments flag an error",
			tool:      "add_place",
			args:      `{"name":`,
			wantText:  "invalid arguments:",
			wantError: true,
		},
		{
			name:      "unknown tool flags an error",
			tool:      "delete_everything",
			args:      `{}`,
			wantText:  "unknown tool: delete_everything",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, isError := tb.Execute(context.Background(), tt.tool, json.RawMessage(tt.args))
			if isError != tt.wantError {
				t.Errorf("isError = %v, want %v", isError, tt.wantError)
			}
			if !strings.Contains(content, tt.wantText) {
				t.Errorf("content missing %q:\n%s", tt.wantText, content)
			}
		})
	}
}

func TestGetDistance(t *testing.T) {
	geocoder := &fakeGeocoder{coords: map[string]geo.Coordinate{
		"新宿駅":   {Lat: 35.6896, Lon: 139.7006},
		"東京タワー": {Lat: 35.6586, Lon: 139.7454},
	}}
	tb := newTestToolbox(nil, geocoder, nil)

	got := tb.GetDistance(context.Background(), "新宿駅", "東京タワー")
	if !strings.HasPrefix(got, "「新宿駅」から「東京タワー」までの直線距離: 約 ") {
		t.Errorf("unexpected result: %q", got)
	}
	if !strings.HasSuffix(got, " km") {
		t.Errorf("result must end with the unit: %q", got)
	}
}

func TestGetDistanceOriginFailureShortCircuits(t *testing.T) {
	geocoder := &fakeGeocoder{coords: map[string]geo.Coordinate{
		"東京タワー": {Lat: 35.6586, Lon: 139.7454},
	}}
	tb := newTestToolbox(nil, geocoder, nil)

	got := tb.GetDistance(context.Background(), "謎の場所", "東京タワー")
	if got != "出発地点「謎の場所」の座標を取得できませんでした。" {
		t.Errorf("unexpected result: %q", got)
	}
	if len(geocoder.calls) != 1 {
		t.Errorf("destination must not be geocoded after origin failure, calls = %v", geocoder.calls)
	}
}

func TestSearchWeb(t *testing.T) {
	searcher := &fakeSearcher{results: []search.Result{
		{Title: "東京タワー 公式", URL: "https://example.com/tower", Content: "営業時間は9時から23時。"},
		{Title: "観光ガイド", URL: "https://example.com/guide", Content: "展望台の料金情報。"},
	}}
	tb := newTestToolbox(nil, nil, searcher)

	got := tb.SearchWeb(context.Background(), "東京タワー 営業時間")
	if !strings.Contains(got, "「東京タワー 営業時間」の検索結果:") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "1. 東京タワー 公式") || !strings.Contains(got, "2. 観光ガイド") {
		t.Errorf("results not numbered:\n%s", got)
	}
	if !strings.Contains(got, "https://example.com/tower") {
		t.Errorf("missing url:\n%s", got)
	}
}

func TestSearchWebNoResults(t *testing.T) {
	tb := newTestToolbox(nil, nil, &fakeSearcher{})

	got := tb.SearchWeb(context.Background(), "zzz")
	if got != "「zzz」の検索結果が見つかりませんでした。" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestSearchWebError(t *testing.T) {
	tb := newTestToolbox(nil, nil, &fakeSearcher{err: errors.New("rate limited")})

	got := tb.SearchWeb(context.Background(), "東京")
	if !strings.Contains(got, "「東京」のWeb検索に失敗しました") {
		t.Errorf("unexpected result: %q", got)
	}
}
