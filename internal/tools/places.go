package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/y-ymmt/ikitaitoko-bot/pkg/geo"
	"github.com/y-ymmt/ikitaitoko-bot/pkg/notion"
)

// DefaultMaxDistanceKm is the nearby-search radius when the caller omits one.
const DefaultMaxDistanceKm = 10.0

var (
	validCategories = []string{"旅行", "飲食店", "買い物", "その他"}
	validPriorities = []string{"高", "中", "低"}
)

const (
	defaultCategory = "その他"
	defaultPriority = "中"
)

// AddPlace creates one new list entry. Category and priority outside their
// vocabularies are coerced to the defaults, never rejected.
func (t *Toolbox) AddPlace(ctx context.Context, name, category, priority, memo, address string) string {
	if strings.TrimSpace(name) == "" {
		return "場所の名前を指定してください。"
	}

	if !lo.Contains(validCategories, category) {
		category = defaultCategory
	}
	if !lo.Contains(validPriorities, priority) {
		priority = defaultPriority
	}

	err := t.store.CreatePage(ctx, notion.NewPlacePage{
		Name:     name,
		Category: category,
		Priority: priority,
		Memo:     memo,
		Address:  address,
	})
	if err != nil {
		t.logger.Error("tools", "failed to add place", map[string]interface{}{"name": name, "error": err.Error()})
		return fmt.Sprintf("場所の追加に失敗しました: %v", err)
	}

	result := fmt.Sprintf("「%s」を行きたいところリストに追加しました！\nカテゴリ: %s\n優先度: %s", name, category, priority)
	if address != "" {
		result += fmt.Sprintf("\n住所: %s", address)
	}
	return result
}

type rankedPlace struct {
	name       string
	category   string
	address    string
	distanceKm float64
}

// FindNearbyPlaces lists the stored places within maxDistanceKm of a
// reference location, closest first. Places whose address is missing or does
// not geocode are reported separately instead of aborting the search.
func (t *Toolbox) FindNearbyPlaces(ctx context.Context, referenceLocation string, maxDistanceKm float64) string {
	if maxDistanceKm <= 0 {
		maxDistanceKm = DefaultMaxDistanceKm
	}

	ref, found, err := t.geocoder.Geocode(ctx, referenceLocation)
	if err != nil || !found {
		return fmt.Sprintf("基準地点「%s」の座標を取得できませんでした。より具体的な住所や場所名を指定してください。", referenceLocation)
	}

	places, err := t.store.QueryActivePlaces(ctx)
	if err != nil {
		t.logger.Error("tools", "failed to query notion", map[string]interface{}{"error": err.Error()})
		return fmt.Sprintf("Notionデータベースの取得に失敗しました: %v", err)
	}
	if len(places) == 0 {
		return "行きたいところリストに登録されている場所がありません。"
	}

	var ranked []rankedPlace
	var unlocatable []notion.Place

	for _, place := range places {
		if place.Address == "" {
			unlocatable = append(unlocatable, place)
			continue
		}
		coord, ok, err := t.geocoder.Geocode(ctx, place.Address)
		if err != nil || !ok {
			unlocatable = append(unlocatable, place)
			continue
		}
		distance := geo.DistanceKm(ref, coord)
		if distance <= maxDistanceKm {
			ranked = append(ranked, rankedPlace{
				name:       place.Name,
				category:   place.Category,
				address:    place.Address,
				distanceKm: distance,
			})
		}
	}

	// Ties keep document-store order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distanceKm < ranked[j].distanceKm
	})

	lines := []string{fmt.Sprintf("「%s」から %skm 以内の場所:\n", referenceLocation, formatKm(maxDistanceKm))}

	if len(ranked) > 0 {
		for i, place := range ranked {
			line := fmt.Sprintf("%d. %s", i+1, place.name)
			if place.category != "" {
				line += fmt.Sprintf(" [%s]", place.category)
			}
			line += fmt.Sprintf("\n   距離: %.1fkm", place.distanceKm)
			line += fmt.Sprintf("\n   住所: %s", place.address)
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, fmt.Sprintf("該当する場所はありませんでした（%skm以内）。", formatKm(maxDistanceKm)))
	}

	if len(unlocatable) > 0 {
		lines = append(lines, fmt.Sprintf("\n※ 住所が未登録で検索できなかった場所が %d 件あります:", len(unlocatable)))
		shown := lo.Slice(unlocatable, 0, 5)
		lines = append(lines, lo.Map(shown, func(p notion.Place, _ int) string {
			return fmt.Sprintf("  - %s", p.Name)
		})...)
		if len(unlocatable) > 5 {
			lines = append(lines, fmt.Sprintf("  ... 他 %d 件", len(unlocatable)-5))
		}
	}

	return strings.Join(lines, "\n")
}

// formatKm drops the trailing zero of whole-number radii ("10" not "10.0").
func formatKm(km float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", km), "0"), ".")
}
