package tools

import (
	"context"
	"fmt"

	"github.com/y-ymmt/ikitaitoko-bot/pkg/geo"
)

// Geocode resolves an address or place name and renders the coordinate.
func (t *Toolbox) Geocode(ctx context.Context, query string) string {
	coord, found, err := t.geocoder.Geocode(ctx, query)
	if err != nil || !found {
		return fmt.Sprintf("「%s」の座標を取得できませんでした。より具体的な住所や場所名を指定してください。", query)
	}
	return fmt.Sprintf("「%s」の座標:\n緯度: %v\n経度: %v", query, coord.Lat, coord.Lon)
}

// GetDistance geocodes both endpoints and renders the great-circle distance.
// If the origin fails, the destination is not looked up.
func (t *Toolbox) GetDistance(ctx context.Context, origin, destination string) string {
	originCoord, found, err := t.geocoder.Geocode(ctx, origin)
	if err != nil || !found {
		return fmt.Sprintf("出発地点「%s」の座標を取得できませんでした。", origin)
	}

	destCoord, found, err := t.geocoder.Geocode(ctx, destination)
	if err != nil || !found {
		return fmt.Sprintf("目的地「%s」の座標を取得できませんでした。", destination)
	}

	distance := geo.DistanceKm(originCoord, destCoord)
	return fmt.Sprintf("「%s」から「%s」までの直線距離: 約 %.1f km", origin, destination, distance)
}
