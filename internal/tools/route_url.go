package tools

import (
	"fmt"
	"net/url"
	"strings"
)

// travelModes maps the bilingual vocabulary onto Google Maps travelmode
// values. Lookup is case-insensitive on the input side.
var travelModes = map[string]string{
	"車":         "driving",
	"driving":   "driving",
	"電車":        "transit",
	"transit":   "transit",
	"徒歩":        "walking",
	"walking":   "walking",
	"自転車":       "bicycling",
	"bicycling": "bicycling",
}

// GoogleMapsRouteURL builds a Google Maps directions deep link. Origin,
// destination, and each waypoint are percent-encoded independently; the pipes
// joining waypoints stay literal, which is what the Maps URL scheme expects.
// An unrecognized travel mode is dropped from the URL and called out in the
// rendered text.
func GoogleMapsRouteURL(origin, destination, waypoints, travelMode string) string {
	params := []string{
		"origin=" + url.QueryEscape(origin),
		"destination=" + url.QueryEscape(destination),
	}

	var waypointList []string
	for _, wp := range strings.Split(waypoints, "|") {
		if wp = strings.TrimSpace(wp); wp != "" {
			waypointList = append(waypointList, wp)
		}
	}
	if len(waypointList) > 0 {
		encoded := make([]string, len(waypointList))
		for i, wp := range waypointList {
			encoded[i] = url.QueryEscape(wp)
		}
		params = append(params, "waypoints="+strings.Join(encoded, "|"))
	}

	resolvedMode := ""
	if travelMode != "" {
		resolvedMode = travelModes[strings.ToLower(travelMode)]
		if resolvedMode != "" {
			params = append(params, "travelmode="+resolvedMode)
		}
	}

	mapsURL := "https://www.google.com/maps/dir/?api=1&" + strings.Join(params, "&")

	result := fmt.Sprintf("Googleマップで経路を確認:\n%s", mapsURL)
	result += fmt.Sprintf("\n\n出発地: %s\n目的地: %s", origin, destination)
	if len(waypointList) > 0 {
		result += fmt.Sprintf("\n経由地: %s", strings.Join(waypointList, " → "))
	}
	if travelMode != "" {
		if resolvedMode != "" {
			result += fmt.Sprintf("\n移動手段: %s", travelMode)
		} else {
			result += fmt.Sprintf("\n※ 移動手段「%s」は無効です。Googleマップのデフォルトが使用されます。", travelMode)
		}
	}
	return result
}
