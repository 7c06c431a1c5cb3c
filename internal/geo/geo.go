// Package geo extracts coordinates from free-text match locations and
// measures straight-line distance between them.
package geo

import (
	"math"
	"regexp"
	"strconv"
)

const earthRadiusKm = 6371.0

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var (
	// maps.google.com/?q=40.7128,-74.0060 and google.com/maps/@40.7128,-74.0060
	mapsURLPattern = regexp.MustCompile(`[?@]([+-]?\d+\.\d+),([+-]?\d+\.\d+)`)
	plainPattern   = regexp.MustCompile(`([+-]?\d+\.\d+),\s*([+-]?\d+\.\d+)`)
)

// ExtractCoordinates finds a latitude/longitude pair embedded in location.
func ExtractCoordinates(location string) (Point, bool) {
	if location == "" {
		return Point{}, false
	}

	if m := mapsURLPattern.FindStringSubmatch(location); m != nil {
		if p, ok := parsePair(m[1], m[2]); ok {
			return p, true
		}
	}

	if m := plainPattern.FindStringSubmatch(location); m != nil {
		if p, ok := parsePair(m[1], m[2]); ok && p.Valid() {
			return p, true
		}
	}

	return Point{}, false
}

func parsePair(lat, lng string) (Point, bool) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Point{}, false
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return Point{}, false
	}
	return Point{Lat: la, Lng: ln}, true
}

func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Distance returns the haversine distance between a and b in kilometers.
func Distance(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Within reports whether location carries coordinates no farther than radiusKm from center.
func Within(location string, center Point, radiusKm float64) bool {
	p, ok := ExtractCoordinates(location)
	if !ok {
		return false
	}
	return Distance(center, p) <= radiusKm
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
