package geo

import "strings"

type City struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Country string  `json:"country,omitempty"`
}

func (c City) Point() Point {
	return Point{Lat: c.Lat, Lng: c.Lng}
}

var Cities = []City{
	{Name: "New York", Lat: 40.7128, Lng: -74.0060, Country: "USA"},
	{Name: "Los Angeles", Lat: 34.0522, Lng: -118.2437, Country: "USA"},
	{Name: "Chicago", Lat: 41.8781, Lng: -87.6298, Country: "USA"},
	{Name: "Houston", Lat: 29.7604, Lng: -95.3698, Country: "USA"},
	{Name: "Phoenix", Lat: 33.4484, Lng: -112.0742, Country: "USA"},
	{Name: "Philadelphia", Lat: 39.9526, Lng: -75.1652, Country: "USA"},
	{Name: "San Antonio", Lat: 29.4241, Lng: -98.4936, Country: "USA"},
	{Name: "San Diego", Lat: 32.7157, Lng: -117.1611, Country: "USA"},
	{Name: "Dallas", Lat: 32.7767, Lng: -96.7970, Country: "USA"},
	{Name: "San Jose", Lat: 37.3382, Lng: -121.8863, Country: "USA"},
	{Name: "Austin", Lat: 30.2672, Lng: -97.7431, Country: "USA"},
	{Name: "Denver", Lat: 39.7392, Lng: -104.9903, Country: "USA"},
	{Name: "Seattle", Lat: 47.6062, Lng: -122.3321, Country: "USA"},
	{Name: "Boston", Lat: 42.3601, Lng: -71.0589, Country: "USA"},
	{Name: "Miami", Lat: 25.7617, Lng: -80.1918, Country: "USA"},
	{Name: "Portland", Lat: 45.5152, Lng: -122.6784, Country: "USA"},
	{Name: "Atlanta", Lat: 33.7490, Lng: -84.3880, Country: "USA"},
	{Name: "London", Lat: 51.5074, Lng: -0.1278, Country: "UK"},
	{Name: "Toronto", Lat: 43.6532, Lng: -79.3832, Country: "Canada"},
	{Name: "Mexico City", Lat: 19.4326, Lng: -99.1332, Country: "Mexico"},
	{Name: "Barcelona", Lat: 41.3874, Lng: 2.1686, Country: "Spain"},
	{Name: "Madrid", Lat: 40.4168, Lng: -3.7038, Country: "Spain"},
	{Name: "Paris", Lat: 48.8566, Lng: 2.3522, Country: "France"},
	{Name: "Berlin", Lat: 52.5200, Lng: 13.4050, Country: "Germany"},
	{Name: "Amsterdam", Lat: 52.3676, Lng: 4.9041, Country: "Netherlands"},
	{Name: "Milan", Lat: 45.4642, Lng: 9.1900, Country: "Italy"},
	{Name: "Rome", Lat: 41.9028, Lng: 12.4964, Country: "Italy"},
	{Name: "Sydney", Lat: -33.8688, Lng: 151.2093, Country: "Australia"},
	{Name: "Melbourne", Lat: -37.8136, Lng: 144.9631, Country: "Australia"},
	{Name: "Singapore", Lat: 1.3521, Lng: 103.8198, Country: "Singapore"},
	{Name: "Tokyo", Lat: 35.6762, Lng: 139.6503, Country: "Japan"},
	{Name: "Mumbai", Lat: 19.0760, Lng: 72.8777, Country: "India"},
	{Name: "Bangkok", Lat: 13.7563, Lng: 100.5018, Country: "Thailand"},
	{Name: "Dubai", Lat: 25.2048, Lng: 55.2708, Country: "UAE"},
	{Name: "São Paulo", Lat: -23.5505, Lng: -46.6333, Country: "Brazil"},
	{Name: "Buenos Aires", Lat: -34.6037, Lng: -58.3816, Country: "Argentina"},
}

func CityByName(name string) (City, bool) {
	for _, c := range Cities {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return City{}, false
}

// SearchCities returns cities whose name contains query, case-insensitively.
func SearchCities(query string) []City {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []City{}
	for _, c := range Cities {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}
