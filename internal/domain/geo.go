package domain

// IPInfo is the caller's public address and coarse location as reported
// by the IP lookup service.
type IPInfo struct {
	IP      string
	City    string
	Country string
	Lat     float64
	Lon     float64
}

// Place is one geocoding result.
type Place struct {
	Name    string
	Country string
	Lat     float64
	Lon     float64
}

// Weather is the current conditions at a location.
type Weather struct {
	Temperature float64
	WindSpeed   float64
	Code        int
	Timezone    string
}
