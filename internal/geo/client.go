// Package geo wraps the external REST services the terminal relies on:
// ipinfo.io for the visitor's public address, ipapi.co for coarse IP
// location, open-meteo for geocoding and current weather, and nominatim
// for reverse geocoding. All wrappers are thin; callers are expected to
// degrade to placeholder values on any error.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// ErrNotFound is returned when a geocoding query matches nothing.
var ErrNotFound = errors.New("geo: location not found")

// Position error codes, mirroring the W3C geolocation codes the terminal
// maps to human-readable messages.
const (
	PositionDenied      = 1
	PositionUnavailable = 2
	PositionTimeout     = 3
)

// PositionError reports a failed GPS position request.
type PositionError struct {
	Code int
}

func (e *PositionError) Error() string {
	switch e.Code {
	case PositionDenied:
		return "geo: position permission denied"
	case PositionUnavailable:
		return "geo: position unavailable"
	case PositionTimeout:
		return "geo: position request timed out"
	default:
		return fmt.Sprintf("geo: position error %d", e.Code)
	}
}

// Client talks to the external services. The base URLs are fields so
// tests can point them at local fakes.
type Client struct {
	http      *http.Client
	userAgent string

	IPInfoURL    string
	IPAPIURL     string
	GeocodeURL   string
	NominatimURL string
	ForecastURL  string
}

// NewClient creates a Client identifying itself as userAgent.
func NewClient(userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		userAgent: userAgent,

		IPInfoURL:    "https://ipinfo.io/json",
		IPAPIURL:     "https://ipapi.co",
		GeocodeURL:   "https://geocoding-api.open-meteo.com/v1/search",
		NominatimURL: "https://nominatim.openstreetmap.org/reverse",
		ForecastURL:  "https://api.open-meteo.com/v1/forecast",
	}
}

// IPInfo returns the caller's public IP and coarse location.
func (c *Client) IPInfo(ctx context.Context) (*domain.IPInfo, error) {
	var body struct {
		IP      string `json:"ip"`
		City    string `json:"city"`
		Country string `json:"country"`
		Loc     string `json:"loc"` // "lat,lon"
	}
	if err := c.getJSON(ctx, c.IPInfoURL, &body); err != nil {
		return nil, err
	}

	info := &domain.IPInfo{IP: body.IP, City: body.City, Country: body.Country}
	if lat, lon, ok := parseLoc(body.Loc); ok {
		info.Lat, info.Lon = lat, lon
	}
	return info, nil
}

// Locate returns a "City, Country" string for an IP address.
func (c *Client) Locate(ctx context.Context, ip string) (string, error) {
	var body struct {
		City        string `json:"city"`
		CountryName string `json:"country_name"`
		Error       bool   `json:"error"`
		Reason      string `json:"reason"`
	}
	u := fmt.Sprintf("%s/%s/json/", c.IPAPIURL, url.PathEscape(ip))
	if err := c.getJSON(ctx, u, &body); err != nil {
		return "", err
	}
	if body.Error {
		return "", fmt.Errorf("geo: ip lookup failed: %s", body.Reason)
	}

	parts := make([]string, 0, 2)
	if body.City != "" {
		parts = append(parts, body.City)
	}
	if body.CountryName != "" {
		parts = append(parts, body.CountryName)
	}
	if len(parts) == 0 {
		return "", ErrNotFound
	}
	return strings.Join(parts, ", "), nil
}

// Geocode resolves a free-text place name to coordinates.
func (c *Client) Geocode(ctx context.Context, name string) (*domain.Place, error) {
	var body struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	u := c.GeocodeURL + "?name=" + url.QueryEscape(name)
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if len(body.Results) == 0 {
		return nil, ErrNotFound
	}

	first := body.Results[0]
	return &domain.Place{
		Name:    first.Name,
		Country: first.Country,
		Lat:     first.Latitude,
		Lon:     first.Longitude,
	}, nil
}

// ReverseGeocode resolves coordinates to a display name. Callers fall
// back to raw coordinates when this fails.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	var body struct {
		Address struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			Hamlet  string `json:"hamlet"`
			County  string `json:"county"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"address"`
	}
	u := fmt.Sprintf("%s?format=json&lat=%s&lon=%s",
		c.NominatimURL, formatCoord(lat), formatCoord(lon))
	if err := c.getJSON(ctx, u, &body); err != nil {
		return "", err
	}

	a := body.Address
	locality := firstNonEmpty(a.City, a.Town, a.Village, a.Hamlet, a.County)
	parts := make([]string, 0, 3)
	for _, p := range []string{locality, a.State, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", ErrNotFound
	}
	return strings.Join(parts, ", "), nil
}

// CurrentWeather returns the current conditions at the coordinates.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*domain.Weather, error) {
	var body struct {
		Timezone       string `json:"timezone"`
		CurrentWeather *struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	u := fmt.Sprintf("%s?latitude=%s&longitude=%s&current_weather=true&timezone=auto",
		c.ForecastURL, formatCoord(lat), formatCoord(lon))
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.CurrentWeather == nil {
		return nil, errors.New("geo: no weather data available")
	}

	return &domain.Weather{
		Temperature: body.CurrentWeather.Temperature,
		WindSpeed:   body.CurrentWeather.WindSpeed,
		Code:        body.CurrentWeather.WeatherCode,
		Timezone:    body.Timezone,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

func parseLoc(loc string) (lat, lon float64, ok bool) {
	parts := strings.SplitN(loc, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

func formatCoord(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
