package shell

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/kev1nl1u/lkev.in/internal/geo"
)

func runSudoUsage(ctx context.Context, s *Session, args []string) {
	// Reached only for a bare `sudo`; with an argument the session
	// intercepts the line and opens the password prompt instead.
	if len(args) == 0 {
		s.printP("usage: <code>sudo</code> [command [arg...]]")
	}
}

func runEcho(ctx context.Context, s *Session, args []string) {
	s.printP(html.EscapeString(strings.Join(args, " ")))
}

func runClear(ctx context.Context, s *Session, args []string) {
	s.surface.Clear()
}

func runExit(ctx context.Context, s *Session, args []string) {
	s.printP("Exiting terminal...")
	s.printError("exit", "Unable to close terminal.")
}

func runLs(ctx context.Context, s *Session, args []string) {
	s.printP("Available connections:<br/>" + linksListHTML(s.links))
}

func runMotd(ctx context.Context, s *Session, args []string) {
	lines, err := s.motd.Lines()
	if err != nil {
		s.printError("motd", "could not fetch message of the day")
		return
	}
	if len(lines) == 0 {
		s.printP("No message of the day set.")
		return
	}
	s.printP(formatMotd(lines, true))
}

func runInfo(ctx context.Context, s *Session, args []string) {
	wantsServer := false
	for _, a := range args {
		switch strings.ToLower(a) {
		case "server", "srv":
			wantsServer = true
		}
	}

	if wantsServer {
		s.startLive(ctx)
		return
	}

	ip := s.client.IP
	if ip == "" {
		ip = "unknown"
	}
	location := "unknown"
	if s.geo != nil && s.client.IP != "" {
		if loc, err := s.geo.Locate(ctx, s.client.IP); err == nil {
			location = loc
		}
	}
	ua := s.client.UserAgent
	if ua == "" {
		ua = "unknown agent"
	}

	s.printP("<strong>Your Session Information:</strong><br/>" +
		"User Agent: " + html.EscapeString(ua) + "<br/>" +
		"IP Address: " + html.EscapeString(ip) + "<br/>" +
		"Location: " + html.EscapeString(location))
}

func runWeather(ctx context.Context, s *Session, args []string) {
	wantsGPS := false
	var queryParts []string
	for _, a := range args {
		if strings.EqualFold(a, "-gps") {
			wantsGPS = true
			continue
		}
		queryParts = append(queryParts, a)
	}
	query := strings.Join(queryParts, " ")

	lat, lon, display, err := s.resolveWeatherLocation(ctx, wantsGPS, query)
	if err != nil {
		s.printError("weather", weatherLocationError(err))
		return
	}

	weather, err := s.geo.CurrentWeather(ctx, lat, lon)
	if err != nil {
		s.printError("weather", "could not fetch weather data")
		return
	}

	condition := s.weatherCodes[fmt.Sprintf("%d", weather.Code)]
	if condition == "" {
		condition = "Unknown"
	}

	when := time.Now()
	if weather.Timezone != "" {
		if loc, err := time.LoadLocation(weather.Timezone); err == nil {
			when = when.In(loc)
		}
	}

	s.surface.Print(`<div class="weather-card"><div class="weather-info">` +
		`<span class="weather-location">` + html.EscapeString(display) + `</span>` +
		`<span>` + html.EscapeString(condition) + `</span>` +
		`<span>` + fmt.Sprintf("%.1f°C", weather.Temperature) + `</span>` +
		`<span>` + fmt.Sprintf("Wind: %.1f km/h", weather.WindSpeed) + `</span>` +
		`<span>` + when.Format("Mon, 2 Jan 2006 15:04") + `</span>` +
		`</div></div>`)
}

func (s *Session) resolveWeatherLocation(ctx context.Context, wantsGPS bool, query string) (lat, lon float64, display string, err error) {
	switch {
	case wantsGPS:
		if s.gps == nil {
			return 0, 0, "", errNoGPS
		}
		lat, lon, err = s.gps.Position(ctx)
		if err != nil {
			return 0, 0, "", err
		}
		display, rerr := s.geo.ReverseGeocode(ctx, lat, lon)
		if rerr != nil || display == "" {
			display = fmt.Sprintf("Lat %.2f, Lon %.2f", lat, lon)
		}
		return lat, lon, display, nil

	case query != "":
		place, err := s.geo.Geocode(ctx, query)
		if err != nil {
			return 0, 0, "", err
		}
		return place.Lat, place.Lon, place.Name + ", " + place.Country, nil

	default:
		info, err := s.geo.IPInfo(ctx)
		if err != nil {
			return 0, 0, "", err
		}
		return info.Lat, info.Lon, info.City + ", " + info.Country, nil
	}
}

var errNoGPS = errors.New("shell: no GPS source available")

// weatherLocationError maps location-resolution failures to the
// user-facing message, distinguishing geolocation permission errors by
// their numeric code.
func weatherLocationError(err error) string {
	var posErr *geo.PositionError
	if errors.As(err, &posErr) {
		switch posErr.Code {
		case geo.PositionDenied:
			return "GPS authorization not given (permission denied)"
		case geo.PositionUnavailable:
			return "GPS position unavailable"
		case geo.PositionTimeout:
			return "GPS request timed out"
		}
	}
	if errors.Is(err, errNoGPS) {
		return "GPS not available in this terminal"
	}
	return "Could not resolve location."
}
