package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// Site is the JSON site configuration served verbatim by /api/config:
// the link registry, the weather-code descriptions, the date format hints
// for the frontend, and the terminal settings.
type Site struct {
	Links        map[string]domain.LinkSpec `json:"links"`
	WeatherCodes map[string]string          `json:"weatherCodes"`
	DateFormat   map[string]any             `json:"dateFormat"`
	Terminal     TerminalSettings           `json:"terminal"`
}

// TerminalSettings controls client-visible terminal behavior.
type TerminalSettings struct {
	// StorageKey is the key under which the command history is persisted.
	StorageKey string `json:"storageKey"`
	// MaxHistorySize bounds the persisted command history.
	MaxHistorySize int `json:"maxHistorySize"`
}

// LoadSite reads and parses the site configuration file.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}

	var site Site
	if err := json.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}

	if site.Links == nil {
		site.Links = map[string]domain.LinkSpec{}
	}
	if site.Terminal.StorageKey == "" {
		site.Terminal.StorageKey = "lkevin_command_history"
	}
	if site.Terminal.MaxHistorySize <= 0 {
		site.Terminal.MaxHistorySize = 100
	}

	return &site, nil
}
