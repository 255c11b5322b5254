package kz

import (
	"fmt"
	"strings"

	"github.com/leighmacdonald/steamid/v4/steamid"
)

// NormalizeSteamID converts any textual SteamID form (STEAM_X:Y:Z, [U:1:Z] or
// SteamID64) into its SteamID64 string.
func NormalizeSteamID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty steam id")
	}

	sid := steamid.New(raw)
	if !sid.Valid() {
		return "", fmt.Errorf("invalid steam id: %q", raw)
	}

	return sid.String(), nil
}

// SteamProfileURL returns the Steam Community profile link for a SteamID64
func SteamProfileURL(steamID64 string) string {
	return "https://steamcommunity.com/profiles/" + steamID64
}
