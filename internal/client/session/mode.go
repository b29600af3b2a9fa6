package session

import (
	"fmt"
	"strings"
)

// Mode selects how a session obtains its identity.
type Mode string

const (
	// ModeDevelopment calls the store as the anonymous principal.
	ModeDevelopment Mode = "development"
	// ModeProduction logs in through the identity provider.
	ModeProduction Mode = "production"
)

// ParseMode accepts the mode names and their short forms "dev" and "prod".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return ModeDevelopment, nil
	case "production", "prod":
		return ModeProduction, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}
