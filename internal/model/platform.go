package model

import (
	"fmt"
	"strings"
)

// Platform identifies a supported social-media platform.
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformTwitter   Platform = "Twitter"
	PlatformLinkedIn  Platform = "LinkedIn"
)

// Platforms returns the fixed set of supported platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformInstagram, PlatformFacebook, PlatformTwitter, PlatformLinkedIn}
}

// ParsePlatform maps a case-insensitive name onto a supported Platform.
func ParsePlatform(s string) (Platform, error) {
	name := strings.TrimSpace(s)
	for _, p := range Platforms() {
		if strings.EqualFold(name, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unsupported platform %q", s)
}
