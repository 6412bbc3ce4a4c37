package market

import (
	"regexp"
	"strings"
	"time"
)

type Platform string

const (
	Polymarket Platform = "polymarket"
	Kalshi     Platform = "kalshi"
)

// ParsePlatform accepts "", "all" and the platform names. The empty result
// means no filter.
func ParsePlatform(s string) (Platform, bool) {
	switch s {
	case "", "all":
		return "", true
	case string(Polymarket):
		return Polymarket, true
	case string(Kalshi):
		return Kalshi, true
	}
	return "", false
}

type Market struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Category    string
	Platform    Platform
	YesPrice    float64
	NoPrice     float64
	Volume24h   float64
	Liquidity   float64
	EndDate     time.Time
	ImageURL    string
	Tags        []string
	Active      bool
	Promoted    bool
	EventSlug   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var promotedRe = regexp.MustCompile(`trump|election|israel`)

// IsPromoted reports whether a market title falls in the featured set.
func IsPromoted(title string) bool {
	return promotedRe.MatchString(strings.ToLower(title))
}
