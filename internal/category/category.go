package category

import (
	"fmt"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Category is a taxonomy tag.
type Category string

const (
	Politics      Category = "politics"
	Sports        Category = "sports"
	Crypto        Category = "crypto"
	Economics     Category = "economics"
	Technology    Category = "technology"
	Entertainment Category = "entertainment"
	Other         Category = "other"
)

// All returns every category in classification priority order.
func All() []Category {
	return []Category{Politics, Sports, Crypto, Economics, Technology, Entertainment, Other}
}

type rule struct {
	category Category
	matcher  *ahocorasick.Matcher
}

// Order is significant: the first group that matches wins.
var rules = []rule{
	newRule(Politics, "trump", "biden", "election", "president", "congress", "senate", "political", "vote"),
	newRule(Sports, "nfl", "nba", "mlb", "soccer", "football", "basketball", "sports", "game", "team", "player"),
	newRule(Crypto, "bitcoin", "crypto", "ethereum", "btc", "eth", "defi", "nft", "blockchain"),
	newRule(Economics, "stock", "market", "economy", "gdp", "inflation", "fed", "interest", "recession"),
	newRule(Technology, "ai", "tech", "apple", "google", "meta", "tesla", "software", "hardware"),
	newRule(Entertainment, "movie", "music", "celebrity", "oscar", "grammy", "entertainment"),
}

func newRule(c Category, keywords ...string) rule {
	return rule{category: c, matcher: ahocorasick.NewStringMatcher(keywords)}
}

// Classify tags text (typically a title) plus any tag strings. Keywords match
// as substrings of the lowercased input.
func Classify(text string, tags ...string) Category {
	all := strings.ToLower(text)
	if len(tags) > 0 {
		all += " " + strings.ToLower(strings.Join(tags, " "))
	}
	in := []byte(all)

	for _, r := range rules {
		if len(r.matcher.MatchThreadSafe(in)) > 0 {
			return r.category
		}
	}
	return Other
}

// Parse validates a category name. "all" and "" parse to the empty
// category, which filters treat as no filter.
func Parse(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return "", nil
	}
	for _, c := range All() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
