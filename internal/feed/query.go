package feed

import "strings"

// MarketQuery builds a news search query from a market title: its first six
// words longer than three characters.
func MarketQuery(title string) string {
	var words []string
	for _, w := range strings.Fields(queryNonWord.ReplaceAllString(title, " ")) {
		if len(w) > 3 {
			words = append(words, w)
		}
		if len(words) == 6 {
			break
		}
	}
	return strings.Join(words, " ")
}

var categoryQueries = map[string]string{
	"politics":      "election politics government congress senate",
	"sports":        "sports nfl nba mlb soccer",
	"economics":     "finance economy stock market inflation",
	"crypto":        "crypto bitcoin ethereum blockchain",
	"technology":    "technology ai tech apple google nvidia",
	"entertainment": "entertainment celebrity movie music oscars",
	"all":           "top news headlines",
}

// TrendingQuery returns the news query for a category. Unknown or empty
// categories get a broad market query.
func TrendingQuery(category string) string {
	if q, ok := categoryQueries[category]; ok {
		return q
	}
	return "market finance crypto politics"
}
