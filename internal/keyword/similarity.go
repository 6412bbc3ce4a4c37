package keyword

import "strings"

// Similarity calculates the Jaccard index of two keyword sets, ignoring case.
// It returns 0 when either side is empty.
func Similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set1 := lowerSet(a)
	set2 := lowerSet(b)

	intersection := 0
	for k := range set1 {
		if set2[k] {
			intersection++
		}
	}

	union := len(set1)
	for k := range set2 {
		if !set1[k] {
			union++
		}
	}

	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

func lowerSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}
