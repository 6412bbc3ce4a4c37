package keyword

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	a := []string{"trump", "election", "polls"}
	b := []string{"Trump", "election", "senate", "vote"}

	require.InDelta(t, 2.0/5.0, Similarity(a, b), 1e-9)
}

func TestSimilarityIsSymmetric(t *testing.T) {
	cases := [][2][]string{
		{{"a1", "b2"}, {"b2", "c3", "d4"}},
		{{"bitcoin"}, {"BITCOIN", "price"}},
		{{"x"}, {"y"}},
	}
	for _, c := range cases {
		require.Equal(t, Similarity(c[0], c[1]), Similarity(c[1], c[0]))
	}
}

func TestSimilarityBounds(t *testing.T) {
	require.Equal(t, 1.0, Similarity([]string{"fed", "rate"}, []string{"rate", "FED"}))
	require.Equal(t, 0.0, Similarity([]string{"fed"}, []string{"nba"}))
}

func TestSimilarityEmptyInput(t *testing.T) {
	require.Equal(t, 0.0, Similarity(nil, []string{"x"}))
	require.Equal(t, 0.0, Similarity([]string{"x"}, []string{}))
}
