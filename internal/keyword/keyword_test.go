package keyword

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractRanksByFrequency(t *testing.T) {
	text := "bitcoin rally bitcoin price halving price bitcoin"

	got := Extract(text, 2)

	require.Equal(t, []string{"bitcoin", "price"}, got.Primary)
	require.Equal(t, []string{"rally", "halving"}, got.Secondary)
}

func TestExtractTiesKeepFirstSeenOrder(t *testing.T) {
	got := Extract("zebra apple mango apple zebra mango kiwi", 10)

	require.Equal(t, []string{"zebra", "apple", "mango", "kiwi"}, got.Primary)
	require.Empty(t, got.Secondary)
}

func TestExtractDropsStopWordsAndShortTokens(t *testing.T) {
	got := Extract("the and of to", 10)
	require.Empty(t, got.Primary)

	got = Extract("Go is an ok AI language", 10)
	require.Equal(t, []string{"language"}, got.Primary)
}

func TestExtractStripsPunctuationKeepsHyphens(t *testing.T) {
	got := Extract("Will the S&P-500 close above 6,000? (year-end)", 10)

	require.Equal(t, []string{"p-500", "close", "above", "000", "year-end"}, got.Primary)
}

func TestExtractHugeLimit(t *testing.T) {
	var got Extracted
	require.NotPanics(t, func() {
		got = Extract("bitcoin rally bitcoin price", math.MaxInt)
	})
	require.Equal(t, []string{"bitcoin", "rally", "price"}, got.Primary)
	require.Empty(t, got.Secondary)
}

func TestExtractEmptyText(t *testing.T) {
	got := Extract("", 5)

	require.Empty(t, got.Primary)
	require.Empty(t, got.Secondary)
	require.Empty(t, got.Entities)
}

func TestExtractEntities(t *testing.T) {
	got := Extract("Donald Trump spoke about Bitcoin today", 5)

	require.Equal(t, []string{"Donald Trump", "Bitcoin"}, got.Entities)
}

func TestExtractEntitiesDedupesAndCaps(t *testing.T) {
	text := "Alpha and Alpha. Bravo, Charlie, Delta, Echo, Foxtrot, Golf, Hotel, India, Juliet, Kilo, Lima"

	got := ExtractEntities(text)

	require.Len(t, got, MaxEntities)
	require.Equal(t, "Alpha", got[0])
	require.Equal(t, "Bravo", got[1])
	require.NotContains(t, got, "Kilo")
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "Fed signals rate cut as inflation cools; markets rally on Fed rate outlook"

	first := Extract(text, 3)
	for i := 0; i < 20; i++ {
		require.Equal(t, first, Extract(text, 3))
	}
}

type fixedEntities []string

func (f fixedEntities) ExtractEntities(string) []string { return f }

func TestExtractorUsesCustomEntityStep(t *testing.T) {
	x := NewExtractor(fixedEntities{"Federal Reserve"})

	got := x.Extract("the fed held rates", 5)

	require.Equal(t, []string{"Federal Reserve"}, got.Entities)
	require.Equal(t, []string{"fed", "held", "rates"}, got.Primary)
}

func TestKeywordsPutsEntitiesFirst(t *testing.T) {
	got := Extract("Trump leads polls as Trump campaign expands", 10).Keywords()

	require.Equal(t, []string{"Trump", "leads", "polls", "campaign", "expands"}, got)
}

func TestMatching(t *testing.T) {
	got := Matching("Ethereum ETF approval lifts crypto prices", "ethereum etf")

	require.Contains(t, got, "ethereum")
	require.Contains(t, got, "etf")
	require.NotContains(t, got, "prices")
}
