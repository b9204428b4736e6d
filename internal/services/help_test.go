package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchHelpSaveRanking(t *testing.T) {
	results := SearchHelpTopics("save")
	require.NotEmpty(t, results)

	// "save" hits topic 3's content ("save it to your favorites", +5) and
	// its "save" keyword (+3); topic 4 only via its "save" keyword (+3).
	// Topic 3 must rank above topic 4.
	pos := map[int]int{}
	for i, r := range results {
		pos[r.ID] = i
	}
	require.Contains(t, pos, 3)
	require.Contains(t, pos, 4)
	assert.Less(t, pos[3], pos[4])
}

func TestSearchHelpScores(t *testing.T) {
	results := SearchHelpTopics("captcha")
	require.NotEmpty(t, results)

	// Topic 7: title (+10), content (+5), keyword "captcha" (+3). The
	// keyword matches in both containment directions but contributes once.
	assert.Equal(t, 7, results[0].ID)
	assert.Equal(t, 18, results[0].Relevance)
}

func TestSearchHelpKeywordBothDirections(t *testing.T) {
	// Query longer than the keyword: "discounts" contains keyword
	// "discount" but no keyword contains it.
	results := SearchHelpTopics("discounts")
	found := false
	for _, r := range results {
		if r.ID == 4 {
			found = true
			assert.GreaterOrEqual(t, r.Relevance, keywordMatchScore)
		}
	}
	assert.True(t, found)
}

func TestSearchHelpExcludesZeroScores(t *testing.T) {
	results := SearchHelpTopics("zzzzquux")
	assert.Empty(t, results)
}

func TestSearchHelpSortedByScoreStable(t *testing.T) {
	results := SearchHelpTopics("rating")
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Relevance, results[i].Relevance)
		if results[i-1].Relevance == results[i].Relevance {
			// Ties keep corpus order.
			assert.Less(t, results[i-1].ID, results[i].ID)
		}
	}
}

func TestSearchHelpCaseInsensitive(t *testing.T) {
	lower := SearchHelpTopics("captcha")
	upper := SearchHelpTopics("CAPTCHA")
	require.Equal(t, len(lower), len(upper))
	for i := range lower {
		assert.Equal(t, lower[i].ID, upper[i].ID)
		assert.Equal(t, lower[i].Relevance, upper[i].Relevance)
	}
}

func TestAllHelpTopics(t *testing.T) {
	topics := AllHelpTopics()
	require.Len(t, topics, 8)
	for i, topic := range topics {
		assert.Equal(t, i+1, topic.ID)
		assert.NotEmpty(t, topic.Title)
		assert.NotEmpty(t, topic.Content)
		assert.NotEmpty(t, topic.Keywords)
	}

	// Callers get a copy, not the corpus itself.
	topics[0].Title = "mutated"
	assert.Equal(t, "How to find businesses", AllHelpTopics()[0].Title)
}
