package services

import (
	"sort"
	"strings"
)

// Relevance weights for help search.
const (
	titleMatchScore   = 10
	contentMatchScore = 5
	keywordMatchScore = 3
)

type HelpTopic struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
}

// ScoredTopic is a help topic with its relevance for a query.
type ScoredTopic struct {
	HelpTopic
	Relevance int `json:"relevance"`
}

// helpTopics is the static knowledge base, in display order.
var helpTopics = []HelpTopic{
	{
		ID:       1,
		Title:    "How to find businesses",
		Content:  "Use the search bar or browse by category to discover local businesses. You can filter by food, retail, services, entertainment, and health categories.",
		Keywords: []string{"find", "search", "discover", "browse", "category"},
	},
	{
		ID:       2,
		Title:    "How to leave a review",
		Content:  "Navigate to a business page and scroll to the reviews section. Complete the CAPTCHA verification, then fill out the rating and review form. Reviews help other community members make informed decisions.",
		Keywords: []string{"review", "rating", "feedback", "stars", "comment"},
	},
	{
		ID:       3,
		Title:    "Saving favorite businesses",
		Content:  "Click the heart icon on any business card or detail page to save it to your favorites. Access your saved businesses anytime from the Favorites page.",
		Keywords: []string{"favorite", "bookmark", "save", "heart", "list"},
	},
	{
		ID:       4,
		Title:    "Finding deals and coupons",
		Content:  "Visit the Deals page to see all active promotions. You can filter by category and view discount codes, expiration dates, and terms.",
		Keywords: []string{"deal", "coupon", "discount", "promotion", "offer", "save"},
	},
	{
		ID:       5,
		Title:    "Generating reports",
		Content:  "The Reports page allows you to create customized analytics. Filter by category, date range, and choose what data to include. Export your reports for further analysis.",
		Keywords: []string{"report", "analytics", "data", "statistics", "export", "analysis"},
	},
	{
		ID:       6,
		Title:    "Understanding ratings",
		Content:  "Businesses are rated on a 1-5 star scale. The displayed rating is an average of all user reviews. Higher ratings indicate better customer satisfaction.",
		Keywords: []string{"rating", "stars", "score", "average", "quality"},
	},
	{
		ID:       7,
		Title:    "CAPTCHA verification",
		Content:  "We use CAPTCHA challenges to prevent automated bot activity and ensure genuine reviews. Simply solve the math problem to verify you are human.",
		Keywords: []string{"captcha", "verification", "bot", "security", "human"},
	},
	{
		ID:       8,
		Title:    "Business categories explained",
		Content:  "Food: restaurants, cafes, bakeries. Retail: shops, boutiques, stores. Services: salons, repairs, professional services. Entertainment: venues, activities. Health: wellness, fitness, medical.",
		Keywords: []string{"category", "type", "food", "retail", "services", "entertainment", "health"},
	},
}

// AllHelpTopics returns the full corpus in source order.
func AllHelpTopics() []HelpTopic {
	topics := make([]HelpTopic, len(helpTopics))
	copy(topics, helpTopics)
	return topics
}

// SearchHelpTopics ranks the corpus against a query: +10 for a title match,
// +5 for a content match, +3 per keyword matching in either containment
// direction (a keyword contributes once even when both directions hold).
// Zero-score topics are dropped; ties keep source order.
func SearchHelpTopics(query string) []ScoredTopic {
	q := strings.ToLower(strings.TrimSpace(query))

	var results []ScoredTopic
	for _, topic := range helpTopics {
		score := 0
		if strings.Contains(strings.ToLower(topic.Title), q) {
			score += titleMatchScore
		}
		if strings.Contains(strings.ToLower(topic.Content), q) {
			score += contentMatchScore
		}
		for _, keyword := range topic.Keywords {
			if strings.Contains(keyword, q) || strings.Contains(q, keyword) {
				score += keywordMatchScore
			}
		}
		if score > 0 {
			results = append(results, ScoredTopic{HelpTopic: topic, Relevance: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return results
}
