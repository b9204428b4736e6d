package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/localboost/localboost-backend/internal/services"
)

// SearchHelpResponse represents help topics matching a query, most relevant
// first
type SearchHelpResponse struct {
	Query   string                 `json:"query"`
	Results []services.ScoredTopic `json:"results"`
	Total   int                    `json:"total"`
}

// SearchHelp handles the help center search. An empty query returns the whole
// knowledge base in display order.
func SearchHelp(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var results []services.ScoredTopic
	if query == "" {
		topics := services.AllHelpTopics()
		results = make([]services.ScoredTopic, 0, len(topics))
		for _, t := range topics {
			results = append(results, services.ScoredTopic{HelpTopic: t})
		}
	} else {
		results = services.SearchHelpTopics(query)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SearchHelpResponse{
		Query:   query,
		Results: results,
		Total:   len(results),
	})
}
