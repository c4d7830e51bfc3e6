package model

import (
	"github.com/sahilm/fuzzy"
)

// FindingMatch locates one ingredient finding inside the conversation log
type FindingMatch struct {
	MessageIndex int
	FindingIndex int
	Finding      IngredientFinding
	Score        int
}

// SearchFindings fuzzy-matches query against every ingredient name in messages.
// An empty query lists all findings in log order.
func SearchFindings(messages []Message, query string) []FindingMatch {
	var all []FindingMatch
	var names []string
	for i, msg := range messages {
		if msg.Role != RoleAI || msg.AI == nil {
			continue
		}
		for j, f := range msg.AI.Ingredients {
			all = append(all, FindingMatch{MessageIndex: i, FindingIndex: j, Finding: f})
			names = append(names, f.Name)
		}
	}

	if query == "" {
		return all
	}

	matches := fuzzy.Find(query, names)
	out := make([]FindingMatch, 0, len(matches))
	for _, match := range matches {
		fm := all[match.Index]
		fm.Score = match.Score
		out = append(out, fm)
	}
	return out
}
