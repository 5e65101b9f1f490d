package search

import (
	"sort"
	"strings"

	"github.com/daryllundy/gitlab-dashwatch-sub001/lexical"
	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// suggestScanLimit caps how many matches the in-pipeline suggestion pass
// tokenizes.
const suggestScanLimit = 100

// relatedTerms scans the first matches' names and descriptions for tokens
// containing the query text and returns the most frequent ones. These ride
// along on the Result as "did you also mean" hints.
func relatedTerms(recs []model.Record, queryText string, limit int) []string {
	partial := strings.ToLower(strings.TrimSpace(queryText))
	if partial == "" || limit <= 0 {
		return nil
	}
	if len(recs) > suggestScanLimit {
		recs = recs[:suggestScanLimit]
	}

	freq := make(map[string]int)
	for _, rec := range recs {
		for _, token := range lexical.Tokenize(rec.Name + " " + rec.Description) {
			if token != partial && strings.Contains(token, partial) {
				freq[token]++
			}
		}
	}
	return topByFrequency(freq, limit)
}

func topByFrequency(freq map[string]int, limit int) []string {
	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
