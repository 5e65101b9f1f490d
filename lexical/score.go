package lexical

import "strings"

const (
	nameMatchScore  = 10.0
	namePrefixBonus = 5.0
	descMatchScore  = 3.0

	// FuzzyThreshold is the minimum normalized similarity for the fuzzy
	// fallback to contribute to a term score.
	FuzzyThreshold = 0.6

	fuzzyWeight = 2.0
)

// Tokenize lowercases the text and splits it on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Doc is the scorable text of one record.
type Doc struct {
	Name        string
	Description string
	// Searchable is the combined text the fuzzy fallback scans when neither
	// the name nor the description contains a token.
	Searchable string
}

// Scorer scores documents against a fixed token set.
type Scorer struct {
	tokens []string
	fuzzy  bool
}

// NewScorer builds a Scorer for the given query text. fuzzy enables the
// edit-distance fallback for tokens with no substring match.
func NewScorer(query string, fuzzy bool) *Scorer {
	return &Scorer{tokens: Tokenize(query), fuzzy: fuzzy}
}

// Empty reports whether the query produced no tokens.
func (s *Scorer) Empty() bool { return len(s.tokens) == 0 }

// Score returns the document's total relevance score. Zero means no match.
func (s *Scorer) Score(doc Doc) float64 {
	if len(s.tokens) == 0 {
		return 0
	}

	name := strings.ToLower(doc.Name)
	desc := strings.ToLower(doc.Description)

	var total float64
	for _, token := range s.tokens {
		var term float64
		matched := false

		if strings.Contains(name, token) {
			term += nameMatchScore
			if strings.HasPrefix(name, token) {
				term += namePrefixBonus
			}
			matched = true
		}
		if strings.Contains(desc, token) {
			term += descMatchScore
			matched = true
		}

		if !matched && s.fuzzy {
			if sim := Similarity(token, strings.ToLower(doc.Searchable)); sim > FuzzyThreshold {
				term += sim * fuzzyWeight
			}
		}

		total += term
	}
	return total
}
