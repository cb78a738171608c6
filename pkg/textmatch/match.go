package textmatch

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Confidence represents the confidence level of a name match.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

func confidenceFor(score float64) Confidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Match is the best candidate for a query. Index is -1 when nothing matched.
type Match struct {
	Index      int
	Name       string
	Score      float64
	Confidence Confidence
}

// OK reports whether the match reached at least the given confidence.
func (m Match) OK(threshold Confidence) bool {
	return m.Index >= 0 && m.Confidence >= threshold
}

// Best finds the candidate closest to query. Folded equality scores 1.0 and
// a folded prefix of at least three characters scores no lower than 0.95;
// everything else uses Jaro-Winkler similarity, which favors shared prefixes.
// Ties keep the earlier candidate.
func Best(query string, candidates []string) Match {
	best := Match{Index: -1}

	q := Fold(query)
	if q == "" {
		return best
	}

	for i, candidate := range candidates {
		c := Fold(candidate)
		if c == "" {
			continue
		}

		var score float64
		switch {
		case q == c:
			score = 1.0
		case len(q) >= 3 && strings.HasPrefix(c, q):
			score = max(0.95, float64(edlib.JaroWinklerSimilarity(q, c)))
		default:
			score = float64(edlib.JaroWinklerSimilarity(q, c))
		}

		if score > best.Score {
			best = Match{Index: i, Name: candidate, Score: score}
		}
	}

	best.Confidence = confidenceFor(best.Score)
	if best.Confidence == ConfidenceNone {
		return Match{Index: -1, Score: best.Score}
	}
	return best
}
