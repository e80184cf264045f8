package typoutil

import "unicode/utf8"

// MinTermRunes is the shortest term Closest will try to correct. Shorter
// terms are within a small edit distance of too many others.
const MinTermRunes = 3

// Vocabulary is the set of terms corrections are drawn from.
type Vocabulary interface {
	Terms() []string
	DocumentFrequency(term string) int
}

// Closest returns the vocabulary term nearest to term within maxDistance
// edits. Ties prefer the term found in more documents, then the
// alphabetically first. It reports false when term is too short, already
// in the vocabulary terms, or nothing is close enough.
func Closest(term string, vocab Vocabulary, maxDistance int) (string, bool) {
	if maxDistance <= 0 || utf8.RuneCountInString(term) < MinTermRunes {
		return "", false
	}

	best := ""
	bestDistance := maxDistance + 1
	bestDF := 0
	for _, candidate := range vocab.Terms() {
		if candidate == term {
			return "", false
		}
		dist := DamerauLevenshteinDistance(term, candidate, maxDistance)
		if dist > maxDistance {
			continue
		}
		df := vocab.DocumentFrequency(candidate)
		switch {
		case dist < bestDistance,
			dist == bestDistance && df > bestDF,
			dist == bestDistance && df == bestDF && candidate < best:
			best, bestDistance, bestDF = candidate, dist, df
		}
	}
	return best, best != ""
}
