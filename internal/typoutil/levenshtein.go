// Package typoutil finds indexed terms that are a few edits away from a
// query term.
package typoutil

// DamerauLevenshteinDistance returns the optimal string alignment distance
// between a and b: the number of single-rune insertions, deletions,
// substitutions and adjacent transpositions needed to turn a into b.
// Computation stops early once the distance exceeds maxDistance, in which
// case maxDistance+1 is returned.
func DamerauLevenshteinDistance(a, b string, maxDistance int) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	lengthDiff := lenA - lenB
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}
	if lengthDiff > maxDistance {
		return maxDistance + 1
	}

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// Three rows: i-2 is needed for transpositions.
	prevPrevRow := make([]int, lenB+1)
	prevRow := make([]int, lenB+1)
	currRow := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prevRow[j] = j
	}

	for i := 1; i <= lenA; i++ {
		currRow[0] = i
		minInRow := i

		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			currRow[j] = min(
				prevRow[j]+1,      // deletion
				currRow[j-1]+1,    // insertion
				prevRow[j-1]+cost, // substitution
			)

			if i > 1 && j > 1 &&
				runesA[i-1] == runesB[j-2] &&
				runesA[i-2] == runesB[j-1] {
				if transposition := prevPrevRow[j-2] + cost; transposition < currRow[j] {
					currRow[j] = transposition
				}
			}

			if currRow[j] < minInRow {
				minInRow = currRow[j]
			}
		}

		// Row minimums never decrease.
		if minInRow > maxDistance {
			return maxDistance + 1
		}

		prevPrevRow, prevRow, currRow = prevRow, currRow, prevPrevRow
	}

	return prevRow[lenB]
}
