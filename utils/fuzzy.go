package utils

// LevenshteinDistance computes the classic edit distance between a and b
// (insert, delete and substitute each cost 1) with a rolling row, so memory
// stays proportional to len(b).
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			ins := prev[j] + 1
			del := curr[j-1] + 1
			sub := prev[j-1]
			if ra[i-1] != rb[j-1] {
				sub++
			}
			curr[j] = min3(ins, del, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// IsFuzzyMatch reports whether query approximately matches the beginning of
// text. Only the first len(query)+2 runes of text take part, which keeps the
// cost bounded and makes "btata" find "batata frita" without comparing the
// whole description.
func IsFuzzyMatch(query, text string, maxDistance int) bool {
	rt := []rune(text)
	window := len([]rune(query)) + 2
	if window < len(rt) {
		rt = rt[:window]
	}
	return LevenshteinDistance(query, string(rt)) <= maxDistance
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
