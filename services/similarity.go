package services

// Ratio computes a similarity score in [0, 1] between two strings using the
// Ratcliff/Obershelp longest-matching-blocks algorithm: twice the number of
// matched runes divided by the total number of runes in both strings.
// Identical strings score 1.0, fully disjoint strings 0.0.
//
// The implementation mirrors the classic sequence-matcher ratio, including
// its "popular element" suppression for second strings of 200+ runes, so
// threshold decisions are reproducible against reference scores.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchedRunes(ra, rb)) / float64(total)
}

type matchBlock struct {
	a, b, size int
}

type matchSpan struct {
	alo, ahi, blo, bhi int
}

// matchedRunes sums the sizes of all matching blocks between a and b,
// splitting recursively around the longest match of each region.
func matchedRunes(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	// Suppress elements that make up more than 1% of a long second string;
	// they add noise without contributing meaningful blocks.
	if n := len(b); n >= 200 {
		ntest := n/100 + 1
		for r, idxs := range b2j {
			if len(idxs) > ntest {
				delete(b2j, r)
			}
		}
	}

	var matched int
	queue := []matchSpan{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, s.alo, s.ahi, s.blo, s.bhi, b2j)
		if m.size == 0 {
			continue
		}
		matched += m.size
		if s.alo < m.a && s.blo < m.b {
			queue = append(queue, matchSpan{s.alo, m.a, s.blo, m.b})
		}
		if m.a+m.size < s.ahi && m.b+m.size < s.bhi {
			queue = append(queue, matchSpan{m.a + m.size, s.ahi, m.b + m.size, s.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest block of runes common to a[alo:ahi] and
// b[blo:bhi]. Among equally long blocks the one starting earliest in a,
// then earliest in b, wins.
func longestMatch(a []rune, alo, ahi, blo, bhi int, b2j map[rune][]int) matchBlock {
	besti, bestj, bestsize := alo, blo, 0
	j2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	return matchBlock{besti, bestj, bestsize}
}
