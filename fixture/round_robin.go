package fixture

// byeIndex marks the padding slot added when the team count is odd. A pairing
// that touches it is dropped, which gives that round's unmatched team its bye.
const byeIndex = -1

// GeneratePairings builds a single round robin with the circle method: the
// first position stays fixed and the rest rotate by one between rounds, so
// every pair of teams meets exactly once. teamIDs keeps the caller's order;
// position i is paired against position n-1-i.
//
// The rotation works on a fresh index permutation per round rather than a
// mutated shared slice, so returned rounds never alias each other.
func GeneratePairings(teamIDs []int) [][]Pairing {
	n := len(teamIDs)
	if n < 2 {
		return nil
	}

	perm := make([]int, 0, n+1)
	for i := range teamIDs {
		perm = append(perm, i)
	}
	if n%2 == 1 {
		perm = append(perm, byeIndex)
	}

	size := len(perm)
	roundCount := size - 1
	rounds := make([][]Pairing, 0, roundCount)

	for r := 0; r < roundCount; r++ {
		pairings := make([]Pairing, 0, size/2)
		for i := 0; i < size/2; i++ {
			a, b := perm[i], perm[size-1-i]
			if a == byeIndex || b == byeIndex {
				continue
			}
			pairings = append(pairings, Pairing{
				HomeTeamID: teamIDs[a],
				AwayTeamID: teamIDs[b],
			})
		}
		rounds = append(rounds, pairings)
		perm = rotate(perm)
	}

	return rounds
}

// rotate holds position 0 and shifts the remaining entries one step, placing
// the last entry right after the fixed one. Returns a new slice.
func rotate(perm []int) []int {
	size := len(perm)
	next := make([]int, size)
	next[0] = perm[0]
	next[1] = perm[size-1]
	copy(next[2:], perm[1:size-1])
	return next
}
