package fixture

import (
	"fmt"
	"math/bits"
)

// bracketEntry is one slot feeding a knockout round: either a team already
// known, or the winner of an earlier match identified by its bracket UID.
type bracketEntry struct {
	teamID    *int
	sourceUID *string
}

// BuildSingleElimination lays out a knockout bracket. Seeding is insertion
// order: teamIDs[0] is the top seed. When the team count is not a power of
// two, the top seeds receive byes and enter directly in round two; everyone
// else plays round one. Matches of later rounds are created with unknown
// participants and source links, to be resolved as results come in.
func BuildSingleElimination(teamIDs []int) ([]*Blueprint, error) {
	n := len(teamIDs)
	if n < 2 {
		return nil, ErrNotEnoughTeams
	}

	bracketSize := nextPowerOfTwo(n)
	roundCount := bits.TrailingZeros(uint(bracketSize))
	byeCount := bracketSize - n

	blueprints := make([]*Blueprint, 0, bracketSize-1)

	// Round one pairs the non-bye seeds consecutively.
	entries := make([]bracketEntry, 0, bracketSize/2)
	for i := 0; i < byeCount; i++ {
		id := teamIDs[i]
		entries = append(entries, bracketEntry{teamID: &id})
	}
	round := 1
	if byeCount < n {
		r1 := make([]bracketEntry, 0, (n-byeCount)/2)
		for i := byeCount; i < n; i += 2 {
			home, away := teamIDs[i], teamIDs[i+1]
			uid := bracketUID(round, len(r1)+1)
			blueprints = append(blueprints, &Blueprint{
				UID:          uid,
				Round:        round,
				OrderInRound: len(r1) + 1,
				HomeTeamID:   &home,
				AwayTeamID:   &away,
			})
			r1 = append(r1, bracketEntry{sourceUID: &uid})
		}
		entries = append(entries, r1...)
		round++
	}

	// Every later round pairs its entries consecutively until the final.
	for ; round <= roundCount; round++ {
		next := make([]bracketEntry, 0, len(entries)/2)
		for i := 0; i < len(entries); i += 2 {
			uid := bracketUID(round, len(next)+1)
			bp := &Blueprint{
				UID:          uid,
				Round:        round,
				OrderInRound: len(next) + 1,
			}
			fillEntry(bp, entries[i], 1)
			fillEntry(bp, entries[i+1], 2)
			blueprints = append(blueprints, bp)
			next = append(next, bracketEntry{sourceUID: &uid})
		}
		entries = next
	}

	if len(entries) != 1 {
		return nil, fmt.Errorf("inconsistent bracket: %d entries left after %d rounds", len(entries), roundCount)
	}
	return blueprints, nil
}

func fillEntry(bp *Blueprint, entry bracketEntry, slot int) {
	if slot == 1 {
		bp.HomeTeamID = entry.teamID
		bp.SourceMatch1UID = entry.sourceUID
		return
	}
	bp.AwayTeamID = entry.teamID
	bp.SourceMatch2UID = entry.sourceUID
}

func bracketUID(round, order int) string {
	return fmt.Sprintf("R%dM%d", round, order)
}

func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
