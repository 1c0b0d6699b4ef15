package insight

import "github.com/casefort/LitIntel/pkg/types/common"

// MomentumState is the coarse verdict on which side the case currently
// favours.
type MomentumState string

const (
	MomentumStrong   MomentumState = "strong"
	MomentumBalanced MomentumState = "balanced"
	MomentumWeak     MomentumState = "weak"
)

// Valid reports whether s is one of the canonical states.
func (s MomentumState) Valid() bool {
	switch s {
	case MomentumStrong, MomentumBalanced, MomentumWeak:
		return true
	}
	return false
}

// MomentumShift is one signed contribution to the momentum score.
type MomentumShift struct {
	Factor         string `json:"factor"`
	Description    string `json:"description"`
	Weight         int    `json:"weight"`
	Positive       bool   `json:"positive"`
	Administrative bool   `json:"administrative"`
}

// CaseMomentum is the aggregated momentum verdict.
type CaseMomentum struct {
	CaseID      common.ID         `json:"case_id"`
	State       MomentumState     `json:"state"`
	Score       int               `json:"score"`
	Shifts      []MomentumShift   `json:"shifts"`
	Explanation string            `json:"explanation"`
	Confidence  common.Confidence `json:"confidence"`
}

// NetScore sums the signed shift weights without clamping.
func NetScore(shifts []MomentumShift) int {
	total := 0
	for _, s := range shifts {
		if s.Positive {
			total += s.Weight
		} else {
			total -= s.Weight
		}
	}
	return total
}
