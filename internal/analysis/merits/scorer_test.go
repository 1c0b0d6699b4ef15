package merits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/analysis/rules"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/internal/testutil"
)

func newScorer() *Scorer {
	return NewScorer(rules.NewProvider(nil), 120)
}

func TestScoreRequiresConfirmingContext(t *testing.T) {
	s := newScorer()

	// Bare mention of "breach" with no guideline language nearby.
	bare := testutil.NewCaseFile(litigation.PracticeClinicalNegligence,
		"There was a breach mentioned in passing with no further detail anywhere in the record.")
	assert.False(t, s.Score(bare).GuidelineBreach.Detected)

	// "breach" with "guideline" inside the context window.
	confirmed := testutil.NewCaseFile(litigation.PracticeClinicalNegligence,
		"The treatment involved a clear breach of the applicable NICE guideline on sepsis recognition.")
	res := s.Score(confirmed)
	assert.True(t, res.GuidelineBreach.Detected)
	assert.NotEmpty(t, res.GuidelineBreach.Details)
}

func TestScoreContextOutsideWindowDoesNotCount(t *testing.T) {
	filler := make([]byte, 300)
	for i := range filler {
		filler[i] = 'x'
	}
	text := "a breach occurred " + string(filler) + " the relevant guideline was published in 2019"
	s := newScorer()
	res := s.Score(testutil.NewCaseFile(litigation.PracticeClinicalNegligence, text))
	assert.False(t, res.GuidelineBreach.Detected)
}

func TestScoreHarmGroupsNearDuplicates(t *testing.T) {
	s := newScorer()

	single := s.Score(testutil.NewCaseFile(litigation.PracticeClinicalNegligence,
		"The patient developed sepsis."))
	both := s.Score(testutil.NewCaseFile(litigation.PracticeClinicalNegligence,
		"The patient developed sepsis and became septic."))

	require.True(t, single.SeriousHarm.Detected)
	require.True(t, both.SeriousHarm.Detected)
	// Near-duplicate adds only the small correction, not full points again.
	assert.Equal(t, single.SeriousHarm.Score+2, both.SeriousHarm.Score)
}

func TestScoreDelayCausation(t *testing.T) {
	s := newScorer()
	res := s.Score(testutil.NewCaseFile(litigation.PracticeClinicalNegligence,
		"The delay in diagnosis caused an avoidable deterioration in the patient's condition."))
	assert.True(t, res.DelayCausation.Detected)
	assert.Positive(t, res.TotalScore)
}

func TestScoreSubScoresNonNegativeAndSummed(t *testing.T) {
	s := newScorer()
	res := s.Score(testutil.NewCaseFile(litigation.PracticeClinicalNegligence,
		"The independent expert confirms the care was substandard; the delay caused sepsis, "+
			"an avoidable outcome, and the claimant now suffers PTSD."))

	sum := res.GuidelineBreach.Score + res.DelayCausation.Score +
		res.ExpertConfirmation.Score + res.SeriousHarm.Score + res.PsychologicalInjury.Score
	assert.Equal(t, sum, res.TotalScore)
	assert.GreaterOrEqual(t, res.GuidelineBreach.Score, 0)
	assert.True(t, res.ExpertConfirmation.Detected)
	assert.True(t, res.PsychologicalInjury.Detected)
}

func TestScoreNilOrEmptyFile(t *testing.T) {
	s := newScorer()
	assert.Zero(t, s.Score(nil).TotalScore)

	empty := &litigation.CaseFile{}
	assert.Zero(t, s.Score(empty).TotalScore)
}
