package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetScore(t *testing.T) {
	shifts := []MomentumShift{
		{Factor: "silence", Weight: 15, Positive: true},
		{Factor: "missing_evidence", Weight: 10, Positive: false},
		{Factor: "merits", Weight: 20, Positive: true},
	}
	assert.Equal(t, 25, NetScore(shifts))
	assert.Equal(t, 0, NetScore(nil))
}

func TestMomentumStateValid(t *testing.T) {
	assert.True(t, MomentumStrong.Valid())
	assert.True(t, MomentumBalanced.Valid())
	assert.True(t, MomentumWeak.Valid())
	assert.False(t, MomentumState("positive").Valid())
}

func TestRewriteText(t *testing.T) {
	a := &Analysis{
		LeveragePoints: []LeveragePoint{{
			Type:              LeverageLateResponse,
			Rationale:         "your claim is strengthened",
			RecommendedAction: "press your claim now",
			Evidence:          []string{"your claim letter of 1 May"},
			Meta:              &StrategicInsightMeta{WhyRecommended: "your claim benefits"},
		}},
		Momentum: CaseMomentum{Explanation: "your claim has momentum"},
	}
	a.RewriteText(func(s string) string {
		return strings.ReplaceAll(s, "your claim", "the claim against you")
	})

	p := a.LeveragePoints[0]
	assert.Equal(t, "the claim against you is strengthened", p.Rationale)
	assert.Equal(t, "press the claim against you now", p.RecommendedAction)
	assert.Equal(t, "the claim against you letter of 1 May", p.Evidence[0])
	assert.Equal(t, "the claim against you benefits", p.Meta.WhyRecommended)
	assert.Equal(t, "the claim against you has momentum", a.Momentum.Explanation)
	// enum fields untouched
	assert.Equal(t, LeverageLateResponse, p.Type)
}

func TestRewriteTextNil(t *testing.T) {
	var a *Analysis
	a.RewriteText(strings.ToUpper) // must not panic
	b := &Analysis{}
	b.RewriteText(nil)
}
