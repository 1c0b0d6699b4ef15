package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func pointsByIssue(points []insight.TimePressurePoint) map[insight.TimePressureIssue]insight.TimePressurePoint {
	out := map[insight.TimePressureIssue]insight.TimePressurePoint{}
	for _, p := range points {
		out[p.Issue] = p
	}
	return out
}

func TestTimePressureIdealWindow(t *testing.T) {
	a := NewTimePressureAnalyzer(config.DefaultAnalysis())

	in := housingInput(t, 10, 25)
	byIssue := pointsByIssue(a.Analyze(in))

	ideal, ok := byIssue[insight.PressureIdealWindow]
	require.True(t, ok, "25 days of silence sits in the 21-28 day ideal band")
	assert.Equal(t, 25, ideal.DaysElapsed)

	// Outside the band on either side, no ideal-window point.
	assert.NotContains(t, pointsByIssue(a.Analyze(housingInput(t, 10, 20))), insight.PressureIdealWindow)
	assert.NotContains(t, pointsByIssue(a.Analyze(housingInput(t, 10, 30))), insight.PressureIdealWindow)
}

func TestTimePressureSilenceSeverity(t *testing.T) {
	a := NewTimePressureAnalyzer(config.DefaultAnalysis())

	high := pointsByIssue(a.Analyze(housingInput(t, 10, 30)))[insight.PressureOpponentSilence]
	assert.Equal(t, common.SeverityHigh, high.Severity)

	critical := pointsByIssue(a.Analyze(housingInput(t, 10, 50)))[insight.PressureOpponentSilence]
	assert.Equal(t, common.SeverityCritical, critical.Severity)
}

func TestTimePressureUpcomingDeadlines(t *testing.T) {
	a := NewTimePressureAnalyzer(config.DefaultAnalysis())

	in := housingInput(t, 10, 0)
	in.File.Deadlines = []litigation.Deadline{
		{ID: common.NewID(), Title: "File directions questionnaire", DueDate: in.Now.AddDate(0, 0, 10), Status: litigation.DeadlineOpen},
		{ID: common.NewID(), Title: "Case management hearing", DueDate: in.Now.AddDate(0, 0, 12), Status: litigation.DeadlineOpen},
		{ID: common.NewID(), Title: "Serve schedule", DueDate: in.Now.AddDate(0, 0, 40), Status: litigation.DeadlineOpen},
	}

	points := a.Analyze(in)
	require.Len(t, points, 2, "deadlines beyond the horizon are ignored")
	assert.Equal(t, common.SeverityHigh, points[0].Severity)
	assert.Equal(t, common.SeverityCritical, points[1].Severity, "hearings always grade critical")
}

func TestTimePressureElapsedDelay(t *testing.T) {
	a := NewTimePressureAnalyzer(config.DefaultAnalysis())

	in := housingInput(t, 200, 0)
	// The fixture document was created now; age it past the recency window.
	in.File.Documents[0].CreatedAt = in.Now.AddDate(0, 0, -60)

	byIssue := pointsByIssue(a.Analyze(in))
	stale, ok := byIssue[insight.PressureElapsedDelay]
	require.True(t, ok)
	assert.Equal(t, 200, stale.DaysElapsed)

	// Recent activity clears it.
	in.File.Documents[0].CreatedAt = in.Now.AddDate(0, 0, -5)
	assert.NotContains(t, pointsByIssue(a.Analyze(in)), insight.PressureElapsedDelay)
}
