package detect

import (
	"fmt"
	"strings"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// upcomingHorizonDays is how far ahead a deadline counts as "approaching".
const upcomingHorizonDays = 14

// staleCaseDays is the case age beyond which inactivity itself becomes a
// pressure point.
const staleCaseDays = 180

// TimePressureAnalyzer finds timing windows where delay or an approaching
// date creates tactical leverage.
type TimePressureAnalyzer struct {
	cfg config.AnalysisConfig
}

// NewTimePressureAnalyzer builds a TimePressureAnalyzer.
func NewTimePressureAnalyzer(cfg config.AnalysisConfig) *TimePressureAnalyzer {
	return &TimePressureAnalyzer{cfg: cfg}
}

// Analyze returns the time-pressure points for the input snapshot.
func (a *TimePressureAnalyzer) Analyze(in *Input) []insight.TimePressurePoint {
	var points []insight.TimePressurePoint

	if p := a.idealWindow(in); p != nil {
		points = append(points, *p)
	}
	if p := a.opponentSilence(in); p != nil {
		points = append(points, *p)
	}
	points = append(points, a.upcomingDeadlines(in)...)
	if p := a.elapsedDelay(in); p != nil {
		points = append(points, *p)
	}
	return points
}

// idealWindow flags the narrow silence band where escalation lands best:
// long enough that the delay is undeniable, short enough that escalating
// looks proportionate.
func (a *TimePressureAnalyzer) idealWindow(in *Input) *insight.TimePressurePoint {
	silence := in.SilenceDays()
	if silence < a.cfg.IdealWindowStartDays || silence > a.cfg.IdealWindowEndDays {
		return nil
	}
	return &insight.TimePressurePoint{
		Issue:       insight.PressureIdealWindow,
		Severity:    common.SeverityHigh,
		DaysElapsed: silence,
		Evidence:    []string{fmt.Sprintf("opponent silent %d days", silence)},
		Rationale: fmt.Sprintf("Silence of %d days sits in the %d-%d day band where escalation is most effective",
			silence, a.cfg.IdealWindowStartDays, a.cfg.IdealWindowEndDays),
	}
}

func (a *TimePressureAnalyzer) opponentSilence(in *Input) *insight.TimePressurePoint {
	silence := in.SilenceDays()
	if silence < a.cfg.SilenceHighDays {
		return nil
	}
	sev := common.SeverityHigh
	if silence >= a.cfg.SilenceCriticalDays {
		sev = common.SeverityCritical
	}
	return &insight.TimePressurePoint{
		Issue:       insight.PressureOpponentSilence,
		Severity:    sev,
		DaysElapsed: silence,
		Evidence:    []string{fmt.Sprintf("opponent silent %d days", silence)},
		Rationale:   fmt.Sprintf("Sustained silence of %d days supports escalating now", silence),
	}
}

func (a *TimePressureAnalyzer) upcomingDeadlines(in *Input) []insight.TimePressurePoint {
	if in.File == nil {
		return nil
	}
	var points []insight.TimePressurePoint
	for i := range in.File.Deadlines {
		dl := &in.File.Deadlines[i]
		if dl.Status == litigation.DeadlineCompleted || dl.DueDate.Before(in.Now) {
			continue
		}
		remaining := common.DaysBetween(in.Now, dl.DueDate)
		if remaining > upcomingHorizonDays {
			continue
		}
		sev := common.SeverityHigh
		if remaining <= 7 || strings.Contains(strings.ToLower(dl.Title), "hearing") {
			sev = common.SeverityCritical
		}
		points = append(points, insight.TimePressurePoint{
			Issue:         insight.PressureUpcomingDeadline,
			Severity:      sev,
			DaysRemaining: remaining,
			Evidence:      []string{fmt.Sprintf("%s due in %d days", dl.Title, remaining)},
			Rationale:     fmt.Sprintf("%q falls due in %d days; preparation must start now", dl.Title, remaining),
		})
	}
	return points
}

// elapsedDelay flags an old, quiet case: nothing filed recently and no
// other clock running.
func (a *TimePressureAnalyzer) elapsedDelay(in *Input) *insight.TimePressurePoint {
	if in.File == nil {
		return nil
	}
	age := in.CaseAgeDays()
	if age < staleCaseDays || in.File.RecentDocumentCount(in.Now, 30) > 0 {
		return nil
	}
	return &insight.TimePressurePoint{
		Issue:       insight.PressureElapsedDelay,
		Severity:    common.SeverityMedium,
		DaysElapsed: age,
		Evidence:    []string{fmt.Sprintf("case open %d days, no documents in the last 30", age)},
		Rationale:   "Prolonged inactivity invites limitation and case-management risk",
	}
}
