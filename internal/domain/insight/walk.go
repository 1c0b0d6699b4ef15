package insight

// RewriteText applies fn to every narrative string in the analysis, in
// place.  Typed enumeration fields (severities, types, states, route
// letters) are left untouched; only human-readable text is rewritten.
// Callers use this to re-voice an analysis for the active role.
func (a *Analysis) RewriteText(fn func(string) string) {
	if a == nil || fn == nil {
		return
	}
	for i := range a.LeveragePoints {
		p := &a.LeveragePoints[i]
		p.Rationale = fn(p.Rationale)
		p.RecommendedAction = fn(p.RecommendedAction)
		rewriteSlice(p.Evidence, fn)
		p.Meta.rewrite(fn)
	}
	for i := range a.WeakSpots {
		w := &a.WeakSpots[i]
		w.Rationale = fn(w.Rationale)
		rewriteSlice(w.Evidence, fn)
		w.Meta.rewrite(fn)
	}
	for i := range a.ComplianceIssues {
		c := &a.ComplianceIssues[i]
		c.Description = fn(c.Description)
		rewriteSlice(c.Evidence, fn)
		c.Meta.rewrite(fn)
	}
	for i := range a.TimePressure {
		t := &a.TimePressure[i]
		t.Rationale = fn(t.Rationale)
		rewriteSlice(t.Evidence, fn)
		t.Meta.rewrite(fn)
	}
	for i := range a.Behavior {
		b := &a.Behavior[i]
		b.Action = fn(b.Action)
		b.ExpectedResponse = fn(b.ExpectedResponse)
		b.Rationale = fn(b.Rationale)
		b.Meta.rewrite(fn)
	}
	for i := range a.Vulnerabilities {
		v := &a.Vulnerabilities[i]
		v.Description = fn(v.Description)
		v.EstimatedCost = fn(v.EstimatedCost)
		rewriteSlice(v.Evidence, fn)
		v.Meta.rewrite(fn)
	}
	for i := range a.Strategies {
		s := &a.Strategies[i]
		s.Title = fn(s.Title)
		s.Approach = fn(s.Approach)
		s.TargetAudience = fn(s.TargetAudience)
		rewriteSlice(s.Pros, fn)
		rewriteSlice(s.Cons, fn)
		s.Meta.rewrite(fn)
	}
	for i := range a.Scenarios {
		s := &a.Scenarios[i]
		s.Condition = fn(s.Condition)
		s.Consequence = fn(s.Consequence)
		rewriteSlice(s.Basis, fn)
		s.Meta.rewrite(fn)
	}
	for i := range a.Judicial {
		j := &a.Judicial[i]
		j.Expectation = fn(j.Expectation)
		rewriteSlice(j.Evidence, fn)
		j.Meta.rewrite(fn)
	}
	a.Momentum.Explanation = fn(a.Momentum.Explanation)
	for i := range a.Momentum.Shifts {
		a.Momentum.Shifts[i].Description = fn(a.Momentum.Shifts[i].Description)
	}
}

func (m *StrategicInsightMeta) rewrite(fn func(string) string) {
	if m == nil {
		return
	}
	m.WhyRecommended = fn(m.WhyRecommended)
	m.AlternativeBranch = fn(m.AlternativeBranch)
	m.UnlockCondition = fn(m.UnlockCondition)
	m.RiskIfIgnored = fn(m.RiskIfIgnored)
	m.WinRationale = fn(m.WinRationale)
	rewriteSlice(m.TriggeringSignals, fn)
}

func rewriteSlice(ss []string, fn func(string) string) {
	for i := range ss {
		ss[i] = fn(ss[i])
	}
}
