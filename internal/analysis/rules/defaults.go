package rules

// Default returns the built-in rule table.  The lexicons target UK civil
// litigation with a clinical-negligence and housing-disrepair focus; a
// deployment can override any of them through the rules file.
func Default() *Table {
	t := &Table{
		Role: RoleRules{
			Claimant: []Pattern{
				{Match: "claim form", Weight: 1},
				{Match: "particulars of claim", Weight: 1},
				{Match: "letter of claim", Weight: 1},
				{Match: "letter before action", Weight: 1},
				{Match: "damages", Weight: 1},
				{Match: "compensation", Weight: 1},
				{Match: "breach of duty", Weight: 1},
				{Match: "caused by the negligence", Weight: 1},
				{Match: "our client suffered", Weight: 1},
				{Match: "expert confirms", Weight: 1},
				{Match: "expert report supports", Weight: 1},
				{Match: "schedule of loss", Weight: 1},
			},
			Defendant: []Pattern{
				{Match: "defence", Weight: 1},
				{Match: "denial", Weight: 1},
				{Match: "denies liability", Weight: 1},
				{Match: "liability is denied", Weight: 1},
				{Match: "dispute the claim", Weight: 1},
				{Match: "strike out", Weight: 1},
				{Match: "contributory negligence", Weight: 1},
				{Match: "counterclaim", Weight: 1},
				{Match: "put to strict proof", Weight: 1},
				{Match: "defending the claim", Weight: 1},
			},
		},
		Merits: MeritsRules{
			GuidelineBreach: []Pattern{
				{Match: "breach", Weight: 10, Context: []string{"guideline", "nice", "protocol", "standard of care"}},
				{Match: "nice guideline", Weight: 10, Context: []string{"breach", "departed", "failed", "contrary"}},
				{Match: "failed to follow", Weight: 8, Context: []string{"guideline", "protocol", "pathway"}},
				{Match: "departure from", Weight: 8, Context: []string{"guideline", "accepted practice", "protocol"}},
			},
			DelayCausation: []Pattern{
				{Match: "delay", Weight: 10, Context: []string{"caused", "avoidable", "contributed", "worse outcome"}},
				{Match: "delayed diagnosis", Weight: 10, Context: []string{"caused", "avoidable", "deterioration"}},
				{Match: "earlier treatment", Weight: 8, Context: []string{"would have", "avoided", "prevented"}},
			},
			ExpertConfirmation: []Pattern{
				{Match: "expert", Weight: 12, Context: []string{"confirms", "avoidable", "breach", "substandard", "supports"}},
				{Match: "independent expert", Weight: 12, Context: []string{"opinion", "confirms", "concludes"}},
				{Match: "on the balance of probabilities", Weight: 8, Context: []string{"expert", "avoidable", "caused"}},
			},
			Harm: []HarmTerm{
				{Term: "sepsis", Points: 10, Group: "sepsis"},
				{Term: "septic", Points: 10, Group: "sepsis", Correction: 2},
				{Term: "amputation", Points: 12, Group: "amputation"},
				{Term: "amputated", Points: 12, Group: "amputation", Correction: 2},
				{Term: "permanent disability", Points: 10, Group: "disability"},
				{Term: "permanently disabled", Points: 10, Group: "disability", Correction: 2},
				{Term: "fatal", Points: 15, Group: "death"},
				{Term: "death", Points: 15, Group: "death", Correction: 3},
				{Term: "brain injury", Points: 12, Group: "brain"},
				{Term: "organ failure", Points: 10, Group: "organ"},
				{Term: "intensive care", Points: 8, Group: "icu"},
				{Term: "emergency surgery", Points: 8, Group: "surgery"},
			},
			Psychological: []Pattern{
				{Match: "ptsd", Weight: 8},
				{Match: "post-traumatic stress", Weight: 8},
				{Match: "psychiatric injury", Weight: 8},
				{Match: "psychological injury", Weight: 8},
				{Match: "depression", Weight: 5},
				{Match: "anxiety", Weight: 5},
			},
		},
		Sanitize: []Substitution{
			{From: "strike out your defence", To: "seek a liability admission"},
			{From: "they can't prove liability", To: "liability is well-founded"},
			{From: "they cannot prove liability", To: "liability is well-founded"},
			{From: "defend the claim robustly", To: "advance the claim robustly"},
			{From: "part 36 offer", To: "settlement offer"},
			{From: "your defence", To: "your claim"},
			{From: "deny liability", To: "press for a liability admission"},
		},
	}
	t.Normalize()
	return t
}
