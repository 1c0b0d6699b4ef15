// Package litigation defines the case-file entities the analysis engine
// consumes: cases, documents, timeline events, letters, and deadlines.  All
// entities are immutable snapshots once constructed; detectors read them and
// never write.
package litigation

import (
	"sort"
	"strings"
	"time"

	"github.com/casefort/LitIntel/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// PracticeArea enumeration
// ─────────────────────────────────────────────────────────────────────────────

// PracticeArea identifies the litigation practice a case belongs to.  The
// enumeration is closed; detector rule selection switches exhaustively on it.
type PracticeArea string

const (
	PracticeCriminal           PracticeArea = "criminal"
	PracticeClinicalNegligence PracticeArea = "clinical_negligence"
	PracticeHousingDisrepair   PracticeArea = "housing_disrepair"
	PracticePersonalInjury     PracticeArea = "personal_injury"
	PracticeFamily             PracticeArea = "family"
	PracticeOtherLitigation    PracticeArea = "other_litigation"
)

// Valid reports whether p is one of the defined practice areas.
func (p PracticeArea) Valid() bool {
	switch p {
	case PracticeCriminal, PracticeClinicalNegligence, PracticeHousingDisrepair,
		PracticePersonalInjury, PracticeFamily, PracticeOtherLitigation:
		return true
	}
	return false
}

// NormalizePracticeArea maps free-text practice-area labels from upstream
// systems onto the closed enumeration, defaulting to other_litigation.
func NormalizePracticeArea(s string) PracticeArea {
	normalized := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, " ", "_")))
	p := PracticeArea(normalized)
	if p.Valid() {
		return p
	}
	switch {
	case strings.Contains(normalized, "clinical") || strings.Contains(normalized, "negligence"):
		return PracticeClinicalNegligence
	case strings.Contains(normalized, "housing") || strings.Contains(normalized, "disrepair"):
		return PracticeHousingDisrepair
	case strings.Contains(normalized, "injury"):
		return PracticePersonalInjury
	case strings.Contains(normalized, "criminal"):
		return PracticeCriminal
	case strings.Contains(normalized, "family"):
		return PracticeFamily
	}
	return PracticeOtherLitigation
}

// ─────────────────────────────────────────────────────────────────────────────
// CaseRole enumeration
// ─────────────────────────────────────────────────────────────────────────────

// CaseRole is the inferred posture of the client in the dispute.
type CaseRole string

const (
	RoleClaimant  CaseRole = "claimant"
	RoleDefendant CaseRole = "defendant"
)

// Valid reports whether r is a defined role.
func (r CaseRole) Valid() bool {
	return r == RoleClaimant || r == RoleDefendant
}

// ─────────────────────────────────────────────────────────────────────────────
// Case aggregate
// ─────────────────────────────────────────────────────────────────────────────

// Case is the root identifier the engine analyses.  Role is optional; when
// unset the role classifier infers it from case text.
type Case struct {
	ID           common.ID    `json:"id"`
	PracticeArea PracticeArea `json:"practice_area"`
	Role         *CaseRole    `json:"role,omitempty"`
	IssuedAt     *time.Time   `json:"issued_at,omitempty"` // when proceedings were issued, nil pre-issue
	CreatedAt    time.Time    `json:"created_at"`
}

// Issued reports whether proceedings have been issued on the case.
func (c *Case) Issued() bool { return c.IssuedAt != nil }

// DaysSinceIssue returns whole days since issue, 0 when pre-issue.
func (c *Case) DaysSinceIssue(now time.Time) int {
	if c.IssuedAt == nil {
		return 0
	}
	return common.DaysBetween(*c.IssuedAt, now)
}

// Document is an immutable case document reference.  ExtractedText and
// Extraction are produced upstream (OCR / extraction pipelines, out of
// scope); either or both may be absent.
type Document struct {
	ID        common.ID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// ExtractedText is the raw extracted document text, empty if extraction
	// has not run.  When TextObjectKey is set and ExtractedText is empty the
	// repository hydrates it from the object store.
	ExtractedText string `json:"extracted_text,omitempty"`

	// TextObjectKey locates the extracted text in object storage.
	TextObjectKey string `json:"text_object_key,omitempty"`

	// Extraction is the structured extraction payload: summary, key issues,
	// timeline, expert findings.  Open-ended because upstream schemas vary.
	Extraction common.Metadata `json:"extraction,omitempty"`
}

// ExtractionString returns the named extraction field as a string, empty
// when absent or not a string.  This is the single guarded read over the
// loosely-typed extraction payload; detectors never chain through
// Extraction directly.
func (d *Document) ExtractionString(key string) string {
	if d.Extraction == nil {
		return ""
	}
	if s, ok := d.Extraction[key].(string); ok {
		return s
	}
	return ""
}

// ExtractionStrings returns the named extraction field as a string slice,
// tolerating []interface{} payloads from JSON decoding.
func (d *Document) ExtractionStrings(key string) []string {
	if d.Extraction == nil {
		return nil
	}
	switch v := d.Extraction[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// TimelineEvent is a dated free-text event.  Events are ordered by date;
// gaps between consecutive events are a detection input.
type TimelineEvent struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// Letter is outbound correspondence.  TemplateID identifies protocol-letter
// categories (e.g. pre-action) when the letter was generated from a template.
type Letter struct {
	ID         common.ID `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	TemplateID string    `json:"template_id,omitempty"`
}

// IsPreAction reports whether the letter is a pre-action protocol letter.
func (l *Letter) IsPreAction() bool {
	return strings.Contains(strings.ToLower(l.TemplateID), "pre_action") ||
		strings.Contains(strings.ToLower(l.TemplateID), "pre-action")
}

// DeadlineStatus is the lifecycle state of a deadline.
type DeadlineStatus string

const (
	DeadlineOpen      DeadlineStatus = "open"
	DeadlineCompleted DeadlineStatus = "completed"
)

// Deadline is a time-bound obligation on the case.
type Deadline struct {
	ID      common.ID      `json:"id"`
	Title   string         `json:"title"`
	DueDate time.Time      `json:"due_date"`
	Status  DeadlineStatus `json:"status"`
}

// IsOverdue reports whether the deadline has passed without completion.
func (d *Deadline) IsOverdue(now time.Time) bool {
	return d.Status != DeadlineCompleted && d.DueDate.Before(now)
}

// DaysOverdue returns whole days past due, 0 when not overdue.
func (d *Deadline) DaysOverdue(now time.Time) int {
	if !d.IsOverdue(now) {
		return 0
	}
	return common.DaysBetween(d.DueDate, now)
}

// ─────────────────────────────────────────────────────────────────────────────
// Collaborator data contracts
// ─────────────────────────────────────────────────────────────────────────────

// OpponentActivity is the opposing party's correspondence profile, built by
// an external snapshot provider.
type OpponentActivity struct {
	// SilenceDays is whole days since the last opposing contact; 0 when the
	// opponent responded today or no history exists.
	SilenceDays int `json:"silence_days"`

	// LastLetterAt is when the opposing party last wrote, nil when unknown.
	LastLetterAt *time.Time `json:"last_letter_at,omitempty"`

	// AvgResponseDays is the historical average opposing response time,
	// nil when insufficient history exists.
	AvgResponseDays *float64 `json:"avg_response_days,omitempty"`
}

// Contradiction is an evidentiary inconsistency found across a document
// bundle by the external contradiction finder.
type Contradiction struct {
	Description string            `json:"description"`
	Confidence  common.Confidence `json:"confidence"`
}

// CaseFile is the full immutable snapshot of case data handed to the engine.
type CaseFile struct {
	Case      Case            `json:"case"`
	Documents []Document      `json:"documents"`
	Timeline  []TimelineEvent `json:"timeline"`
	Letters   []Letter        `json:"letters"`
	Deadlines []Deadline      `json:"deadlines"`
}

// AllText concatenates every available text source on the case file in
// priority order: extracted text, structured extraction fields, document
// names, timeline descriptions.  Lexicon scanners operate on this.
func (f *CaseFile) AllText() string {
	var sb strings.Builder
	for _, d := range f.Documents {
		if d.ExtractedText != "" {
			sb.WriteString(d.ExtractedText)
			sb.WriteByte('\n')
		}
	}
	for _, d := range f.Documents {
		for _, key := range []string{"summary", "key_issues", "timeline", "expert_findings"} {
			if s := d.ExtractionString(key); s != "" {
				sb.WriteString(s)
				sb.WriteByte('\n')
			}
			for _, s := range d.ExtractionStrings(key) {
				sb.WriteString(s)
				sb.WriteByte('\n')
			}
		}
	}
	for _, d := range f.Documents {
		sb.WriteString(d.Name)
		sb.WriteByte('\n')
	}
	for _, ev := range f.Timeline {
		sb.WriteString(ev.Description)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// StructuredText concatenates only structured extraction fields.  Role
// classification weighs hits here double.
func (f *CaseFile) StructuredText() string {
	var sb strings.Builder
	for _, d := range f.Documents {
		for _, key := range []string{"summary", "key_issues", "timeline", "expert_findings"} {
			if s := d.ExtractionString(key); s != "" {
				sb.WriteString(s)
				sb.WriteByte('\n')
			}
			for _, s := range d.ExtractionStrings(key) {
				sb.WriteString(s)
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// UnstructuredText concatenates document names and timeline descriptions.
func (f *CaseFile) UnstructuredText() string {
	var sb strings.Builder
	for _, d := range f.Documents {
		sb.WriteString(d.Name)
		sb.WriteByte('\n')
	}
	for _, ev := range f.Timeline {
		sb.WriteString(ev.Description)
		sb.WriteByte('\n')
	}
	for _, d := range f.Documents {
		if d.ExtractedText != "" {
			sb.WriteString(d.ExtractedText)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// SortedTimeline returns the timeline ordered by date ascending without
// mutating the receiver.
func (f *CaseFile) SortedTimeline() []TimelineEvent {
	out := make([]TimelineEvent, len(f.Timeline))
	copy(out, f.Timeline)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// RecentDocumentCount returns how many documents were created within the
// given number of days before now.
func (f *CaseFile) RecentDocumentCount(now time.Time, days int) int {
	count := 0
	for _, d := range f.Documents {
		if common.DaysBetween(d.CreatedAt, now) <= days {
			count++
		}
	}
	return count
}
