package litigation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/casefort/LitIntel/pkg/types/common"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestNormalizePracticeArea(t *testing.T) {
	cases := map[string]PracticeArea{
		"clinical_negligence": PracticeClinicalNegligence,
		"Clinical Negligence": PracticeClinicalNegligence,
		"housing disrepair":   PracticeHousingDisrepair,
		"personal injury":     PracticePersonalInjury,
		"criminal":            PracticeCriminal,
		"family":              PracticeFamily,
		"commercial dispute":  PracticeOtherLitigation,
		"":                    PracticeOtherLitigation,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePracticeArea(in), "input %q", in)
	}
}

func TestDeadline_IsOverdue(t *testing.T) {
	open := Deadline{DueDate: now.AddDate(0, 0, -10), Status: DeadlineOpen}
	assert.True(t, open.IsOverdue(now))
	assert.Equal(t, 10, open.DaysOverdue(now))

	done := Deadline{DueDate: now.AddDate(0, 0, -10), Status: DeadlineCompleted}
	assert.False(t, done.IsOverdue(now))
	assert.Equal(t, 0, done.DaysOverdue(now))

	future := Deadline{DueDate: now.AddDate(0, 0, 5), Status: DeadlineOpen}
	assert.False(t, future.IsOverdue(now))
}

func TestLetter_IsPreAction(t *testing.T) {
	assert.True(t, (&Letter{TemplateID: "pre_action_protocol_v2"}).IsPreAction())
	assert.True(t, (&Letter{TemplateID: "housing-pre-action"}).IsPreAction())
	assert.False(t, (&Letter{TemplateID: "chaser_letter"}).IsPreAction())
	assert.False(t, (&Letter{}).IsPreAction())
}

func TestDocument_ExtractionReads(t *testing.T) {
	d := Document{Extraction: common.Metadata{
		"summary":    "GP notes show delayed referral",
		"key_issues": []interface{}{"breach of duty", 42, "causation disputed"},
		"count":      3,
	}}

	assert.Equal(t, "GP notes show delayed referral", d.ExtractionString("summary"))
	assert.Equal(t, "", d.ExtractionString("count"))
	assert.Equal(t, "", d.ExtractionString("missing"))
	assert.Equal(t, []string{"breach of duty", "causation disputed"}, d.ExtractionStrings("key_issues"))
	assert.Nil(t, (&Document{}).ExtractionStrings("key_issues"))
}

func TestCaseFile_AllText_PriorityOrder(t *testing.T) {
	f := &CaseFile{
		Documents: []Document{
			{Name: "Claim Form", ExtractedText: "raw body text", Extraction: common.Metadata{"summary": "structured summary"}},
		},
		Timeline: []TimelineEvent{{Date: now, Description: "surgery performed"}},
	}
	all := f.AllText()

	rawIdx := strings.Index(all, "raw body text")
	structIdx := strings.Index(all, "structured summary")
	nameIdx := strings.Index(all, "Claim Form")
	timelineIdx := strings.Index(all, "surgery performed")

	assert.True(t, rawIdx >= 0 && structIdx > rawIdx && nameIdx > structIdx && timelineIdx > nameIdx)
}

func TestCaseFile_SortedTimeline_DoesNotMutate(t *testing.T) {
	f := &CaseFile{Timeline: []TimelineEvent{
		{Date: now, Description: "later"},
		{Date: now.AddDate(0, -2, 0), Description: "earlier"},
	}}
	sorted := f.SortedTimeline()
	assert.Equal(t, "earlier", sorted[0].Description)
	assert.Equal(t, "later", f.Timeline[0].Description)
}

func TestCaseFile_SortedTimeline_StableOnEqualDates(t *testing.T) {
	f := &CaseFile{Timeline: []TimelineEvent{
		{Date: now, Description: "first reported"},
		{Date: now.AddDate(0, -1, 0), Description: "instruction"},
		{Date: now, Description: "second reported"},
	}}
	sorted := f.SortedTimeline()
	assert.Equal(t, "instruction", sorted[0].Description)
	assert.Equal(t, "first reported", sorted[1].Description)
	assert.Equal(t, "second reported", sorted[2].Description)
}

func TestCaseFile_RecentDocumentCount(t *testing.T) {
	f := &CaseFile{Documents: []Document{
		{CreatedAt: now.AddDate(0, 0, -3)},
		{CreatedAt: now.AddDate(0, 0, -40)},
	}}
	assert.Equal(t, 1, f.RecentDocumentCount(now, 30))
	assert.Equal(t, 2, f.RecentDocumentCount(now, 60))
}

func TestCase_DaysSinceIssue(t *testing.T) {
	c := &Case{}
	assert.False(t, c.Issued())
	assert.Equal(t, 0, c.DaysSinceIssue(now))

	issued := now.AddDate(0, 0, -35)
	c.IssuedAt = &issued
	assert.True(t, c.Issued())
	assert.Equal(t, 35, c.DaysSinceIssue(now))
}
