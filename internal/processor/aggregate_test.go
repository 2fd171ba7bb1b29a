package processor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SurveyMonitor/internal/domain"
)

func submission(id, interviewer, lga string, status domain.SubmissionStatus, flags ...string) domain.Submission {
	return domain.Submission{
		ID:               id,
		Timestamp:        time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC),
		LGA:              lga,
		InterviewerID:    interviewer,
		SubmissionStatus: status,
		ErrorFlags:       append([]string{}, flags...),
		Path:             domain.PathUnknown,
		Gender:           domain.GenderOther,
	}
}

func repeat(n int, s domain.Submission) []domain.Submission {
	out := make([]domain.Submission, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	agg := Aggregate(nil, DefaultOverallTarget)

	assert.Equal(t, 0.0, agg.Summary.ApprovalRate)
	assert.Equal(t, 0.0, agg.Summary.NotApprovedRate)
	assert.Equal(t, 0.0, agg.Summary.CompletionRate)
	assert.Equal(t, DefaultOverallTarget, agg.Summary.OverallTarget)
	assert.Empty(t, agg.UserProductivity)
	assert.Empty(t, agg.QuotaByLGA)
	assert.Empty(t, agg.AchievementsByInterviewer)
	assert.Empty(t, agg.AchievementsByLGA)
	assert.NotNil(t, agg.Metadata.LGAs)
	assert.NotNil(t, agg.Metadata.Interviewers)
	assert.Len(t, agg.Metadata.ErrorTypes, len(domain.ErrorTypes))
}

func TestAggregateErrorBreakdownCompleteWithoutFlags(t *testing.T) {
	t.Parallel()

	subs := []domain.Submission{
		submission("1", "INT001", "Ifo", domain.StatusApproved),
		submission("2", "INT002", "Ifo", domain.StatusPending),
	}

	agg := Aggregate(subs, DefaultOverallTarget)
	require.Len(t, agg.ErrorBreakdown, 9)
	for i, e := range agg.ErrorBreakdown {
		assert.Equal(t, domain.ErrorTypes[i], e.Label)
		assert.Zero(t, e.Count)
		assert.Zero(t, e.Percentage)
	}
}

func TestAggregateErrorBreakdownTalliesUnknownFlags(t *testing.T) {
	t.Parallel()

	subs := []domain.Submission{
		submission("1", "INT001", "Ifo", domain.StatusRejected, "Odd Hour", "Foo Bar"),
		submission("2", "INT001", "Ifo", domain.StatusRejected, "Odd Hour"),
		submission("3", "INT002", "Ifo", domain.StatusRejected, "Odd Hour", "Short Gap"),
	}

	agg := Aggregate(subs, DefaultOverallTarget)
	require.Len(t, agg.ErrorBreakdown, 10)

	top := agg.ErrorBreakdown[0]
	assert.Equal(t, "Odd Hour", top.Label)
	assert.Equal(t, "ODD_HOUR", top.Code)
	assert.Equal(t, 3, top.Count)
	assert.InDelta(t, 60.0, top.Percentage, 1e-9)

	// Ties keep seed order, then first-seen order for unknown flags.
	assert.Equal(t, "Short Gap", agg.ErrorBreakdown[1].Label)
	assert.Equal(t, "Foo Bar", agg.ErrorBreakdown[2].Label)
	assert.Equal(t, "FOO_BAR", agg.ErrorBreakdown[2].Code)

	for i := 1; i < len(agg.ErrorBreakdown); i++ {
		assert.GreaterOrEqual(t, agg.ErrorBreakdown[i-1].Count, agg.ErrorBreakdown[i].Count)
	}

	// Metadata stays on the canonical vocabulary.
	require.Len(t, agg.Metadata.ErrorTypes, 9)
	assert.Equal(t, domain.ErrorType{Code: "OUTSIDE_LGA_BOUNDARY", Label: "Outside LGA Boundary"}, agg.Metadata.ErrorTypes[6])
}

func TestAggregateProductivityRanking(t *testing.T) {
	t.Parallel()

	var subs []domain.Submission
	subs = append(subs, repeat(10, submission("b", "B", "Ifo", domain.StatusApproved))...)
	subs = append(subs, repeat(2, submission("b", "B", "Ifo", domain.StatusRejected, "High LOI"))...)
	subs = append(subs, repeat(10, submission("a", "A", "Ifo", domain.StatusApproved))...)
	subs = append(subs, repeat(3, submission("c", "C", "Ifo", domain.StatusPending))...)

	agg := Aggregate(subs, DefaultOverallTarget)
	require.Len(t, agg.UserProductivity, 3)

	a, b, c := agg.UserProductivity[0], agg.UserProductivity[1], agg.UserProductivity[2]
	assert.Equal(t, "A", a.InterviewerID)
	assert.Equal(t, "B", b.InterviewerID)
	assert.Equal(t, "C", c.InterviewerID)

	assert.Equal(t, 100.0, a.ApprovalRate)
	assert.Equal(t, 12, b.Total)
	assert.Equal(t, 2, b.Invalid)
	assert.Equal(t, 2, b.TotalErrors)
	assert.InDelta(t, 83.333, b.ApprovalRate, 0.001)
	assert.Equal(t, 0.0, c.ApprovalRate)

	require.Len(t, agg.AchievementsByInterviewer, 3)
	for i, ach := range agg.AchievementsByInterviewer {
		assert.Equal(t, agg.UserProductivity[i].InterviewerID, ach.Name)
		assert.Equal(t, i+1, ach.Rank)
		assert.Equal(t, 334, ach.Target)
		assert.Equal(t, agg.UserProductivity[i].Total, ach.Achieved)
	}
	assert.InDelta(t, 12.0/334*100, agg.AchievementsByInterviewer[1].CompletionRate, 1e-9)

	assert.Equal(t, []string{"B", "A", "C"}, agg.Metadata.Interviewers)
}

func TestAggregateSummary(t *testing.T) {
	t.Parallel()

	subs := []domain.Submission{
		submission("1", "A", "Ifo", domain.StatusApproved),
		submission("2", "A", "Ifo", domain.StatusApproved),
		submission("3", "A", "Ifo", domain.StatusApproved),
		submission("4", "A", "Ifo", domain.StatusRejected),
		submission("5", "A", "Ifo", domain.StatusPending),
	}
	subs[0].Path = domain.PathTreatment
	subs[1].Path = domain.PathControl

	s := Aggregate(subs, 4).Summary
	assert.Equal(t, 5, s.TotalSubmissions)
	assert.Equal(t, 3, s.ApprovedSubmissions)
	assert.Equal(t, 1, s.NotApprovedSubmissions)
	assert.Equal(t, 1, s.PendingSubmissions)
	assert.Equal(t, 75.0, s.ApprovalRate)
	assert.Equal(t, 25.0, s.NotApprovedRate)
	assert.Equal(t, 125.0, s.CompletionRate)
	assert.Equal(t, 1, s.TreatmentPathCount)
	assert.Equal(t, 1, s.ControlPathCount)
	assert.Equal(t, 3, s.UnknownPathCount)
}

func TestAggregateQuotaAndLGAAchievements(t *testing.T) {
	t.Parallel()

	var subs []domain.Submission
	subs = append(subs, repeat(2, submission("x", "A", "Ifo", domain.StatusApproved))...)
	subs = append(subs, repeat(5, submission("y", "A", "Ewekoro", domain.StatusApproved))...)
	subs = append(subs, repeat(1, submission("z", "B", "Abeokuta North", domain.StatusApproved))...)

	agg := Aggregate(subs, DefaultOverallTarget)

	assert.Equal(t, []string{"Abeokuta North", "Ewekoro", "Ifo"}, agg.Metadata.LGAs)
	assert.Equal(t, []domain.Quota{
		{Category: "Abeokuta North", Target: 334, Actual: 1},
		{Category: "Ewekoro", Target: 334, Actual: 5},
		{Category: "Ifo", Target: 334, Actual: 2},
	}, agg.QuotaByLGA)

	require.Len(t, agg.AchievementsByLGA, 3)
	assert.Equal(t, "Ewekoro", agg.AchievementsByLGA[0].Name)
	assert.Equal(t, "Ifo", agg.AchievementsByLGA[1].Name)
	assert.Equal(t, "Abeokuta North", agg.AchievementsByLGA[2].Name)
	for i, a := range agg.AchievementsByLGA {
		assert.Equal(t, i+1, a.Rank)
		assert.Equal(t, 334, a.Target)
	}
	assert.InDelta(t, 5.0/334*100, agg.AchievementsByLGA[0].CompletionRate, 1e-9)

	// Interviewer targets divide the same goal over a different partition.
	assert.Equal(t, 500, agg.AchievementsByInterviewer[0].Target)
}

func TestAggregateNonPositiveTargetUsesDefault(t *testing.T) {
	t.Parallel()

	agg := Aggregate([]domain.Submission{submission("1", "A", "Ifo", domain.StatusApproved)}, 0)
	assert.Equal(t, DefaultOverallTarget, agg.Summary.OverallTarget)
	assert.Equal(t, DefaultOverallTarget, agg.QuotaByLGA[0].Target)
}
