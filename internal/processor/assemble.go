package processor

import (
	"fmt"
	"time"

	"SurveyMonitor/internal/domain"
)

// Chart palette tokens resolved by the presentation theme.
const (
	colorPrimary     = "hsl(var(--primary))"
	colorMuted       = "hsl(var(--muted))"
	colorSuccess     = "hsl(var(--success))"
	colorDestructive = "hsl(var(--destructive))"
	colorWarning     = "hsl(var(--warning))"
)

// Assemble packages submissions and their aggregates into one snapshot.
// It only reshapes; neither argument is modified.
func Assemble(submissions []domain.Submission, agg Aggregates, now time.Time) domain.DashboardData {
	s := agg.Summary

	return domain.DashboardData{
		LastUpdated:      now,
		StatusMessage:    fmt.Sprintf("%d submissions pending review.", s.PendingSubmissions),
		Submissions:      submissions,
		Summary:          s,
		QuotaProgress:    quotaProgress(s),
		StatusBreakdown:  statusBreakdown(s),
		QuotaByLGA:       agg.QuotaByLGA,
		QuotaByLGAAge:    []domain.Quota{},
		QuotaByLGAGender: []domain.Quota{},
		UserProductivity: agg.UserProductivity,
		ErrorBreakdown:   agg.ErrorBreakdown,
		// Populated once the source carries more than one state.
		AchievementsByState:       []domain.Achievement{},
		AchievementsByInterviewer: agg.AchievementsByInterviewer,
		AchievementsByLGA:         agg.AchievementsByLGA,
		Metadata:                  agg.Metadata,
	}
}

func quotaProgress(s domain.Summary) domain.ProgressChart {
	remaining := s.OverallTarget - s.TotalSubmissions
	if remaining < 0 {
		remaining = 0
	}

	return domain.ProgressChart{
		Labels: []string{"Completion"},
		Datasets: []domain.ChartDataset{
			{Label: "Completed", Data: []float64{float64(s.TotalSubmissions)}, BackgroundColor: []string{colorPrimary}},
			{Label: "Remaining", Data: []float64{float64(remaining)}, BackgroundColor: []string{colorMuted}},
		},
	}
}

func statusBreakdown(s domain.Summary) domain.ProgressChart {
	return domain.ProgressChart{
		Labels: []string{"Approved", "Rejected", "Pending"},
		Datasets: []domain.ChartDataset{
			{
				Label: "Submissions by Status",
				Data: []float64{
					float64(s.ApprovedSubmissions),
					float64(s.NotApprovedSubmissions),
					float64(s.PendingSubmissions),
				},
				BackgroundColor: []string{colorSuccess, colorDestructive, colorWarning},
			},
		},
	}
}
