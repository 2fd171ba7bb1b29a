package usecase

import (
	"slices"
	"time"

	"SurveyMonitor/internal/domain"
)

// StatusAll disables the status filter.
const StatusAll = "All"

// FilterByLGA narrows a snapshot to one LGA without recomputing aggregates.
// Submissions, productivity and interviewer achievements are restricted to
// that LGA and the interviewers seen there; every other field is kept as is.
// An empty name returns data unchanged.
func FilterByLGA(data domain.DashboardData, lga string) domain.DashboardData {
	if lga == "" {
		return data
	}

	submissions := make([]domain.Submission, 0)
	seen := make(map[string]struct{})
	for _, s := range data.Submissions {
		if s.LGA != lga {
			continue
		}
		submissions = append(submissions, s)
		seen[s.InterviewerID] = struct{}{}
	}

	productivity := make([]domain.UserProductivity, 0)
	for _, p := range data.UserProductivity {
		if _, ok := seen[p.InterviewerID]; ok {
			productivity = append(productivity, p)
		}
	}

	achievements := make([]domain.Achievement, 0)
	for _, a := range data.AchievementsByInterviewer {
		if _, ok := seen[a.Name]; ok {
			achievements = append(achievements, a)
		}
	}

	out := data
	out.Submissions = submissions
	out.UserProductivity = productivity
	out.AchievementsByInterviewer = achievements
	return out
}

// AnalysisFilter selects the submissions handed to the analyst. Zero values
// leave the corresponding dimension unfiltered.
type AnalysisFilter struct {
	Status  string
	QCFlags []string
	Start   time.Time
	End     time.Time
}

// Active reports whether any dimension is constrained.
func (f AnalysisFilter) Active() bool {
	return (f.Status != "" && f.Status != StatusAll) ||
		len(f.QCFlags) > 0 ||
		!f.Start.IsZero() ||
		!f.End.IsZero()
}

// Match reports whether a submission passes every constrained dimension.
// Both ends of the date range are inclusive; any one QC flag is enough.
func (f AnalysisFilter) Match(s domain.Submission) bool {
	if !f.Start.IsZero() && s.Timestamp.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && s.Timestamp.After(f.End) {
		return false
	}
	if f.Status != "" && f.Status != StatusAll && string(s.SubmissionStatus) != f.Status {
		return false
	}
	if len(f.QCFlags) > 0 && !slices.ContainsFunc(f.QCFlags, func(flag string) bool {
		return slices.Contains(s.ErrorFlags, flag)
	}) {
		return false
	}
	return true
}

// ApplyAnalysisFilter replaces the submission list with the matching subset.
// Summary and rollups still describe the unfiltered set.
func ApplyAnalysisFilter(data domain.DashboardData, f AnalysisFilter) domain.DashboardData {
	if !f.Active() {
		return data
	}

	submissions := make([]domain.Submission, 0, len(data.Submissions))
	for _, s := range data.Submissions {
		if f.Match(s) {
			submissions = append(submissions, s)
		}
	}

	out := data
	out.Submissions = submissions
	return out
}
