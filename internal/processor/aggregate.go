package processor

import (
	"slices"
	"sort"

	"SurveyMonitor/internal/domain"
)

// DefaultOverallTarget is the survey-wide submission goal.
const DefaultOverallTarget = 1000

// Aggregates are the views derived from a submission collection.
type Aggregates struct {
	Summary                   domain.Summary
	UserProductivity          []domain.UserProductivity
	ErrorBreakdown            []domain.ErrorBreakdown
	QuotaByLGA                []domain.Quota
	AchievementsByInterviewer []domain.Achievement
	AchievementsByLGA         []domain.Achievement
	Metadata                  domain.Metadata
}

// Aggregate derives every dashboard view from submissions. It never fails and
// every rate falls back to 0 when its denominator is 0.
func Aggregate(submissions []domain.Submission, overallTarget int) Aggregates {
	if overallTarget <= 0 {
		overallTarget = DefaultOverallTarget
	}

	productivity := userProductivity(submissions)
	lgas := distinctLGAs(submissions)

	return Aggregates{
		Summary:                   summarize(submissions, overallTarget),
		UserProductivity:          productivity,
		ErrorBreakdown:            errorBreakdown(submissions),
		QuotaByLGA:                quotaByLGA(submissions, lgas, overallTarget),
		AchievementsByInterviewer: achievementsByInterviewer(productivity, overallTarget),
		AchievementsByLGA:         achievementsByLGA(submissions, overallTarget),
		Metadata: domain.Metadata{
			LGAs:         lgas,
			Interviewers: distinctInterviewers(submissions),
			ErrorTypes:   canonicalErrorTypes(),
		},
	}
}

func summarize(submissions []domain.Submission, overallTarget int) domain.Summary {
	s := domain.Summary{
		OverallTarget:    overallTarget,
		TotalSubmissions: len(submissions),
	}

	for _, sub := range submissions {
		switch sub.SubmissionStatus {
		case domain.StatusApproved:
			s.ApprovedSubmissions++
		case domain.StatusRejected:
			s.NotApprovedSubmissions++
		default:
			s.PendingSubmissions++
		}

		switch sub.Path {
		case domain.PathTreatment:
			s.TreatmentPathCount++
		case domain.PathControl:
			s.ControlPathCount++
		default:
			s.UnknownPathCount++
		}
	}

	rated := s.ApprovedSubmissions + s.NotApprovedSubmissions
	s.ApprovalRate = percent(s.ApprovedSubmissions, rated)
	s.NotApprovedRate = percent(s.NotApprovedSubmissions, rated)
	// Uncapped: can exceed 100 once the target is overshot.
	s.CompletionRate = percent(s.TotalSubmissions, overallTarget)

	return s
}

func userProductivity(submissions []domain.Submission) []domain.UserProductivity {
	index := map[string]int{}
	result := make([]domain.UserProductivity, 0)

	for _, sub := range submissions {
		i, ok := index[sub.InterviewerID]
		if !ok {
			i = len(result)
			index[sub.InterviewerID] = i
			result = append(result, domain.UserProductivity{InterviewerID: sub.InterviewerID})
		}

		u := &result[i]
		u.Total++
		switch sub.SubmissionStatus {
		case domain.StatusApproved:
			u.Valid++
		case domain.StatusRejected:
			u.Invalid++
		}
		u.TotalErrors += len(sub.ErrorFlags)
	}

	for i := range result {
		result[i].ApprovalRate = percent(result[i].Valid, result[i].Valid+result[i].Invalid)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Valid != result[j].Valid {
			return result[i].Valid > result[j].Valid
		}
		return result[i].Invalid < result[j].Invalid
	})

	return result
}

func errorBreakdown(submissions []domain.Submission) []domain.ErrorBreakdown {
	counts := map[string]int{}
	order := make([]string, 0, len(domain.ErrorTypes))
	for _, label := range domain.ErrorTypes {
		counts[label] = 0
		order = append(order, label)
	}

	total := 0
	for _, sub := range submissions {
		for _, flag := range sub.ErrorFlags {
			if _, seen := counts[flag]; !seen {
				order = append(order, flag)
			}
			counts[flag]++
			total++
		}
	}

	result := make([]domain.ErrorBreakdown, 0, len(order))
	for _, label := range order {
		result = append(result, domain.ErrorBreakdown{
			Code:       domain.ErrorCode(label),
			Label:      label,
			Count:      counts[label],
			Percentage: percent(counts[label], total),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result
}

func quotaByLGA(submissions []domain.Submission, lgas []string, overallTarget int) []domain.Quota {
	result := make([]domain.Quota, 0, len(lgas))
	if len(lgas) == 0 {
		return result
	}

	actual := map[string]int{}
	for _, sub := range submissions {
		actual[sub.LGA]++
	}

	target := ceilDiv(overallTarget, len(lgas))
	for _, lga := range lgas {
		result = append(result, domain.Quota{Category: lga, Target: target, Actual: actual[lga]})
	}

	return result
}

// achievementsByInterviewer keeps the productivity ordering as the ranking.
func achievementsByInterviewer(productivity []domain.UserProductivity, overallTarget int) []domain.Achievement {
	result := make([]domain.Achievement, 0, len(productivity))
	if len(productivity) == 0 {
		return result
	}

	target := ceilDiv(overallTarget, len(productivity))
	for i, u := range productivity {
		result = append(result, domain.Achievement{
			Name:           u.InterviewerID,
			Target:         target,
			Achieved:       u.Total,
			CompletionRate: percent(u.Total, target),
			Rank:           i + 1,
		})
	}

	return result
}

func achievementsByLGA(submissions []domain.Submission, overallTarget int) []domain.Achievement {
	index := map[string]int{}
	result := make([]domain.Achievement, 0)

	for _, sub := range submissions {
		i, ok := index[sub.LGA]
		if !ok {
			i = len(result)
			index[sub.LGA] = i
			result = append(result, domain.Achievement{Name: sub.LGA})
		}
		result[i].Achieved++
	}

	if len(result) == 0 {
		return result
	}

	target := ceilDiv(overallTarget, len(result))
	for i := range result {
		result[i].Target = target
		result[i].CompletionRate = percent(result[i].Achieved, target)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Achieved > result[j].Achieved
	})
	for i := range result {
		result[i].Rank = i + 1
	}

	return result
}

func distinctLGAs(submissions []domain.Submission) []string {
	seen := map[string]struct{}{}
	lgas := make([]string, 0)
	for _, sub := range submissions {
		if _, ok := seen[sub.LGA]; ok {
			continue
		}
		seen[sub.LGA] = struct{}{}
		lgas = append(lgas, sub.LGA)
	}
	slices.Sort(lgas)
	return lgas
}

// distinctInterviewers preserves first-seen order.
func distinctInterviewers(submissions []domain.Submission) []string {
	seen := map[string]struct{}{}
	ids := make([]string, 0)
	for _, sub := range submissions {
		if _, ok := seen[sub.InterviewerID]; ok {
			continue
		}
		seen[sub.InterviewerID] = struct{}{}
		ids = append(ids, sub.InterviewerID)
	}
	return ids
}

func canonicalErrorTypes() []domain.ErrorType {
	types := make([]domain.ErrorType, 0, len(domain.ErrorTypes))
	for _, label := range domain.ErrorTypes {
		types = append(types, domain.ErrorType{Code: domain.ErrorCode(label), Label: label})
	}
	return types
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
