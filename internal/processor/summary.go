package processor

import (
	"sort"

	"SurveyMonitor/internal/domain"
)

const summaryTopN = 5

// Summarize condenses a snapshot into the payload sent to the analysis service.
func Summarize(data domain.DashboardData) domain.AnalysisSummary {
	errs := make([]domain.ErrorCount, 0, summaryTopN)
	for _, e := range data.ErrorBreakdown {
		if len(errs) == summaryTopN {
			break
		}
		errs = append(errs, domain.ErrorCount{Label: e.Label, Count: e.Count})
	}

	byVolume := make([]domain.UserProductivity, len(data.UserProductivity))
	copy(byVolume, data.UserProductivity)
	sort.SliceStable(byVolume, func(i, j int) bool {
		return byVolume[i].Total > byVolume[j].Total
	})
	if len(byVolume) > summaryTopN {
		byVolume = byVolume[:summaryTopN]
	}

	users := make([]domain.InterviewerVolume, 0, len(byVolume))
	for _, u := range byVolume {
		users = append(users, domain.InterviewerVolume{
			ID:           u.InterviewerID,
			Submissions:  u.Total,
			ApprovalRate: u.ApprovalRate,
		})
	}

	lgas := data.Metadata.LGAs
	if lgas == nil {
		lgas = []string{}
	}

	return domain.AnalysisSummary{
		TotalSubmissions:    data.Summary.TotalSubmissions,
		ApprovalRate:        data.Summary.ApprovalRate,
		Top5Errors:          errs,
		Top5ProductiveUsers: users,
		AvailableLGAs:       lgas,
	}
}
