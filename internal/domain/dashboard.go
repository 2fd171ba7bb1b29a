package domain

import "time"

// Summary holds the headline counts and rates.
type Summary struct {
	OverallTarget          int     `json:"overallTarget"`
	TotalSubmissions       int     `json:"totalSubmissions"`
	ApprovedSubmissions    int     `json:"approvedSubmissions"`
	ApprovalRate           float64 `json:"approvalRate"`
	NotApprovedSubmissions int     `json:"notApprovedSubmissions"`
	NotApprovedRate        float64 `json:"notApprovedRate"`
	PendingSubmissions     int     `json:"pendingSubmissions"`
	CompletionRate         float64 `json:"completionRate"`
	TreatmentPathCount     int     `json:"treatmentPathCount"`
	ControlPathCount       int     `json:"controlPathCount"`
	UnknownPathCount       int     `json:"unknownPathCount"`
}

// Quota compares target and actual counts for one category.
type Quota struct {
	Category string `json:"category"`
	Target   int    `json:"target"`
	Actual   int    `json:"actual"`
}

// UserProductivity is the per-interviewer rollup.
type UserProductivity struct {
	InterviewerID string  `json:"interviewerId"`
	Valid         int     `json:"valid"`
	Invalid       int     `json:"invalid"`
	Total         int     `json:"total"`
	ApprovalRate  float64 `json:"approvalRate"`
	TotalErrors   int     `json:"totalErrors"`
}

// ErrorBreakdown is one bar of the error-flag histogram.
type ErrorBreakdown struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Achievement is a ranked progress-toward-target record.
type Achievement struct {
	Name           string  `json:"name"`
	Target         int     `json:"target"`
	Achieved       int     `json:"achieved"`
	CompletionRate float64 `json:"completionRate"`
	Rank           int     `json:"rank"`
}

// ChartDataset is one series of a chart.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
}

// ProgressChart is a chart-ready projection of aggregated values.
type ProgressChart struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ErrorType pairs a flag code with its label.
type ErrorType struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Metadata lists the distinct dimensions present in the data.
type Metadata struct {
	LGAs         []string    `json:"lgas"`
	Interviewers []string    `json:"interviewers"`
	ErrorTypes   []ErrorType `json:"errorTypes"`
}

// DashboardData is one immutable snapshot handed to the presentation layer.
type DashboardData struct {
	LastUpdated               time.Time          `json:"lastUpdated"`
	StatusMessage             string             `json:"statusMessage"`
	Submissions               []Submission       `json:"submissions"`
	Summary                   Summary            `json:"summary"`
	QuotaProgress             ProgressChart      `json:"quotaProgress"`
	StatusBreakdown           ProgressChart      `json:"statusBreakdown"`
	QuotaByLGA                []Quota            `json:"quotaByLGA"`
	QuotaByLGAAge             []Quota            `json:"quotaByLGAAge"`
	QuotaByLGAGender          []Quota            `json:"quotaByLGAGender"`
	UserProductivity          []UserProductivity `json:"userProductivity"`
	ErrorBreakdown            []ErrorBreakdown   `json:"errorBreakdown"`
	AchievementsByState       []Achievement      `json:"achievementsByState"`
	AchievementsByInterviewer []Achievement      `json:"achievementsByInterviewer"`
	AchievementsByLGA         []Achievement      `json:"achievementsByLGA"`
	Metadata                  Metadata           `json:"metadata"`
}
