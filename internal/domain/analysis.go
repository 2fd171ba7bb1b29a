package domain

// ErrorCount is a flag label with its tally.
type ErrorCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// InterviewerVolume is an interviewer's submission volume and approval rate.
type InterviewerVolume struct {
	ID           string  `json:"id"`
	Submissions  int     `json:"submissions"`
	ApprovalRate float64 `json:"approvalRate"`
}

// AnalysisSummary is the condensed dataset forwarded to the analysis service.
type AnalysisSummary struct {
	TotalSubmissions    int                 `json:"totalSubmissions"`
	ApprovalRate        float64             `json:"approvalRate"`
	Top5Errors          []ErrorCount        `json:"top5Errors"`
	Top5ProductiveUsers []InterviewerVolume `json:"top5ProductiveUsers"`
	AvailableLGAs       []string            `json:"availableLGAs"`
}

// AnalysisRequest pairs the summary with the user's question.
type AnalysisRequest struct {
	Summary         AnalysisSummary
	SubmissionCount int
	Question        string
}
