// Package processor turns raw sheet rows into the dashboard model.
//
// Every function here is pure: the same rows, options and clock reading
// always produce the same snapshot.
package processor

import (
	"time"

	"SurveyMonitor/internal/domain"
)

// Options parameterize one processing run.
type Options struct {
	OverallTarget int
	Location      *time.Location
	Now           time.Time
}

// Process runs normalize, aggregate and assemble over rows.
func Process(rows []domain.RawRow, opts Options) domain.DashboardData {
	submissions := Normalize(rows, opts.Location)
	agg := Aggregate(submissions, opts.OverallTarget)
	return Assemble(submissions, agg, opts.Now)
}
