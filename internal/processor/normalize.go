package processor

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"SurveyMonitor/internal/domain"
)

const (
	unknownValue = "Unknown"
	minValidYear = 2000
)

const (
	usTimestampLayout  = "1/2/2006, 15:04:05"
	isoTimestampLayout = "2006-01-02T15:04:05.000Z"
)

// Normalize converts raw rows into submissions ordered newest first.
// Rows whose timestamp cannot be resolved to a year after 2000 are dropped.
func Normalize(rows []domain.RawRow, loc *time.Location) []domain.Submission {
	if loc == nil {
		loc = time.UTC
	}

	submissions := make([]domain.Submission, 0, len(rows))
	for i, row := range rows {
		s := normalizeRow(row, i, loc)
		if s.Timestamp.In(loc).Year() <= minValidYear {
			continue
		}
		submissions = append(submissions, s)
	}

	slices.SortStableFunc(submissions, func(a, b domain.Submission) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	return submissions
}

func normalizeRow(row domain.RawRow, index int, loc *time.Location) domain.Submission {
	ts, ok := parseTimestamp(valueOr(row.Timestamp, ""), loc)
	if !ok {
		ts = time.Unix(0, 0).UTC()
	}

	return domain.Submission{
		ID:               valueOr(row.ID, fmt.Sprintf("sub_%d", index)),
		Timestamp:        ts,
		LGA:              valueOr(row.LGA, unknownValue),
		State:            valueOr(row.State, unknownValue),
		InterviewerID:    valueOr(row.InterviewerID, unknownValue),
		SubmissionStatus: domain.ParseStatus(valueOr(row.Status, "")),
		ErrorFlags:       splitFlags(valueOr(row.ErrorFlags, "")),
		Path:             domain.ParsePath(valueOr(row.Path, "")),
		AgeGroup:         valueOr(row.AgeGroup, unknownValue),
		Gender:           domain.ParseGender(valueOr(row.Gender, "")),
		GPS:              parseGPS(valueOr(row.GPS, "")),
	}
}

// parseTimestamp tries the US sheet format, then ISO-8601 with milliseconds, then a free-form parse.
func parseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if t, err := time.ParseInLocation(usTimestampLayout, raw, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(isoTimestampLayout, raw); err == nil {
		return t, true
	}
	if t, err := dateparse.ParseIn(raw, loc); err == nil {
		return t, true
	}
	// "1/5/2024, 10:00:00 AM" style strings carry a comma dateparse rejects.
	if t, err := dateparse.ParseIn(strings.Replace(raw, ",", "", 1), loc); err == nil {
		return t, true
	}

	return time.Time{}, false
}

func splitFlags(raw string) []string {
	flags := make([]string, 0)
	if raw == "" {
		return flags
	}
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			flags = append(flags, f)
		}
	}
	return flags
}

func parseGPS(raw string) domain.GPS {
	parts := strings.Split(raw, ",")
	gps := domain.GPS{Lat: parseCoordinate(parts[0])}
	if len(parts) > 1 {
		gps.Lon = parseCoordinate(parts[1])
	}
	return gps
}

func parseCoordinate(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func valueOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
