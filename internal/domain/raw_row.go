package domain

// Column labels of the source sheet.
const (
	ColumnID            = "ID"
	ColumnTimestamp     = "Timestamp"
	ColumnLGA           = "LGA"
	ColumnState         = "State"
	ColumnInterviewerID = "Interviewer ID"
	ColumnStatus        = "Status"
	ColumnErrorFlags    = "Error Flags"
	ColumnPath          = "Path"
	ColumnAgeGroup      = "Age Group"
	ColumnGender        = "Gender"
	ColumnGPS           = "GPS"
)

// Columns lists every label a source row is addressed by, in sheet order.
var Columns = []string{
	ColumnID,
	ColumnTimestamp,
	ColumnLGA,
	ColumnState,
	ColumnInterviewerID,
	ColumnStatus,
	ColumnErrorFlags,
	ColumnPath,
	ColumnAgeGroup,
	ColumnGender,
	ColumnGPS,
}

// RawRow is one untyped source record. A nil field was absent or null in the source.
type RawRow struct {
	ID            *string
	Timestamp     *string
	LGA           *string
	State         *string
	InterviewerID *string
	Status        *string
	ErrorFlags    *string
	Path          *string
	AgeGroup      *string
	Gender        *string
	GPS           *string
}

// RawRowFromRecord picks the known columns out of a label-keyed record.
func RawRowFromRecord(record map[string]string) RawRow {
	pick := func(column string) *string {
		v, ok := record[column]
		if !ok {
			return nil
		}
		return &v
	}

	return RawRow{
		ID:            pick(ColumnID),
		Timestamp:     pick(ColumnTimestamp),
		LGA:           pick(ColumnLGA),
		State:         pick(ColumnState),
		InterviewerID: pick(ColumnInterviewerID),
		Status:        pick(ColumnStatus),
		ErrorFlags:    pick(ColumnErrorFlags),
		Path:          pick(ColumnPath),
		AgeGroup:      pick(ColumnAgeGroup),
		Gender:        pick(ColumnGender),
		GPS:           pick(ColumnGPS),
	}
}

// Text returns a pointer to s, for building rows by hand.
func Text(s string) *string {
	return &s
}
