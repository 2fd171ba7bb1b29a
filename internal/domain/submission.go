package domain

import "time"

// SubmissionStatus is the review state of a submission.
type SubmissionStatus string

const (
	StatusApproved SubmissionStatus = "Approved"
	StatusRejected SubmissionStatus = "Not Approved"
	StatusPending  SubmissionStatus = "Pending"
)

// ParseStatus maps a raw status cell onto the closed status set; anything unrecognized is pending.
func ParseStatus(raw string) SubmissionStatus {
	switch raw {
	case string(StatusApproved):
		return StatusApproved
	case string(StatusRejected):
		return StatusRejected
	default:
		return StatusPending
	}
}

// Path is the experimental arm a respondent was assigned to.
type Path string

const (
	PathTreatment Path = "Treatment"
	PathControl   Path = "Control"
	PathUnknown   Path = "Unknown"
)

// ParsePath maps a raw path cell onto the closed path set.
func ParsePath(raw string) Path {
	switch raw {
	case string(PathTreatment):
		return PathTreatment
	case string(PathControl):
		return PathControl
	default:
		return PathUnknown
	}
}

// Gender of the respondent.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender maps a raw gender cell onto the closed gender set.
func ParseGender(raw string) Gender {
	switch raw {
	case string(GenderMale):
		return GenderMale
	case string(GenderFemale):
		return GenderFemale
	default:
		return GenderOther
	}
}

// GPS is a coordinate pair. {0, 0} marks an unparseable source value.
type GPS struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Submission is one normalized survey response.
type Submission struct {
	ID               string           `json:"id"`
	Timestamp        time.Time        `json:"timestamp"`
	LGA              string           `json:"lga"`
	State            string           `json:"state"`
	InterviewerID    string           `json:"interviewerId"`
	SubmissionStatus SubmissionStatus `json:"submissionStatus"`
	ErrorFlags       []string         `json:"errorFlags"`
	Path             Path             `json:"path"`
	AgeGroup         string           `json:"ageGroup"`
	Gender           Gender           `json:"gender"`
	GPS              GPS              `json:"gps"`
}
