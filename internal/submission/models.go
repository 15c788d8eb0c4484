package submission

import "time"

// Gender is one of the fixed values accepted by the form.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid reports whether g is in the accepted set. Comparison is exact.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Age bounds, inclusive.
const (
	MinAge = 1
	MaxAge = 150
)

// PersonalData is the validated form payload. Values of this type are only
// produced by Validate (or decoded back from a store that Validate fed).
type PersonalData struct {
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Age    int    `json:"age" yaml:"age"`
	Gender Gender `json:"gender" yaml:"gender"`
}

// Submission is a persisted, immutable record.
type Submission struct {
	Data        PersonalData `json:"data" yaml:"data"`
	SubmittedAt string       `json:"submittedAt" yaml:"submittedAt"`
}

// TimestampLayout renders submittedAt as ISO-8601 UTC with millisecond
// precision, matching what browsers produce from Date.prototype.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// New stamps validated data with the submission time.
func New(data PersonalData, submittedAt time.Time) Submission {
	return Submission{
		Data:        data,
		SubmittedAt: FormatTimestamp(submittedAt),
	}
}
