package domain

// TranscriptStatus describes the state of a student's uploaded transcript.
// Upload handling itself is owned by the document collaborator.
type TranscriptStatus string

const (
	TranscriptStatusMissing  TranscriptStatus = "missing"
	TranscriptStatusPending  TranscriptStatus = "pending"
	TranscriptStatusVerified TranscriptStatus = "verified"
)

// Student is the identity/profile record owned by the auth collaborator.
// The admission core reads it for dashboards and eligibility but never
// mutates it.
type Student struct {
	ID StudentID `json:"id"`

	// Profile fields counted towards the profile completeness percentage.
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	DateOfBirth     string `json:"dateOfBirth"`
	Address         string `json:"address"`
	SecondarySchool string `json:"secondarySchool"`

	// Qualifications is the academic record used for the advisory
	// qualification signal.
	Qualifications Qualifications `json:"qualifications"`

	TranscriptStatus TranscriptStatus `json:"transcriptStatus"`
}

// profileFieldCount is the fixed number of fields making up profile completeness.
const profileFieldCount = 5

// ProfileCompletePercent returns the percentage of the five profile fields
// that are present, as an integer 0..100.
func (s Student) ProfileCompletePercent() int {
	present := 0
	for _, f := range []string{s.FullName, s.Phone, s.DateOfBirth, s.Address, s.SecondarySchool} {
		if f != "" {
			present++
		}
	}

	return present * 100 / profileFieldCount
}
