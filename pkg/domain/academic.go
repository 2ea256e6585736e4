package domain

// Subject is a canonical LGCSE subject slug. The academic background of a
// submission and the subject requirements of a course both reference this set.
type Subject string

const (
	SubjectMathematics        Subject = "mathematics"
	SubjectEnglish            Subject = "english"
	SubjectScience            Subject = "science"
	SubjectSesotho            Subject = "sesotho"
	SubjectBiology            Subject = "biology"
	SubjectPhysics            Subject = "physics"
	SubjectChemistry          Subject = "chemistry"
	SubjectGeography          Subject = "geography"
	SubjectHistory            Subject = "history"
	SubjectAccounting         Subject = "accounting"
	SubjectBusinessStudies    Subject = "business_studies"
	SubjectAgriculture        Subject = "agriculture"
	SubjectComputerStudies    Subject = "computer_studies"
	SubjectReligiousStudies   Subject = "religious_studies"
	SubjectDevelopmentStudies Subject = "development_studies"
)

// KnownSubjects is the set of subjects a submission may declare grades for.
var KnownSubjects = map[Subject]struct{}{ //nolint: gochecknoglobals
	SubjectMathematics:        {},
	SubjectEnglish:            {},
	SubjectScience:            {},
	SubjectSesotho:            {},
	SubjectBiology:            {},
	SubjectPhysics:            {},
	SubjectChemistry:          {},
	SubjectGeography:          {},
	SubjectHistory:            {},
	SubjectAccounting:         {},
	SubjectBusinessStudies:    {},
	SubjectAgriculture:        {},
	SubjectComputerStudies:    {},
	SubjectReligiousStudies:   {},
	SubjectDevelopmentStudies: {},
}

// Grade is an LGCSE letter grade symbol.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
	GradeG Grade = "G"
	GradeU Grade = "U"
)

// KnownGrades is the set of grade symbols accepted in submissions.
var KnownGrades = map[Grade]struct{}{ //nolint: gochecknoglobals
	GradeA: {}, GradeB: {}, GradeC: {}, GradeD: {},
	GradeE: {}, GradeF: {}, GradeG: {}, GradeU: {},
}

// Passing reports whether the grade satisfies a subject requirement.
// Only A, B and C count as passing.
func (g Grade) Passing() bool {
	return g == GradeA || g == GradeB || g == GradeC
}

// Requirements describes the stated admission requirements of a course.
// Both fields are optional; a course with neither admits anyone.
type Requirements struct {
	// MinPoints, when set, is the minimum total points a student must have.
	MinPoints *int `json:"minPoints,omitempty"`
	// Subjects maps required subjects to the minimum letter grade stated by
	// the course. Only mathematics, english and science are actually checked;
	// see qualification evaluation for the rationale.
	Subjects map[Subject]Grade `json:"subjects,omitempty"`
}

// Empty reports whether the course declares no requirements at all.
func (r Requirements) Empty() bool {
	return r.MinPoints == nil && len(r.Subjects) == 0
}

// Qualifications is a student's academic record as used for the advisory
// eligibility signal.
type Qualifications struct {
	// TotalPoints is the aggregate LGCSE points; nil when unknown.
	TotalPoints *int `json:"totalPoints,omitempty"`
	// SubjectGrades maps subjects to the grade the student obtained.
	SubjectGrades map[Subject]Grade `json:"subjectGrades,omitempty"`
}
