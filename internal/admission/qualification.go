package admission

import "portal/pkg/domain"

// checkedSubjects is the fixed set of subject requirements the evaluator
// actually verifies. Courses may declare requirements on other subjects;
// those pass unchecked, matching the portal's established behavior, and
// must not be extended without a product decision.
var checkedSubjects = []domain.Subject{ //nolint: gochecknoglobals
	domain.SubjectMathematics,
	domain.SubjectEnglish,
	domain.SubjectScience,
}

// IsQualified reports whether the qualifications satisfy the course
// requirements. It is a pure function: no side effects, deterministic, safe
// to call concurrently. The signal is advisory only and never gates
// submission.
func IsQualified(reqs domain.Requirements, quals domain.Qualifications) bool {
	if reqs.Empty() {
		return true
	}

	if reqs.MinPoints != nil {
		if quals.TotalPoints == nil || *quals.TotalPoints < *reqs.MinPoints {
			return false
		}
	}

	for _, subject := range checkedSubjects {
		if _, required := reqs.Subjects[subject]; !required {
			continue
		}

		grade, ok := quals.SubjectGrades[subject]
		if !ok || !grade.Passing() {
			return false
		}
	}

	return true
}
