package admission_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"portal/internal/admission"
	"portal/pkg/domain"
	"portal/pkg/serrors"
)

func validDraft() admission.Draft {
	return admission.Draft{
		FullName:        "Thabo Mokoena",
		DateOfBirth:     "2006-03-14",
		Gender:          "male",
		NationalID:      "91803412",
		Phone:           "+26658123456",
		Address:         "Maseru West, Maseru",
		SecondarySchool: "Maseru High School",
		SittingNumber:   "LS-2024-0173",
		AcademicBackground: []domain.SubjectGrade{
			{Subject: domain.SubjectMathematics, Grade: domain.GradeB},
			{Subject: domain.SubjectEnglish, Grade: domain.GradeA},
			{Subject: domain.SubjectScience, Grade: domain.GradeC},
			{Subject: domain.SubjectSesotho, Grade: domain.GradeB},
			{Subject: domain.SubjectGeography, Grade: domain.GradeC},
		},
		GuardianName:        "Mamello Mokoena",
		GuardianPhone:       "+26658987654",
		Relationship:        "mother",
		Documents:           []string{"transcript"},
		DeclarationAccepted: true,
		CourseID:            uuid.New(),
	}
}

func fields(problems []serrors.FieldProblem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.Field)
	}

	return out
}

func TestValidateDraftValid(t *testing.T) {
	require.Empty(t, admission.ValidateDraft(validDraft()))
}

func TestValidateDraftMissingAndBlankFields(t *testing.T) {
	draft := validDraft()
	draft.FullName = ""
	draft.Phone = "   "

	problems := admission.ValidateDraft(draft)
	require.Contains(t, fields(problems), "fullName")
	require.Contains(t, fields(problems), "phone")
}

func TestValidateDraftCollectsEveryProblem(t *testing.T) {
	draft := validDraft()
	draft.FullName = ""
	draft.GuardianPhone = ""
	draft.DeclarationAccepted = false

	problems := admission.ValidateDraft(draft)
	require.GreaterOrEqual(t, len(problems), 3)
	require.Contains(t, fields(problems), "fullName")
	require.Contains(t, fields(problems), "guardianPhone")
	require.Contains(t, fields(problems), "declarationAccepted")
}

func TestValidateDraftAcademicBackground(t *testing.T) {
	t.Run("too few subjects", func(t *testing.T) {
		draft := validDraft()
		draft.AcademicBackground = draft.AcademicBackground[:4]

		problems := admission.ValidateDraft(draft)
		require.Contains(t, fields(problems), "academicBackground")
	})

	t.Run("unknown subject", func(t *testing.T) {
		draft := validDraft()
		draft.AcademicBackground[2].Subject = "astrology"

		problems := admission.ValidateDraft(draft)
		require.Len(t, problems, 1)
		require.Contains(t, problems[0].Problem, "unknown subject")
	})

	t.Run("unknown grade symbol", func(t *testing.T) {
		draft := validDraft()
		draft.AcademicBackground[0].Grade = "Z"

		problems := admission.ValidateDraft(draft)
		require.Len(t, problems, 1)
		require.Contains(t, problems[0].Problem, "unknown grade symbol")
	})

	t.Run("duplicate subject", func(t *testing.T) {
		draft := validDraft()
		draft.AcademicBackground[4] = draft.AcademicBackground[0]

		problems := admission.ValidateDraft(draft)
		require.Len(t, problems, 1)
		require.Contains(t, problems[0].Problem, "duplicate subject")
	})
}

func TestValidateDraftMissingCourse(t *testing.T) {
	draft := validDraft()
	draft.CourseID = uuid.Nil

	problems := admission.ValidateDraft(draft)
	require.Contains(t, fields(problems), "courseId")
}
