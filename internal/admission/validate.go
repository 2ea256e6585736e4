package admission

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"

	"portal/pkg/domain"
	"portal/pkg/serrors"
)

// Draft is the raw submission form as received from the UI. It is validated
// here before the repository is ever touched; the cap check is deliberately
// not part of validation.
type Draft struct {
	FullName        string `json:"fullName"        validate:"required,notblank"`
	DateOfBirth     string `json:"dateOfBirth"     validate:"required,notblank"`
	Gender          string `json:"gender"          validate:"required,notblank"`
	NationalID      string `json:"nationalId"      validate:"required,notblank"`
	Phone           string `json:"phone"           validate:"required,notblank"`
	Address         string `json:"address"         validate:"required,notblank"`
	SecondarySchool string `json:"secondarySchool" validate:"required,notblank"`
	SittingNumber   string `json:"sittingNumber"   validate:"required,notblank"`

	// AcademicBackground must carry at least minSubjects distinct known
	// subject/grade pairs.
	AcademicBackground []domain.SubjectGrade `json:"academicBackground" validate:"min=5"`

	GuardianName  string `json:"guardianName"  validate:"required,notblank"`
	GuardianPhone string `json:"guardianPhone" validate:"required,notblank"`
	Relationship  string `json:"relationship"  validate:"required,notblank"`

	Documents []string `json:"documents"`

	DeclarationAccepted bool `json:"declarationAccepted" validate:"eq=true"`

	CourseID uuid.UUID `json:"courseId" validate:"required"`
}

// minSubjects is the minimum number of distinct subject/grade pairs a
// submission must declare.
const minSubjects = 5

const notBlankTag = "notblank"

var (
	validate   *validator.Validate //nolint: gochecknoglobals
	translator ut.Translator       //nolint: gochecknoglobals
)

//nolint: gochecknoinits
func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, _ validator.FieldError) string {
			return "this field cannot be blank"
		})
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}

	return false
}

// ValidateDraft runs the structural and business-rule checks on a submission
// draft and returns every field problem found. It never touches persisted
// state.
func ValidateDraft(draft Draft) []serrors.FieldProblem {
	var problems []serrors.FieldProblem

	if err := validate.Struct(draft); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok { //nolint: errorlint
			for _, fe := range verrs {
				problems = append(problems, serrors.FieldProblem{
					Field:   fe.Field(),
					Problem: fe.Translate(translator),
				})
			}
		}
	}

	problems = append(problems, validateAcademicBackground(draft.AcademicBackground)...)

	return problems
}

// validateAcademicBackground checks each subject/grade pair against the known
// sets and rejects duplicate subjects within one submission.
func validateAcademicBackground(pairs []domain.SubjectGrade) []serrors.FieldProblem {
	var problems []serrors.FieldProblem

	seen := make(map[domain.Subject]struct{}, len(pairs))
	for _, pair := range pairs {
		if _, known := domain.KnownSubjects[pair.Subject]; !known {
			problems = append(problems, serrors.FieldProblem{
				Field:   "academicBackground",
				Problem: "unknown subject: " + string(pair.Subject),
			})

			continue
		}
		if _, known := domain.KnownGrades[pair.Grade]; !known {
			problems = append(problems, serrors.FieldProblem{
				Field:   "academicBackground",
				Problem: "unknown grade symbol for " + string(pair.Subject) + ": " + string(pair.Grade),
			})
		}
		if _, dup := seen[pair.Subject]; dup {
			problems = append(problems, serrors.FieldProblem{
				Field:   "academicBackground",
				Problem: "duplicate subject: " + string(pair.Subject),
			})
		}
		seen[pair.Subject] = struct{}{}
	}

	return problems
}
