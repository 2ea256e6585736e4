package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationID uniquely identifies an application record.
// It wraps uuid.UUID to provide type safety at the domain layer.
type ApplicationID uuid.UUID

// StudentID uniquely identifies a student within the system.
type StudentID uuid.UUID

// ApplicationStatus represents the review lifecycle state of an application.
type ApplicationStatus string

const (
	// ApplicationStatusPending is the initial state after submission.
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusUnderReview indicates an institution picked the record up.
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	// ApplicationStatusAdmitted is a terminal state; the student was accepted.
	ApplicationStatusAdmitted ApplicationStatus = "admitted"
	// ApplicationStatusRejected is a terminal state; the student was declined.
	ApplicationStatusRejected ApplicationStatus = "rejected"
	// ApplicationStatusWithdrawn is a terminal state reached only by the owning
	// student while the record was still pending. Withdrawn records stay on
	// file as tombstones but no longer occupy a cap slot.
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// Terminal reports whether no further transition is allowed from the status.
func (s ApplicationStatus) Terminal() bool {
	switch s {
	case ApplicationStatusAdmitted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	default:
		return false
	}
}

// Active reports whether the application occupies one of the student's cap
// slots at its institution. Everything except withdrawn counts.
func (s ApplicationStatus) Active() bool {
	return s != ApplicationStatusWithdrawn
}

// SubjectGrade is one subject/grade pair of the academic background section.
type SubjectGrade struct {
	Subject Subject `json:"subject"`
	Grade   Grade   `json:"grade"`
}

// GuardianInfo holds the guardian section of the submission form.
type GuardianInfo struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// Snapshot is the frozen submission form retained on the application for
// audit and review. It is written once at submission time and never mutated.
type Snapshot struct {
	FullName        string `json:"fullName"`
	DateOfBirth     string `json:"dateOfBirth"`
	Gender          string `json:"gender"`
	NationalID      string `json:"nationalId"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	SecondarySchool string `json:"secondarySchool"`
	SittingNumber   string `json:"sittingNumber"`

	// AcademicBackground lists the declared LGCSE subject/grade pairs.
	AcademicBackground []SubjectGrade `json:"academicBackground"`

	Guardian GuardianInfo `json:"guardian"`

	// Documents is the document checklist ticked by the student
	// (e.g. "transcript", "national_id_copy").
	Documents []string `json:"documents,omitempty"`

	// DeclarationAccepted records that the student accepted the declaration.
	DeclarationAccepted bool `json:"declarationAccepted"`
}

// MaxActivePerInstitution caps the number of non-withdrawn applications a
// student may hold at a single institution. This is the one hard invariant
// of the admission workflow.
const MaxActivePerInstitution = 2

// Application is a student's request to be admitted to a specific course at a
// specific institution, together with its review state.
type Application struct {
	// ID is the unique identifier of the application.
	ID ApplicationID `json:"id"`
	// StudentID is the owning student.
	StudentID StudentID `json:"studentId"`
	// CourseID is the course applied to.
	CourseID CourseID `json:"courseId"`
	// InstitutionID is denormalized from the course so the per-institution cap
	// can be enforced without a catalog lookup.
	InstitutionID InstitutionID `json:"institutionId"`

	// Slot is the cap slot (0 or 1) this record occupies at the institution
	// while active. A partial unique index on (student, institution, slot)
	// makes concurrent over-submission impossible.
	Slot int16 `json:"-"`

	// Status is the current review lifecycle state.
	Status ApplicationStatus `json:"status"`
	// Snapshot is the frozen submission form data.
	Snapshot Snapshot `json:"snapshot"`

	// AppliedAt is when the application was submitted.
	AppliedAt time.Time `json:"appliedAt"`
	// ProcessedAt is stamped when the record reaches admitted or rejected.
	ProcessedAt time.Time `json:"processedAt,omitzero"`
	// UpdatedAt is bumped on every mutation.
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}
