// Package admission implements the application and admission workflow: draft
// validation, cap-safe submission, the review state machine and withdrawal.
package admission

import (
	"context"

	"portal/pkg/domain"
)

// Service is the admission workflow exposed to the API layer.
type Service interface {
	// Submit validates the draft, enforces the per-institution cap and
	// persists a new pending application.
	Submit(ctx context.Context, studentID domain.StudentID, draft Draft) (*domain.Application, error)
	// Withdraw moves the student's own pending application to withdrawn,
	// freeing its cap slot. Only the owner may withdraw, and only while
	// the record is pending.
	Withdraw(ctx context.Context, id domain.ApplicationID, studentID domain.StudentID) error
	// Transition moves an application through the review state machine on
	// behalf of an institution or admin actor.
	Transition(ctx context.Context,
		id domain.ApplicationID,
		actor domain.Role,
		target domain.ApplicationStatus) (*domain.Application, error)
	// ListByStudent returns the student's applications, newest first.
	ListByStudent(ctx context.Context, studentID domain.StudentID) ([]domain.Application, error)
	// ListByInstitution returns the applications addressed to an institution.
	ListByInstitution(ctx context.Context, institutionID domain.InstitutionID) ([]domain.Application, error)
}
