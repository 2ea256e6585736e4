package storage

import (
	"context"

	"portal/pkg/domain"
)

// ApplicationUpdates describes a set of optional fields that can be applied to
// an existing application during an update. Only provided fields are changed;
// updated_at is always bumped.
type ApplicationUpdates struct {
	// Status is the new status to set for the application.
	Status domain.ApplicationStatus
	// ExpectStatus, when non-empty, makes the update conditional: the row is
	// only changed while its current status equals this value. A no-op update
	// (zero rows matched) is reported by a nil return, letting callers detect
	// lost races without a second round trip.
	ExpectStatus domain.ApplicationStatus
	// StampProcessedAt, when true, sets processed_at to the current time.
	// Used on transitions into admitted or rejected.
	StampProcessedAt bool
}

// ApplicationStorage defines the persisted application collection. All
// mutations either fully commit or fully fail; partial writes are never
// observable.
type ApplicationStorage interface {
	// StoreApplication inserts the application and returns the stored row as it
	// exists in the database (including generated fields). An insert that
	// collides with the active-slot uniqueness constraint fails with
	// ErrDuplicateSlot.
	StoreApplication(ctx context.Context, app domain.Application) (*domain.Application, error)
	// ApplicationByID fetches an application by id. Returns nil when not found.
	ApplicationByID(ctx context.Context, id domain.ApplicationID) (*domain.Application, error)
	// ApplicationsByStudent returns all applications of a student ordered by
	// applied_at descending (newest first).
	ApplicationsByStudent(ctx context.Context, studentID domain.StudentID) ([]domain.Application, error)
	// ApplicationsByInstitution returns all applications addressed to an
	// institution. No particular order is promised; consumers sort and filter.
	ApplicationsByInstitution(ctx context.Context, institutionID domain.InstitutionID) ([]domain.Application, error)
	// ActiveSlots returns the cap slots currently occupied by non-withdrawn
	// applications of the student at the institution.
	ActiveSlots(ctx context.Context, studentID domain.StudentID, institutionID domain.InstitutionID) ([]int16, error)
	// UpdateApplicationByID applies the given updates to a single application
	// and returns the updated row. When the ExpectStatus guard does not match
	// the current row, nothing is changed and nil is returned.
	UpdateApplicationByID(ctx context.Context,
		id domain.ApplicationID,
		updates ApplicationUpdates) (*domain.Application, error)
}
