package admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"portal/internal/config"
	"portal/pkg/domain"
	"portal/pkg/serrors"
	"portal/pkg/storage"
)

// Options configure the admission workflow.
type Options struct {
	// MaxActivePerInstitution caps non-withdrawn applications per student and
	// institution. Zero falls back to the domain default of 2.
	MaxActivePerInstitution int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxActivePerInstitution: cfg.Admission.MaxActivePerInstitution,
	}
}

// service is the concrete implementation of the Service interface.
// It coordinates validation, cap enforcement and state transitions with the
// storage layer.
type service struct {
	options Options
	storage storage.Storage
}

// New creates a new admission Service backed by the provided storage and
// configured with the given options.
func New(strg storage.Storage, options Options) Service {
	if options.MaxActivePerInstitution <= 0 {
		options.MaxActivePerInstitution = domain.MaxActivePerInstitution
	}

	return &service{
		options: options,
		storage: strg,
	}
}

// semantic reports whether err already carries an admission error kind, as
// opposed to an infrastructure failure that must be masked as a persistence
// error.
func semantic(err error) bool {
	var serr *serrors.Error

	return errors.As(err, &serr)
}

// persistence wraps an infrastructure failure so callers see a generic
// try-again error while the cause stays in the chain for logging.
func persistence(err error, msgFmt string, args ...any) error {
	if semantic(err) {
		return err
	}

	return serrors.Wrap(serrors.ErrPersistence, err, msgFmt, args...)
}

// Submit validates the draft, resolves the course, and creates a pending
// application inside a transaction. The cap check and the insert share the
// transaction, and the partial unique index on (student, institution, slot)
// backs it up, so racing submissions cannot exceed the cap.
func (s service) Submit(ctx context.Context,
	studentID domain.StudentID,
	draft Draft) (*domain.Application, error) {
	if problems := ValidateDraft(draft); len(problems) > 0 {
		return nil, serrors.Invalid(problems...)
	}

	course, err := s.storage.CourseByID(ctx, domain.CourseID(draft.CourseID))
	if err != nil {
		return nil, persistence(err, "could not resolve course")
	}
	if course == nil {
		return nil, serrors.With(serrors.ErrNotFound, "course not found")
	}

	var app *domain.Application
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		slots, err := tx.ActiveSlots(ctx, studentID, course.InstitutionID)
		if err != nil {
			return fmt.Errorf("could not count active applications: %w", err)
		}
		if len(slots) >= s.options.MaxActivePerInstitution {
			return s.capacityError(ctx, tx, course.InstitutionID)
		}

		stored, err := tx.StoreApplication(ctx, domain.Application{
			StudentID:     studentID,
			CourseID:      course.ID,
			InstitutionID: course.InstitutionID,
			Slot:          freeSlot(slots, s.options.MaxActivePerInstitution),
			Status:        domain.ApplicationStatusPending,
			Snapshot:      draft.snapshot(),
		})
		if err != nil {
			// A concurrent submission claimed the slot between our read and
			// the insert; the unique index reported the lost race.
			if errors.Is(err, storage.ErrDuplicateSlot) {
				return s.capacityError(ctx, tx, course.InstitutionID)
			}

			return fmt.Errorf("could not store application: %w", err)
		}
		app = stored

		return nil
	}); err != nil {
		return nil, persistence(err, "could not submit application")
	}

	return app, nil
}

// capacityError builds the CapacityExceeded error, naming the institution
// when the catalog can resolve it.
func (s service) capacityError(ctx context.Context,
	strg storage.AllStorage,
	institutionID domain.InstitutionID) error {
	name := uuid.UUID(institutionID).String()
	if inst, err := strg.InstitutionByID(ctx, institutionID); err == nil && inst != nil {
		name = inst.Name
	}

	return serrors.With(serrors.ErrCapacityExceeded,
		"application limit of %d reached at %s", s.options.MaxActivePerInstitution, name)
}

// freeSlot returns the lowest slot in [0, maxSlots) not present in slots.
func freeSlot(slots []int16, maxSlots int) int16 {
	taken := make(map[int16]struct{}, len(slots))
	for _, slot := range slots {
		taken[slot] = struct{}{}
	}

	for slot := int16(0); int(slot) < maxSlots; slot++ {
		if _, ok := taken[slot]; !ok {
			return slot
		}
	}

	// unreachable: the caller checks len(slots) < max first
	return int16(len(slots))
}

// Withdraw moves a pending application to withdrawn. The status change is a
// conditional update, so two racing withdrawals cannot both succeed.
func (s service) Withdraw(ctx context.Context,
	id domain.ApplicationID,
	studentID domain.StudentID) error {
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		app, err := tx.ApplicationByID(ctx, id)
		if err != nil {
			return fmt.Errorf("could not fetch application: %w", err)
		}
		if app == nil {
			return serrors.With(serrors.ErrNotFound, "application not found")
		}
		if app.StudentID != studentID {
			return serrors.With(serrors.ErrForbidden, "application belongs to another student")
		}
		if app.Status != domain.ApplicationStatusPending {
			return serrors.With(serrors.ErrInvalidTransition,
				"cannot withdraw application in status %q", app.Status)
		}

		updated, err := tx.UpdateApplicationByID(ctx, id, storage.ApplicationUpdates{
			Status:       domain.ApplicationStatusWithdrawn,
			ExpectStatus: domain.ApplicationStatusPending,
		})
		if err != nil {
			return fmt.Errorf("could not update application: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrInvalidTransition,
				"application is no longer pending")
		}

		return nil
	}); err != nil {
		return persistence(err, "could not withdraw application")
	}

	return nil
}

// Transition moves an application through the review state machine on behalf
// of an institution or admin actor and returns the updated record.
func (s service) Transition(ctx context.Context,
	id domain.ApplicationID,
	actor domain.Role,
	target domain.ApplicationStatus) (*domain.Application, error) {
	if !actor.CanReview() {
		return nil, serrors.With(serrors.ErrForbidden, "role %q may not review applications", actor)
	}

	var app *domain.Application
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		current, err := tx.ApplicationByID(ctx, id)
		if err != nil {
			return fmt.Errorf("could not fetch application: %w", err)
		}
		if current == nil {
			return serrors.With(serrors.ErrNotFound, "application not found")
		}
		if !CanTransition(current.Status, actor, target) {
			return serrors.With(serrors.ErrInvalidTransition,
				"cannot move application from %q to %q", current.Status, target)
		}

		updated, err := tx.UpdateApplicationByID(ctx, id, storage.ApplicationUpdates{
			Status:       target,
			ExpectStatus: current.Status,
			StampProcessedAt: target == domain.ApplicationStatusAdmitted ||
				target == domain.ApplicationStatusRejected,
		})
		if err != nil {
			return fmt.Errorf("could not update application: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrInvalidTransition,
				"application changed state concurrently")
		}
		app = updated

		return nil
	}); err != nil {
		return nil, persistence(err, "could not transition application")
	}

	return app, nil
}

// ListByStudent returns the student's applications, newest applied first.
func (s service) ListByStudent(ctx context.Context,
	studentID domain.StudentID) ([]domain.Application, error) {
	apps, err := s.storage.ApplicationsByStudent(ctx, studentID)
	if err != nil {
		return nil, persistence(err, "could not list student applications")
	}

	return apps, nil
}

// ListByInstitution returns the applications addressed to an institution.
func (s service) ListByInstitution(ctx context.Context,
	institutionID domain.InstitutionID) ([]domain.Application, error) {
	apps, err := s.storage.ApplicationsByInstitution(ctx, institutionID)
	if err != nil {
		return nil, persistence(err, "could not list institution applications")
	}

	return apps, nil
}

// snapshot freezes the draft into the audit snapshot stored on the
// application.
func (d Draft) snapshot() domain.Snapshot {
	return domain.Snapshot{
		FullName:           d.FullName,
		DateOfBirth:        d.DateOfBirth,
		Gender:             d.Gender,
		NationalID:         d.NationalID,
		Phone:              d.Phone,
		Address:            d.Address,
		SecondarySchool:    d.SecondarySchool,
		SittingNumber:      d.SittingNumber,
		AcademicBackground: d.AcademicBackground,
		Guardian: domain.GuardianInfo{
			Name:         d.GuardianName,
			Phone:        d.GuardianPhone,
			Relationship: d.Relationship,
		},
		Documents:           d.Documents,
		DeclarationAccepted: d.DeclarationAccepted,
	}
}
