package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"portal/pkg/domain"
	"portal/pkg/storage"
)

// StoreApplication inserts the application, enforcing the same active-slot
// uniqueness the postgres partial index provides.
func (m *InMem) StoreApplication(_ context.Context, app domain.Application) (*domain.Application, error) {
	m.lock()
	defer m.unlock()

	for _, existing := range m.applications {
		if existing.StudentID == app.StudentID &&
			existing.InstitutionID == app.InstitutionID &&
			existing.Status.Active() &&
			existing.Slot == app.Slot {
			return nil, storage.ErrDuplicateSlot
		}
	}

	if uuid.UUID(app.ID) == uuid.Nil {
		app.ID = domain.ApplicationID(uuid.New())
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = m.now()
	}

	m.applications[app.ID] = app

	return &app, nil
}

// ApplicationByID fetches an application by id. Returns nil when not found.
func (m *InMem) ApplicationByID(_ context.Context, id domain.ApplicationID) (*domain.Application, error) {
	m.lock()
	defer m.unlock()

	app, ok := m.applications[id]
	if !ok {
		return nil, nil
	}

	return &app, nil
}

// ApplicationsByStudent returns the student's applications newest first.
func (m *InMem) ApplicationsByStudent(_ context.Context,
	studentID domain.StudentID) ([]domain.Application, error) {
	m.lock()
	defer m.unlock()

	var out []domain.Application
	for _, app := range m.applications {
		if app.StudentID == studentID {
			out = append(out, app)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppliedAt.Equal(out[j].AppliedAt) {
			return out[i].AppliedAt.After(out[j].AppliedAt)
		}

		return uuid.UUID(out[i].ID).String() > uuid.UUID(out[j].ID).String()
	})

	return out, nil
}

// ApplicationsByInstitution returns all applications addressed to an institution.
func (m *InMem) ApplicationsByInstitution(_ context.Context,
	institutionID domain.InstitutionID) ([]domain.Application, error) {
	m.lock()
	defer m.unlock()

	var out []domain.Application
	for _, app := range m.applications {
		if app.InstitutionID == institutionID {
			out = append(out, app)
		}
	}

	return out, nil
}

// ActiveSlots returns the slots of the student's non-withdrawn applications
// at the institution.
func (m *InMem) ActiveSlots(_ context.Context,
	studentID domain.StudentID,
	institutionID domain.InstitutionID) ([]int16, error) {
	m.lock()
	defer m.unlock()

	var slots []int16
	for _, app := range m.applications {
		if app.StudentID == studentID &&
			app.InstitutionID == institutionID &&
			app.Status.Active() {
			slots = append(slots, app.Slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	return slots, nil
}

// UpdateApplicationByID applies the updates to a single application. A
// non-matching ExpectStatus guard changes nothing and returns nil.
func (m *InMem) UpdateApplicationByID(_ context.Context,
	id domain.ApplicationID,
	updates storage.ApplicationUpdates) (*domain.Application, error) {
	m.lock()
	defer m.unlock()

	app, ok := m.applications[id]
	if !ok {
		return nil, nil
	}
	if updates.ExpectStatus != "" && app.Status != updates.ExpectStatus {
		return nil, nil
	}

	app.Status = updates.Status
	app.UpdatedAt = m.now()
	if updates.StampProcessedAt {
		app.ProcessedAt = app.UpdatedAt
	}

	m.applications[id] = app

	return &app, nil
}
