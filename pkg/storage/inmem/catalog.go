package inmem

import (
	"context"

	"portal/pkg/domain"
)

// CourseByID fetches a course by id. Returns nil when not found.
func (m *InMem) CourseByID(_ context.Context, id domain.CourseID) (*domain.Course, error) {
	m.lock()
	defer m.unlock()

	c, ok := m.courses[id]
	if !ok {
		return nil, nil
	}

	return &c, nil
}

// Courses returns every course in the catalog.
func (m *InMem) Courses(_ context.Context) ([]domain.Course, error) {
	m.lock()
	defer m.unlock()

	out := make([]domain.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}

	return out, nil
}

// CoursesByInstitution returns the courses owned by an institution.
func (m *InMem) CoursesByInstitution(_ context.Context,
	institutionID domain.InstitutionID) ([]domain.Course, error) {
	m.lock()
	defer m.unlock()

	var out []domain.Course
	for _, c := range m.courses {
		if c.InstitutionID == institutionID {
			out = append(out, c)
		}
	}

	return out, nil
}

// CountCourses returns the total number of courses.
func (m *InMem) CountCourses(_ context.Context) (int64, error) {
	m.lock()
	defer m.unlock()

	return int64(len(m.courses)), nil
}

// CountCoursesByInstitution returns the number of courses an institution owns.
func (m *InMem) CountCoursesByInstitution(_ context.Context,
	institutionID domain.InstitutionID) (int64, error) {
	m.lock()
	defer m.unlock()

	var count int64
	for _, c := range m.courses {
		if c.InstitutionID == institutionID {
			count++
		}
	}

	return count, nil
}

// InstitutionByID fetches an institution by id. Returns nil when not found.
func (m *InMem) InstitutionByID(_ context.Context,
	id domain.InstitutionID) (*domain.Institution, error) {
	m.lock()
	defer m.unlock()

	inst, ok := m.institutions[id]
	if !ok {
		return nil, nil
	}

	return &inst, nil
}

// CountActiveInstitutions returns the number of active institutions.
func (m *InMem) CountActiveInstitutions(_ context.Context) (int64, error) {
	m.lock()
	defer m.unlock()

	var count int64
	for _, inst := range m.institutions {
		if inst.Active {
			count++
		}
	}

	return count, nil
}

// StudentByID fetches a student profile by id. Returns nil when not found.
func (m *InMem) StudentByID(_ context.Context, id domain.StudentID) (*domain.Student, error) {
	m.lock()
	defer m.unlock()

	s, ok := m.students[id]
	if !ok {
		return nil, nil
	}

	return &s, nil
}

// CountUsers returns the configured total account count.
func (m *InMem) CountUsers(_ context.Context) (int64, error) {
	m.lock()
	defer m.unlock()

	return m.userCount, nil
}

// Jobs returns every job posting.
func (m *InMem) Jobs(_ context.Context) ([]domain.Job, error) {
	m.lock()
	defer m.unlock()

	out := make([]domain.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}

	return out, nil
}

// JobsByCompany returns the postings owned by a company account.
func (m *InMem) JobsByCompany(_ context.Context, companyID domain.UserID) ([]domain.Job, error) {
	m.lock()
	defer m.unlock()

	var out []domain.Job
	for _, j := range m.jobs {
		if j.CompanyID == companyID {
			out = append(out, j)
		}
	}

	return out, nil
}
