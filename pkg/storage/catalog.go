package storage

import (
	"context"

	"portal/pkg/domain"
)

// CatalogStorage exposes read-only lookups into the institution, course, job
// and identity catalogs. The admission core never writes through this
// interface; catalog CRUD is owned by external collaborators.
type CatalogStorage interface {
	// CourseByID fetches a course by id. Returns nil when not found.
	CourseByID(ctx context.Context, id domain.CourseID) (*domain.Course, error)
	// Courses returns every course in the catalog.
	Courses(ctx context.Context) ([]domain.Course, error)
	// CoursesByInstitution returns the courses owned by an institution.
	CoursesByInstitution(ctx context.Context, institutionID domain.InstitutionID) ([]domain.Course, error)
	// CountCourses returns the total number of courses.
	CountCourses(ctx context.Context) (int64, error)
	// CountCoursesByInstitution returns the number of courses an institution owns.
	CountCoursesByInstitution(ctx context.Context, institutionID domain.InstitutionID) (int64, error)

	// InstitutionByID fetches an institution by id. Returns nil when not found.
	InstitutionByID(ctx context.Context, id domain.InstitutionID) (*domain.Institution, error)
	// CountActiveInstitutions returns the number of active institutions.
	CountActiveInstitutions(ctx context.Context) (int64, error)

	// StudentByID fetches a student profile by id. Returns nil when not found.
	StudentByID(ctx context.Context, id domain.StudentID) (*domain.Student, error)
	// CountUsers returns the total number of portal accounts across roles.
	CountUsers(ctx context.Context) (int64, error)

	// Jobs returns every job posting.
	Jobs(ctx context.Context) ([]domain.Job, error)
	// JobsByCompany returns the postings owned by a company account.
	JobsByCompany(ctx context.Context, companyID domain.UserID) ([]domain.Job, error)
}
