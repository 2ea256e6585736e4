package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"portal/pkg/domain"
)

const (
	coursesTable      = "courses"
	institutionsTable = "institutions"
	studentsTable     = "students"
	usersTable        = "users"
	jobsTable         = "jobs"
)

// CourseByID fetches a course by id. Returns nil when not found.
func (p *PgSQL) CourseByID(ctx context.Context, id domain.CourseID) (*domain.Course, error) {
	var row PgCourse
	found, err := p.Builder.From(coursesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch course by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// Courses returns every course in the catalog.
func (p *PgSQL) Courses(ctx context.Context) ([]domain.Course, error) {
	var rows []PgCourse
	if err := p.Builder.From(coursesTable).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch courses from pg: %w", err)
	}

	return pgCoursesToDomain(rows)
}

// CoursesByInstitution returns the courses owned by an institution.
func (p *PgSQL) CoursesByInstitution(ctx context.Context,
	institutionID domain.InstitutionID) ([]domain.Course, error) {
	var rows []PgCourse
	if err := p.Builder.From(coursesTable).
		Where(goqu.I("institution_id").Eq(uuid.UUID(institutionID))).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch institution courses from pg: %w", err)
	}

	return pgCoursesToDomain(rows)
}

// CountCourses returns the total number of courses.
func (p *PgSQL) CountCourses(ctx context.Context) (int64, error) {
	count, err := p.Builder.From(coursesTable).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count courses in pg: %w", err)
	}

	return count, nil
}

// CountCoursesByInstitution returns the number of courses an institution owns.
func (p *PgSQL) CountCoursesByInstitution(ctx context.Context,
	institutionID domain.InstitutionID) (int64, error) {
	count, err := p.Builder.From(coursesTable).
		Where(goqu.I("institution_id").Eq(uuid.UUID(institutionID))).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count institution courses in pg: %w", err)
	}

	return count, nil
}

// InstitutionByID fetches an institution by id. Returns nil when not found.
func (p *PgSQL) InstitutionByID(ctx context.Context,
	id domain.InstitutionID) (*domain.Institution, error) {
	var row PgInstitution
	found, err := p.Builder.From(institutionsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch institution by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// CountActiveInstitutions returns the number of active institutions.
func (p *PgSQL) CountActiveInstitutions(ctx context.Context) (int64, error) {
	count, err := p.Builder.From(institutionsTable).
		Where(goqu.I("active").IsTrue()).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count active institutions in pg: %w", err)
	}

	return count, nil
}

// StudentByID fetches a student profile by id. Returns nil when not found.
func (p *PgSQL) StudentByID(ctx context.Context, id domain.StudentID) (*domain.Student, error) {
	var row PgStudent
	found, err := p.Builder.From(studentsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch student by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// CountUsers returns the total number of portal accounts.
func (p *PgSQL) CountUsers(ctx context.Context) (int64, error) {
	count, err := p.Builder.From(usersTable).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count users in pg: %w", err)
	}

	return count, nil
}

// Jobs returns every job posting.
func (p *PgSQL) Jobs(ctx context.Context) ([]domain.Job, error) {
	var rows []PgJob
	if err := p.Builder.From(jobsTable).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch jobs from pg: %w", err)
	}

	return pgJobsToDomain(rows), nil
}

// JobsByCompany returns the postings owned by a company account.
func (p *PgSQL) JobsByCompany(ctx context.Context, companyID domain.UserID) ([]domain.Job, error) {
	var rows []PgJob
	if err := p.Builder.From(jobsTable).
		Where(goqu.I("company_id").Eq(uuid.UUID(companyID))).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch company jobs from pg: %w", err)
	}

	return pgJobsToDomain(rows), nil
}
