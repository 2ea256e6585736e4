// Package dashboard derives per-role summary statistics from the application
// collection and the sibling catalogs. It is strictly read-side: it never
// mutates state, and it degrades to zero values when a collaborator fails so
// dashboards render instead of crashing.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portal/internal/admission"
	"portal/pkg/domain"
	"portal/pkg/logger"
	"portal/pkg/serrors"
	"portal/pkg/storage"
)

// Stats is the role-specific summary returned to the UI. Keys are fixed per
// role; see the collector for each role.
type Stats map[string]any

// HealthFunc reports the operational health string shown on the admin
// dashboard. It is an operational concern injected from the outside, not
// derived from application data.
type HealthFunc func(ctx context.Context) string

// newApplicationWindow is how far back an application still counts as "new"
// on the institution dashboard.
const newApplicationWindow = 7 * 24 * time.Hour

// Aggregator computes dashboard stats. Reads go directly against storage;
// results are recomputed on every call, so two calls over the same snapshot
// of the collections return identical stats.
type Aggregator struct {
	storage storage.Storage
	health  HealthFunc
	now     func() time.Time
}

// New creates an Aggregator. A nil health func defaults to "operational".
func New(strg storage.Storage, health HealthFunc) *Aggregator {
	if health == nil {
		health = func(context.Context) string { return "operational" }
	}

	return &Aggregator{
		storage: strg,
		health:  health,
		now:     time.Now,
	}
}

// SetNow replaces the clock; used by tests to pin the new-application window.
func (a *Aggregator) SetNow(now func() time.Time) { a.now = now }

// ComputeStats returns the stats for the given role and actor. An unknown
// role is the only error; individual collection failures degrade to zeros.
func (a *Aggregator) ComputeStats(ctx context.Context, role domain.Role, actorID uuid.UUID) (Stats, error) {
	switch role {
	case domain.RoleStudent:
		return a.studentStats(ctx, domain.StudentID(actorID)), nil
	case domain.RoleInstitute:
		return a.instituteStats(ctx, domain.InstitutionID(actorID)), nil
	case domain.RoleCompany:
		return a.companyStats(ctx, domain.UserID(actorID)), nil
	case domain.RoleAdmin:
		return a.adminStats(ctx), nil
	default:
		return nil, serrors.With(serrors.ErrValidation, "unknown dashboard role %q", role)
	}
}

// degrade logs a failed collection read and reports that the zero value
// should be used instead.
func degrade(ctx context.Context, what string, err error) {
	logger.Warn(ctx, "dashboard read degraded to zero value",
		zap.String("collection", what),
		zap.Error(err),
	)
}

func (a *Aggregator) studentStats(ctx context.Context, studentID domain.StudentID) Stats {
	stats := Stats{
		"applications":     0,
		"pending":          0,
		"accepted":         0,
		"profileComplete":  0,
		"qualifiedCourses": 0,
		"activeJobs":       0,
		"transcriptStatus": string(domain.TranscriptStatusMissing),
	}

	apps, err := a.storage.ApplicationsByStudent(ctx, studentID)
	if err != nil {
		degrade(ctx, "applications", err)
	} else {
		total, pending, accepted := 0, 0, 0
		for _, app := range apps {
			total++
			switch app.Status {
			case domain.ApplicationStatusPending:
				pending++
			case domain.ApplicationStatusAdmitted:
				accepted++
			}
		}
		stats["applications"] = total
		stats["pending"] = pending
		stats["accepted"] = accepted
	}

	student, err := a.storage.StudentByID(ctx, studentID)
	if err != nil || student == nil {
		degrade(ctx, "students", err)
	} else {
		stats["profileComplete"] = student.ProfileCompletePercent()
		if student.TranscriptStatus != "" {
			stats["transcriptStatus"] = string(student.TranscriptStatus)
		}

		courses, err := a.storage.Courses(ctx)
		if err != nil {
			degrade(ctx, "courses", err)
		} else {
			qualified := 0
			for _, course := range courses {
				if admission.IsQualified(course.Requirements, student.Qualifications) {
					qualified++
				}
			}
			stats["qualifiedCourses"] = qualified
		}
	}

	stats["activeJobs"] = a.countActiveJobs(ctx)

	return stats
}

func (a *Aggregator) instituteStats(ctx context.Context, institutionID domain.InstitutionID) Stats {
	stats := Stats{
		"totalCourses":    int64(0),
		"newApplications": 0,
		"pendingReviews":  0,
		"enrollmentRate":  0,
		"activeStudents":  0,
	}

	if count, err := a.storage.CountCoursesByInstitution(ctx, institutionID); err != nil {
		degrade(ctx, "courses", err)
	} else {
		stats["totalCourses"] = count
	}

	apps, err := a.storage.ApplicationsByInstitution(ctx, institutionID)
	if err != nil {
		degrade(ctx, "applications", err)

		return stats
	}

	cutoff := a.now().Add(-newApplicationWindow)
	total, admitted, pending, fresh := 0, 0, 0, 0
	students := map[domain.StudentID]struct{}{}
	for _, app := range apps {
		total++
		students[app.StudentID] = struct{}{}
		if app.AppliedAt.After(cutoff) {
			fresh++
		}
		switch app.Status {
		case domain.ApplicationStatusPending:
			pending++
		case domain.ApplicationStatusAdmitted:
			admitted++
		}
	}

	stats["newApplications"] = fresh
	stats["pendingReviews"] = pending
	stats["enrollmentRate"] = roundedPercent(admitted, total)
	stats["activeStudents"] = len(students)

	return stats
}

func (a *Aggregator) companyStats(ctx context.Context, companyID domain.UserID) Stats {
	stats := Stats{
		"activeJobs":    0,
		"totalJobs":     0,
		"newApplicants": 0,
		"hireRate":      0,
	}

	jobs, err := a.storage.JobsByCompany(ctx, companyID)
	if err != nil {
		degrade(ctx, "jobs", err)

		return stats
	}

	active, applicants, hires := 0, 0, 0
	for _, job := range jobs {
		if job.Active {
			active++
		}
		applicants += job.Applicants
		hires += job.Hires
	}

	stats["activeJobs"] = active
	stats["totalJobs"] = len(jobs)
	stats["newApplicants"] = applicants
	stats["hireRate"] = roundedPercent(hires, applicants)

	return stats
}

func (a *Aggregator) adminStats(ctx context.Context) Stats {
	stats := Stats{
		"totalUsers":         int64(0),
		"activeInstitutions": int64(0),
		"totalCourses":       int64(0),
		"activeJobs":         0,
		"systemHealth":       a.health(ctx),
	}

	if count, err := a.storage.CountUsers(ctx); err != nil {
		degrade(ctx, "users", err)
	} else {
		stats["totalUsers"] = count
	}
	if count, err := a.storage.CountActiveInstitutions(ctx); err != nil {
		degrade(ctx, "institutions", err)
	} else {
		stats["activeInstitutions"] = count
	}
	if count, err := a.storage.CountCourses(ctx); err != nil {
		degrade(ctx, "courses", err)
	} else {
		stats["totalCourses"] = count
	}
	stats["activeJobs"] = a.countActiveJobs(ctx)

	return stats
}

func (a *Aggregator) countActiveJobs(ctx context.Context) int {
	jobs, err := a.storage.Jobs(ctx)
	if err != nil {
		degrade(ctx, "jobs", err)

		return 0
	}

	active := 0
	for _, job := range jobs {
		if job.Active {
			active++
		}
	}

	return active
}

// roundedPercent returns part/total as a percentage rounded to the nearest
// integer, and 0 when total is 0.
func roundedPercent(part, total int) int {
	if total == 0 {
		return 0
	}

	return (part*100 + total/2) / total
}
