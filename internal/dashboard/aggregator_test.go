package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"portal/internal/dashboard"
	"portal/pkg/domain"
	"portal/pkg/storage/inmem"
)

func addApplication(t *testing.T,
	strg *inmem.InMem,
	studentID domain.StudentID,
	institutionID domain.InstitutionID,
	slot int16,
	status domain.ApplicationStatus,
	appliedAt time.Time) {
	t.Helper()
	_, err := strg.StoreApplication(context.Background(), domain.Application{
		StudentID:     studentID,
		CourseID:      domain.CourseID(uuid.New()),
		InstitutionID: institutionID,
		Slot:          slot,
		Status:        status,
		AppliedAt:     appliedAt,
	})
	require.NoError(t, err)
}

func TestComputeStatsUnknownRole(t *testing.T) {
	agg := dashboard.New(inmem.New(), nil)

	_, err := agg.ComputeStats(context.Background(), "visitor", uuid.New())
	require.Error(t, err)
}

func TestStudentStats(t *testing.T) {
	strg := inmem.New()
	studentID := domain.StudentID(uuid.New())
	institutionID := domain.InstitutionID(uuid.New())

	points := 35
	strg.AddStudent(domain.Student{
		ID:       studentID,
		FullName: "Thabo Mokoena",
		Phone:    "+26658123456",
		// three of five profile fields present
		Qualifications: domain.Qualifications{
			TotalPoints: &points,
			SubjectGrades: map[domain.Subject]domain.Grade{
				domain.SubjectMathematics: domain.GradeB,
			},
		},
		TranscriptStatus: domain.TranscriptStatusVerified,
		Address:          "Maseru",
	})

	minPoints := 40
	strg.AddCourse(domain.Course{ID: domain.CourseID(uuid.New()), InstitutionID: institutionID})
	strg.AddCourse(domain.Course{
		ID:            domain.CourseID(uuid.New()),
		InstitutionID: institutionID,
		Requirements:  domain.Requirements{MinPoints: &minPoints},
	})

	strg.AddJob(domain.Job{ID: domain.JobID(uuid.New()), Active: true})
	strg.AddJob(domain.Job{ID: domain.JobID(uuid.New()), Active: false})

	now := time.Now()
	addApplication(t, strg, studentID, institutionID, 0, domain.ApplicationStatusPending, now)
	addApplication(t, strg, studentID, institutionID, 1, domain.ApplicationStatusAdmitted, now)
	// someone else's application must not leak into the student's counts
	addApplication(t, strg, domain.StudentID(uuid.New()), institutionID, 0, domain.ApplicationStatusPending, now)

	stats, err := dashboard.New(strg, nil).ComputeStats(context.Background(), domain.RoleStudent, uuid.UUID(studentID))
	require.NoError(t, err)

	require.Equal(t, 2, stats["applications"])
	require.Equal(t, 1, stats["pending"])
	require.Equal(t, 1, stats["accepted"])
	require.Equal(t, 60, stats["profileComplete"])
	require.Equal(t, 1, stats["qualifiedCourses"])
	require.Equal(t, 1, stats["activeJobs"])
	require.Equal(t, string(domain.TranscriptStatusVerified), stats["transcriptStatus"])
}

func TestInstituteStats(t *testing.T) {
	strg := inmem.New()
	institutionID := domain.InstitutionID(uuid.New())

	strg.AddCourse(domain.Course{ID: domain.CourseID(uuid.New()), InstitutionID: institutionID})
	strg.AddCourse(domain.Course{ID: domain.CourseID(uuid.New()), InstitutionID: institutionID})

	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-24 * time.Hour)
	old := now.Add(-30 * 24 * time.Hour)

	// 10 applications: 6 admitted, 4 pending; 3 of them within the window
	for i := 0; i < 6; i++ {
		addApplication(t, strg, domain.StudentID(uuid.New()), institutionID, 0, domain.ApplicationStatusAdmitted, old)
	}
	for i := 0; i < 3; i++ {
		addApplication(t, strg, domain.StudentID(uuid.New()), institutionID, 0, domain.ApplicationStatusPending, recent)
	}
	addApplication(t, strg, domain.StudentID(uuid.New()), institutionID, 0, domain.ApplicationStatusPending, old)

	agg := dashboard.New(strg, nil)
	agg.SetNow(func() time.Time { return now })

	stats, err := agg.ComputeStats(context.Background(), domain.RoleInstitute, uuid.UUID(institutionID))
	require.NoError(t, err)

	require.Equal(t, int64(2), stats["totalCourses"])
	require.Equal(t, 3, stats["newApplications"])
	require.Equal(t, 4, stats["pendingReviews"])
	require.Equal(t, 60, stats["enrollmentRate"])
	require.Equal(t, 10, stats["activeStudents"])
}

func TestCompanyStats(t *testing.T) {
	strg := inmem.New()
	companyID := domain.UserID(uuid.New())

	strg.AddJob(domain.Job{
		ID: domain.JobID(uuid.New()), CompanyID: companyID,
		Active: true, Applicants: 8, Hires: 2,
	})
	strg.AddJob(domain.Job{
		ID: domain.JobID(uuid.New()), CompanyID: companyID,
		Active: false, Applicants: 4, Hires: 1,
	})
	// another company's job is excluded
	strg.AddJob(domain.Job{
		ID: domain.JobID(uuid.New()), CompanyID: domain.UserID(uuid.New()),
		Active: true, Applicants: 100, Hires: 100,
	})

	stats, err := dashboard.New(strg, nil).ComputeStats(context.Background(), domain.RoleCompany, uuid.UUID(companyID))
	require.NoError(t, err)

	require.Equal(t, 1, stats["activeJobs"])
	require.Equal(t, 2, stats["totalJobs"])
	require.Equal(t, 12, stats["newApplicants"])
	require.Equal(t, 25, stats["hireRate"])
}

func TestAdminStats(t *testing.T) {
	strg := inmem.New()
	strg.SetUserCount(42)
	strg.AddInstitution(domain.Institution{ID: domain.InstitutionID(uuid.New()), Active: true})
	strg.AddInstitution(domain.Institution{ID: domain.InstitutionID(uuid.New()), Active: false})
	strg.AddCourse(domain.Course{ID: domain.CourseID(uuid.New())})
	strg.AddJob(domain.Job{ID: domain.JobID(uuid.New()), Active: true})

	agg := dashboard.New(strg, func(context.Context) string { return "degraded" })

	stats, err := agg.ComputeStats(context.Background(), domain.RoleAdmin, uuid.New())
	require.NoError(t, err)

	require.Equal(t, int64(42), stats["totalUsers"])
	require.Equal(t, int64(1), stats["activeInstitutions"])
	require.Equal(t, int64(1), stats["totalCourses"])
	require.Equal(t, 1, stats["activeJobs"])
	require.Equal(t, "degraded", stats["systemHealth"])
}

func TestAdminStatsDefaultHealth(t *testing.T) {
	stats, err := dashboard.New(inmem.New(), nil).ComputeStats(context.Background(), domain.RoleAdmin, uuid.New())
	require.NoError(t, err)
	require.Equal(t, "operational", stats["systemHealth"])
}

// failingStorage forces read errors on selected collections to exercise the
// degrade-to-zero behavior.
type failingStorage struct {
	*inmem.InMem
}

var errUnavailable = errors.New("collection unavailable")

func (f failingStorage) ApplicationsByStudent(context.Context, domain.StudentID) ([]domain.Application, error) {
	return nil, errUnavailable
}

func (f failingStorage) ApplicationsByInstitution(context.Context, domain.InstitutionID) ([]domain.Application, error) {
	return nil, errUnavailable
}

func (f failingStorage) Jobs(context.Context) ([]domain.Job, error) {
	return nil, errUnavailable
}

func TestStatsDegradeToZeroOnReadFailure(t *testing.T) {
	strg := inmem.New()
	studentID := domain.StudentID(uuid.New())
	strg.AddStudent(domain.Student{ID: studentID, FullName: "Thabo Mokoena"})

	agg := dashboard.New(failingStorage{InMem: strg}, nil)

	stats, err := agg.ComputeStats(context.Background(), domain.RoleStudent, uuid.UUID(studentID))
	require.NoError(t, err)
	require.Equal(t, 0, stats["applications"])
	require.Equal(t, 0, stats["pending"])
	require.Equal(t, 0, stats["activeJobs"])
	// the student record itself still loads
	require.Equal(t, 20, stats["profileComplete"])

	stats, err = agg.ComputeStats(context.Background(), domain.RoleInstitute, uuid.New())
	require.NoError(t, err)
	require.Equal(t, 0, stats["newApplications"])
	require.Equal(t, 0, stats["pendingReviews"])
	require.Equal(t, 0, stats["enrollmentRate"])
}
