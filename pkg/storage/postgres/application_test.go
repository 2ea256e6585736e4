package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"portal/pkg/domain"
	"portal/pkg/storage"
)

type seed struct {
	institutionID domain.InstitutionID
	courseID      domain.CourseID
	studentID     domain.StudentID
}

// seedCatalog inserts one institution with one course so applications can
// reference them.
func seedCatalog(t *testing.T, db *sql.DB) seed {
	t.Helper()
	ctx := context.Background()

	s := seed{
		institutionID: domain.InstitutionID(uuid.New()),
		courseID:      domain.CourseID(uuid.New()),
		studentID:     domain.StudentID(uuid.New()),
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO institutions (id, name, active) VALUES ($1, $2, TRUE)`,
		uuid.UUID(s.institutionID), "National University of Lesotho")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO courses (id, institution_id, name, requirements) VALUES ($1, $2, $3, '{"minPoints":30}')`,
		uuid.UUID(s.courseID), uuid.UUID(s.institutionID), "BSc Computer Science")
	require.NoError(t, err)

	return s
}

func testApplication(s seed, slot int16) domain.Application {
	return domain.Application{
		StudentID:     s.studentID,
		CourseID:      s.courseID,
		InstitutionID: s.institutionID,
		Slot:          slot,
		Status:        domain.ApplicationStatusPending,
		Snapshot: domain.Snapshot{
			FullName:            "Thabo Mokoena",
			DateOfBirth:         "2006-03-14",
			DeclarationAccepted: true,
		},
	}
}

func TestStoreAndFetchApplication(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	s := seedCatalog(t, pg.DB.(*sql.DB))
	ctx := context.Background()

	stored, err := pg.StoreApplication(ctx, testApplication(s, 0))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, uuid.UUID(stored.ID))
	require.Equal(t, domain.ApplicationStatusPending, stored.Status)
	require.False(t, stored.AppliedAt.IsZero())
	require.True(t, stored.ProcessedAt.IsZero())
	require.Equal(t, "Thabo Mokoena", stored.Snapshot.FullName)

	fetched, err := pg.ApplicationByID(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, stored.ID, fetched.ID)
	require.Equal(t, stored.Snapshot, fetched.Snapshot)

	missing, err := pg.ApplicationByID(ctx, domain.ApplicationID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestStoreApplicationDuplicateSlot(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	s := seedCatalog(t, pg.DB.(*sql.DB))
	ctx := context.Background()

	first, err := pg.StoreApplication(ctx, testApplication(s, 0))
	require.NoError(t, err)

	// the partial unique index refuses a second active row on the same slot
	_, err = pg.StoreApplication(ctx, testApplication(s, 0))
	require.ErrorIs(t, err, storage.ErrDuplicateSlot)

	// withdrawing frees the slot for reuse
	_, err = pg.UpdateApplicationByID(ctx, first.ID, storage.ApplicationUpdates{
		Status: domain.ApplicationStatusWithdrawn,
	})
	require.NoError(t, err)

	_, err = pg.StoreApplication(ctx, testApplication(s, 0))
	require.NoError(t, err)
}

func TestActiveSlots(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	s := seedCatalog(t, pg.DB.(*sql.DB))
	ctx := context.Background()

	withdrawn, err := pg.StoreApplication(ctx, testApplication(s, 0))
	require.NoError(t, err)
	_, err = pg.StoreApplication(ctx, testApplication(s, 1))
	require.NoError(t, err)
	_, err = pg.UpdateApplicationByID(ctx, withdrawn.ID, storage.ApplicationUpdates{
		Status: domain.ApplicationStatusWithdrawn,
	})
	require.NoError(t, err)

	slots, err := pg.ActiveSlots(ctx, s.studentID, s.institutionID)
	require.NoError(t, err)
	require.Equal(t, []int16{1}, slots)
}

func TestUpdateApplicationExpectStatusGuard(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	s := seedCatalog(t, pg.DB.(*sql.DB))
	ctx := context.Background()

	app, err := pg.StoreApplication(ctx, testApplication(s, 0))
	require.NoError(t, err)

	// guard mismatch updates nothing and returns nil
	updated, err := pg.UpdateApplicationByID(ctx, app.ID, storage.ApplicationUpdates{
		Status:       domain.ApplicationStatusAdmitted,
		ExpectStatus: domain.ApplicationStatusUnderReview,
	})
	require.NoError(t, err)
	require.Nil(t, updated)

	// matching guard applies the update and stamps processed_at
	updated, err = pg.UpdateApplicationByID(ctx, app.ID, storage.ApplicationUpdates{
		Status:           domain.ApplicationStatusAdmitted,
		ExpectStatus:     domain.ApplicationStatusPending,
		StampProcessedAt: true,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, domain.ApplicationStatusAdmitted, updated.Status)
	require.False(t, updated.ProcessedAt.IsZero())
}

func TestApplicationsByStudentOrder(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	s := seedCatalog(t, pg.DB.(*sql.DB))
	ctx := context.Background()

	first, err := pg.StoreApplication(ctx, testApplication(s, 0))
	require.NoError(t, err)
	// force distinct applied_at stamps
	_, err = pg.DB.ExecContext(ctx,
		`UPDATE applications SET applied_at = applied_at - INTERVAL '1 hour' WHERE id = $1`,
		uuid.UUID(first.ID))
	require.NoError(t, err)

	second, err := pg.StoreApplication(ctx, testApplication(s, 1))
	require.NoError(t, err)

	apps, err := pg.ApplicationsByStudent(ctx, s.studentID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	require.Equal(t, second.ID, apps[0].ID)
	require.Equal(t, first.ID, apps[1].ID)
}

func TestWithTxRollbackOnDuplicate(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	s := seedCatalog(t, pg.DB.(*sql.DB))
	ctx := context.Background()

	_, err := pg.StoreApplication(ctx, testApplication(s, 0))
	require.NoError(t, err)

	err = pg.WithTx(ctx, func(tx storage.AllStorage) error {
		if _, err := tx.StoreApplication(ctx, testApplication(s, 1)); err != nil {
			return err
		}

		// collides with the pre-existing slot 0 row; the whole tx must roll back
		_, err := tx.StoreApplication(ctx, testApplication(s, 0))

		return err
	})
	require.ErrorIs(t, err, storage.ErrDuplicateSlot)

	slots, err := pg.ActiveSlots(ctx, s.studentID, s.institutionID)
	require.NoError(t, err)
	require.Equal(t, []int16{0}, slots)
}

func TestCatalogReads(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	db := pg.DB.(*sql.DB)
	s := seedCatalog(t, db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO students (id, full_name, phone, qualifications)
		 VALUES ($1, $2, $3, '{"totalPoints":35}')`,
		uuid.UUID(s.studentID), "Thabo Mokoena", "+26658123456")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, role) VALUES ($1, 'student'), ($2, 'admin')`,
		uuid.UUID(s.studentID), uuid.New())
	require.NoError(t, err)

	companyID := uuid.New()
	_, err = db.ExecContext(ctx,
		`INSERT INTO jobs (id, company_id, title, active, applicants, hires)
		 VALUES ($1, $2, 'Junior Developer', TRUE, 8, 2)`,
		uuid.New(), companyID)
	require.NoError(t, err)

	course, err := pg.CourseByID(ctx, s.courseID)
	require.NoError(t, err)
	require.NotNil(t, course)
	require.Equal(t, s.institutionID, course.InstitutionID)
	require.NotNil(t, course.Requirements.MinPoints)
	require.Equal(t, 30, *course.Requirements.MinPoints)

	inst, err := pg.InstitutionByID(ctx, s.institutionID)
	require.NoError(t, err)
	require.NotNil(t, inst)
	require.Equal(t, "National University of Lesotho", inst.Name)

	student, err := pg.StudentByID(ctx, s.studentID)
	require.NoError(t, err)
	require.NotNil(t, student)
	require.Equal(t, "Thabo Mokoena", student.FullName)
	require.NotNil(t, student.Qualifications.TotalPoints)

	courseCount, err := pg.CountCoursesByInstitution(ctx, s.institutionID)
	require.NoError(t, err)
	require.Equal(t, int64(1), courseCount)

	activeInstitutions, err := pg.CountActiveInstitutions(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), activeInstitutions)

	users, err := pg.CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), users)

	jobs, err := pg.JobsByCompany(ctx, domain.UserID(companyID))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, 8, jobs[0].Applicants)
}
