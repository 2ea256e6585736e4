package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portal/pkg/domain"
)

type PgApplication struct {
	ID            uuid.UUID `db:"id"             goqu:"skipinsert"`
	StudentID     uuid.UUID `db:"student_id"`
	CourseID      uuid.UUID `db:"course_id"`
	InstitutionID uuid.UUID `db:"institution_id"`

	Slot     int16           `db:"slot"`
	Status   string          `db:"status"`
	Snapshot json.RawMessage `db:"snapshot"`

	AppliedAt   time.Time    `db:"applied_at"   goqu:"skipinsert"`
	ProcessedAt sql.NullTime `db:"processed_at" goqu:"skipinsert"`
	UpdatedAt   sql.NullTime `db:"updated_at"   goqu:"skipinsert"`
}

func (p *PgApplication) ToDomain() (*domain.Application, error) {
	var snapshot domain.Snapshot
	if err := json.Unmarshal(p.Snapshot, &snapshot); err != nil {
		return nil, fmt.Errorf("could not unmarshal application snapshot: %w", err)
	}

	return &domain.Application{
		ID:            domain.ApplicationID(p.ID),
		StudentID:     domain.StudentID(p.StudentID),
		CourseID:      domain.CourseID(p.CourseID),
		InstitutionID: domain.InstitutionID(p.InstitutionID),
		Slot:          p.Slot,
		Status:        domain.ApplicationStatus(p.Status),
		Snapshot:      snapshot,
		AppliedAt:     p.AppliedAt,
		ProcessedAt:   p.ProcessedAt.Time,
		UpdatedAt:     p.UpdatedAt.Time,
	}, nil
}

func (p *PgApplication) FromDomain(app domain.Application) error {
	snapshot, err := json.Marshal(app.Snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal application snapshot: %w", err)
	}

	*p = PgApplication{
		ID:            uuid.UUID(app.ID),
		StudentID:     uuid.UUID(app.StudentID),
		CourseID:      uuid.UUID(app.CourseID),
		InstitutionID: uuid.UUID(app.InstitutionID),
		Slot:          app.Slot,
		Status:        string(app.Status),
		Snapshot:      snapshot,
		AppliedAt:     app.AppliedAt,
		ProcessedAt: sql.NullTime{
			Time:  app.ProcessedAt,
			Valid: !app.ProcessedAt.IsZero(),
		},
		UpdatedAt: sql.NullTime{
			Time:  app.UpdatedAt,
			Valid: !app.UpdatedAt.IsZero(),
		},
	}

	return nil
}

func pgApplicationsToDomain(apps []PgApplication) ([]domain.Application, error) {
	out := make([]domain.Application, 0, len(apps))
	for _, app := range apps {
		d, err := app.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}

type PgCourse struct {
	ID            uuid.UUID       `db:"id"`
	InstitutionID uuid.UUID       `db:"institution_id"`
	Name          string          `db:"name"`
	Requirements  json.RawMessage `db:"requirements"`
}

func (p *PgCourse) ToDomain() (*domain.Course, error) {
	var reqs domain.Requirements
	if len(p.Requirements) > 0 {
		if err := json.Unmarshal(p.Requirements, &reqs); err != nil {
			return nil, fmt.Errorf("could not unmarshal course requirements: %w", err)
		}
	}

	return &domain.Course{
		ID:            domain.CourseID(p.ID),
		InstitutionID: domain.InstitutionID(p.InstitutionID),
		Name:          p.Name,
		Requirements:  reqs,
	}, nil
}

func pgCoursesToDomain(courses []PgCourse) ([]domain.Course, error) {
	out := make([]domain.Course, 0, len(courses))
	for _, c := range courses {
		d, err := c.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}

type PgInstitution struct {
	ID     uuid.UUID `db:"id"`
	Name   string    `db:"name"`
	Active bool      `db:"active"`
}

func (p *PgInstitution) ToDomain() *domain.Institution {
	return &domain.Institution{
		ID:     domain.InstitutionID(p.ID),
		Name:   p.Name,
		Active: p.Active,
	}
}

type PgStudent struct {
	ID               uuid.UUID       `db:"id"`
	FullName         sql.NullString  `db:"full_name"`
	Phone            sql.NullString  `db:"phone"`
	DateOfBirth      sql.NullString  `db:"date_of_birth"`
	Address          sql.NullString  `db:"address"`
	SecondarySchool  sql.NullString  `db:"secondary_school"`
	Qualifications   json.RawMessage `db:"qualifications"`
	TranscriptStatus string          `db:"transcript_status"`
}

func (p *PgStudent) ToDomain() (*domain.Student, error) {
	var quals domain.Qualifications
	if len(p.Qualifications) > 0 {
		if err := json.Unmarshal(p.Qualifications, &quals); err != nil {
			return nil, fmt.Errorf("could not unmarshal student qualifications: %w", err)
		}
	}

	return &domain.Student{
		ID:               domain.StudentID(p.ID),
		FullName:         p.FullName.String,
		Phone:            p.Phone.String,
		DateOfBirth:      p.DateOfBirth.String,
		Address:          p.Address.String,
		SecondarySchool:  p.SecondarySchool.String,
		Qualifications:   quals,
		TranscriptStatus: domain.TranscriptStatus(p.TranscriptStatus),
	}, nil
}

type PgJob struct {
	ID         uuid.UUID `db:"id"`
	CompanyID  uuid.UUID `db:"company_id"`
	Title      string    `db:"title"`
	Active     bool      `db:"active"`
	Applicants int       `db:"applicants"`
	Hires      int       `db:"hires"`
}

func (p *PgJob) ToDomain() *domain.Job {
	return &domain.Job{
		ID:         domain.JobID(p.ID),
		CompanyID:  domain.UserID(p.CompanyID),
		Title:      p.Title,
		Active:     p.Active,
		Applicants: p.Applicants,
		Hires:      p.Hires,
	}
}

func pgJobsToDomain(jobs []PgJob) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, *j.ToDomain())
	}

	return out
}
