package domain

import "github.com/google/uuid"

// CourseID uniquely identifies a course.
type CourseID uuid.UUID

// InstitutionID uniquely identifies an institution.
type InstitutionID uuid.UUID

// JobID uniquely identifies a job posting.
type JobID uuid.UUID

// UserID identifies any portal account regardless of role.
type UserID uuid.UUID

// Course belongs to exactly one institution and carries the stated admission
// requirements. The admission core reads courses but never writes them.
type Course struct {
	ID            CourseID      `json:"id"`
	InstitutionID InstitutionID `json:"institutionId"`
	Name          string        `json:"name"`
	Requirements  Requirements  `json:"requirements"`
}

// Institution is a catalog entry referenced by courses and applications.
type Institution struct {
	ID     InstitutionID `json:"id"`
	Name   string        `json:"name"`
	Active bool          `json:"active"`
}

// Job is a company-owned posting. The admission core only aggregates over
// jobs for dashboards; posting CRUD lives with the catalog collaborator.
type Job struct {
	ID        JobID  `json:"id"`
	CompanyID UserID `json:"companyId"`
	Title     string `json:"title"`
	Active    bool   `json:"active"`

	// Applicants is the number of candidates who applied to the posting.
	Applicants int `json:"applicants"`
	// Hires is the number of applicants hired from the posting.
	Hires int `json:"hires"`
}
