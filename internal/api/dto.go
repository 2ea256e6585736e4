package api

import (
	"time"

	"github.com/google/uuid"

	"portal/pkg/domain"
)

// Application is the wire representation of a domain application.
type Application struct {
	ID            uuid.UUID `json:"id"`
	StudentID     uuid.UUID `json:"studentId"`
	CourseID      uuid.UUID `json:"courseId"`
	InstitutionID uuid.UUID `json:"institutionId"`

	Status   string          `json:"status"`
	Snapshot domain.Snapshot `json:"snapshot"`

	AppliedAt   time.Time  `json:"appliedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ApplicationList wraps a list response.
type ApplicationList struct {
	Items []Application `json:"items"`
}

// QualificationResult is the advisory eligibility signal for one course.
type QualificationResult struct {
	CourseID  uuid.UUID `json:"courseId"`
	Qualified bool      `json:"qualified"`
}

// transitionRequest is the body of the status transition endpoint.
type transitionRequest struct {
	Status string `json:"status"`
}

func domainApplicationToAPI(in *domain.Application) Application {
	out := Application{
		ID:            uuid.UUID(in.ID),
		StudentID:     uuid.UUID(in.StudentID),
		CourseID:      uuid.UUID(in.CourseID),
		InstitutionID: uuid.UUID(in.InstitutionID),
		Status:        string(in.Status),
		Snapshot:      in.Snapshot,
		AppliedAt:     in.AppliedAt,
	}
	if !in.ProcessedAt.IsZero() {
		t := in.ProcessedAt
		out.ProcessedAt = &t
	}
	if !in.UpdatedAt.IsZero() {
		t := in.UpdatedAt
		out.UpdatedAt = &t
	}

	return out
}

func domainApplicationsToAPI(in []domain.Application) ApplicationList {
	items := make([]Application, 0, len(in))
	for i := range in {
		items = append(items, domainApplicationToAPI(&in[i]))
	}

	return ApplicationList{Items: items}
}
