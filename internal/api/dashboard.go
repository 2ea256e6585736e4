package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"portal/internal/admission"
	"portal/pkg/domain"
	"portal/pkg/serrors"
)

// dashboardStats handles GET /v1/dashboard. The role comes from the bearer
// token, so every authenticated actor gets exactly their own dashboard.
func (h *handler) dashboardStats(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := ActorFromContext(ctx)

	stats, err := h.dashboard.ComputeStats(ctx, actor.Role, actor.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// courseQualification handles GET /v1/courses/:id/qualification for student
// actors. The result is advisory and never blocks a submission.
func (h *handler) courseQualification(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := ActorFromContext(ctx)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return serrors.Wrap(serrors.ErrValidation, err, "invalid course id")
	}

	course, err := h.storage.CourseByID(ctx, domain.CourseID(id))
	if err != nil {
		return serrors.Wrap(serrors.ErrPersistence, err, "could not load course")
	}
	if course == nil {
		return serrors.With(serrors.ErrNotFound, "course %q not found", id)
	}

	student, err := h.storage.StudentByID(ctx, domain.StudentID(actor.ID))
	if err != nil {
		return serrors.Wrap(serrors.ErrPersistence, err, "could not load student")
	}

	var quals domain.Qualifications
	if student != nil {
		quals = student.Qualifications
	}

	return c.JSON(http.StatusOK, QualificationResult{
		CourseID:  id,
		Qualified: admission.IsQualified(course.Requirements, quals),
	})
}
