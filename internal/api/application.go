package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"portal/internal/admission"
	"portal/pkg/domain"
	"portal/pkg/serrors"
)

// submitApplication handles POST /v1/applications for student actors.
func (h *handler) submitApplication(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := ActorFromContext(ctx)

	var draft admission.Draft
	if err := c.Bind(&draft); err != nil {
		return serrors.Wrap(serrors.ErrValidation, err, "could not parse submission")
	}

	app, err := h.admission.Submit(ctx, domain.StudentID(actor.ID), draft)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, domainApplicationToAPI(app))
}

// withdrawApplication handles DELETE /v1/applications/:id for student actors.
func (h *handler) withdrawApplication(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := ActorFromContext(ctx)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return serrors.Wrap(serrors.ErrValidation, err, "invalid application id")
	}

	if err := h.admission.Withdraw(ctx, domain.ApplicationID(id), domain.StudentID(actor.ID)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// transitionApplication handles POST /v1/applications/:id/status for
// institution and admin actors.
func (h *handler) transitionApplication(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := ActorFromContext(ctx)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return serrors.Wrap(serrors.ErrValidation, err, "invalid application id")
	}

	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return serrors.Wrap(serrors.ErrValidation, err, "could not parse transition request")
	}

	app, err := h.admission.Transition(ctx,
		domain.ApplicationID(id),
		actor.Role,
		domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, domainApplicationToAPI(app))
}

// listOwnApplications handles GET /v1/applications for student actors.
func (h *handler) listOwnApplications(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := ActorFromContext(ctx)

	apps, err := h.admission.ListByStudent(ctx, domain.StudentID(actor.ID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, domainApplicationsToAPI(apps))
}

// listInstitutionApplications handles GET /v1/institutions/:id/applications.
func (h *handler) listInstitutionApplications(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return serrors.Wrap(serrors.ErrValidation, err, "invalid institution id")
	}

	apps, err := h.admission.ListByInstitution(ctx, domain.InstitutionID(id))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, domainApplicationsToAPI(apps))
}
