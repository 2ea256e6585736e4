package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"portal/pkg/domain"
	"portal/pkg/storage"
)

const (
	applicationsTable = "applications"
)

// isUniqueViolation reports whether err is a postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// StoreApplication inserts a new application row. A collision with the
// active-slot unique index is reported as storage.ErrDuplicateSlot so the
// caller can translate the lost race into a capacity failure.
func (p *PgSQL) StoreApplication(ctx context.Context, app domain.Application) (*domain.Application, error) {
	var pgApp PgApplication
	if err := pgApp.FromDomain(app); err != nil {
		return nil, err
	}

	var row PgApplication
	found, err := p.Builder.Insert(applicationsTable).
		Rows(pgApp).
		Returning(&PgApplication{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrDuplicateSlot
		}

		return nil, fmt.Errorf("could not store application into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("could not store application into pg: no row returned")
	}

	return row.ToDomain()
}

// ApplicationByID fetches an application by id. Returns nil when not found.
func (p *PgSQL) ApplicationByID(ctx context.Context, id domain.ApplicationID) (*domain.Application, error) {
	var row PgApplication
	found, err := p.Builder.From(applicationsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch application by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// ApplicationsByStudent returns the student's applications ordered newest
// applied_at first. The id tiebreaker keeps the order total.
func (p *PgSQL) ApplicationsByStudent(ctx context.Context,
	studentID domain.StudentID) ([]domain.Application, error) {
	var rows []PgApplication
	if err := p.Builder.From(applicationsTable).
		Where(goqu.I("student_id").Eq(uuid.UUID(studentID))).
		Order(goqu.I("applied_at").Desc(), goqu.I("id").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch student applications from pg: %w", err)
	}

	return pgApplicationsToDomain(rows)
}

// ApplicationsByInstitution returns all applications addressed to an institution.
func (p *PgSQL) ApplicationsByInstitution(ctx context.Context,
	institutionID domain.InstitutionID) ([]domain.Application, error) {
	var rows []PgApplication
	if err := p.Builder.From(applicationsTable).
		Where(goqu.I("institution_id").Eq(uuid.UUID(institutionID))).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch institution applications from pg: %w", err)
	}

	return pgApplicationsToDomain(rows)
}

// ActiveSlots returns the slots held by the student's non-withdrawn
// applications at the institution.
func (p *PgSQL) ActiveSlots(ctx context.Context,
	studentID domain.StudentID,
	institutionID domain.InstitutionID) ([]int16, error) {
	var slots []int16
	if err := p.Builder.From(applicationsTable).
		Select(goqu.I("slot")).
		Where(
			goqu.I("student_id").Eq(uuid.UUID(studentID)),
			goqu.I("institution_id").Eq(uuid.UUID(institutionID)),
			goqu.I("status").Neq(string(domain.ApplicationStatusWithdrawn)),
		).
		Order(goqu.I("slot").Asc()).
		Executor().ScanValsContext(ctx, &slots); err != nil {
		return nil, fmt.Errorf("could not fetch active slots from pg: %w", err)
	}

	return slots, nil
}

// UpdateApplicationByID updates a single application and returns the updated
// row. With an ExpectStatus guard, a non-matching current status updates
// nothing and returns nil, which callers use to detect stale state.
func (p *PgSQL) UpdateApplicationByID(ctx context.Context,
	id domain.ApplicationID,
	updates storage.ApplicationUpdates) (*domain.Application, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"status":     string(updates.Status),
	}
	if updates.StampProcessedAt {
		rec["processed_at"] = goqu.L("CURRENT_TIMESTAMP")
	}

	w := []goqu.Expression{
		goqu.I("id").Eq(uuid.UUID(id)),
	}
	if updates.ExpectStatus != "" {
		w = append(w, goqu.I("status").Eq(string(updates.ExpectStatus)))
	}

	var row PgApplication
	found, err := p.Builder.Update(applicationsTable).
		Set(rec).
		Where(w...).
		Returning(&PgApplication{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update application in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
