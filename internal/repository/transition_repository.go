package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// TransitionRecordRepository reads the append-only audit trail. Writes only
// happen inside report repository transactions so a status update and its
// record can never be observed apart.
type TransitionRecordRepository interface {
	ListByReport(ctx context.Context, reportID string) ([]domain.TransitionRecord, error)
	ListDepartmentChanges(ctx context.Context, reportID string) ([]domain.DepartmentChange, error)
}

type transitionRecordRepository struct {
	pool *pgxpool.Pool
}

// NewTransitionRecordRepository builds the repository.
func NewTransitionRecordRepository(pool *pgxpool.Pool) TransitionRecordRepository {
	return &transitionRecordRepository{pool: pool}
}

func (r *transitionRecordRepository) ListByReport(ctx context.Context, reportID string) ([]domain.TransitionRecord, error) {
	const query = `
        SELECT id, report_id, from_status, to_status, actor_type, actor_id, note, created_at
        FROM transition_records WHERE report_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TransitionRecord
	for rows.Next() {
		var record domain.TransitionRecord
		if err := rows.Scan(
			&record.ID,
			&record.ReportID,
			&record.FromStatus,
			&record.ToStatus,
			&record.ActorType,
			&record.ActorID,
			&record.Note,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func (r *transitionRecordRepository) ListDepartmentChanges(ctx context.Context, reportID string) ([]domain.DepartmentChange, error) {
	const query = `
        SELECT id, report_id, old_department_id, new_department_id, actor_id, reason, created_at
        FROM department_changes WHERE report_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DepartmentChange
	for rows.Next() {
		var change domain.DepartmentChange
		if err := rows.Scan(
			&change.ID,
			&change.ReportID,
			&change.OldDepartmentID,
			&change.NewDepartmentID,
			&change.ActorID,
			&change.Reason,
			&change.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	return result, rows.Err()
}
