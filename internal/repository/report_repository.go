package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// ErrStaleStatus signals that the report status changed between the caller's
// read and the locked write. Safe to retry at the boundary.
var ErrStaleStatus = errors.New("report status changed concurrently")

// ReportFilter captures search parameters for report listings.
type ReportFilter struct {
	SubmitterID  *string
	DepartmentID *string
	Statuses     []domain.ReportStatus
	Priorities   []domain.ReportPriority
	SearchTerm   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// ReportRepository encapsulates report persistence. Status and department
// mutations are transactional: the row update and its audit record commit
// together or not at all.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	GetByExternalKey(ctx context.Context, key string) (*domain.Report, error)
	ListWithFilter(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	TransitionStatus(ctx context.Context, input TransitionInput) (*domain.Report, *domain.TransitionRecord, error)
	ReassignDepartment(ctx context.Context, input ReassignInput) (*domain.Report, *domain.DepartmentChange, error)
}

// TransitionInput describes one status transition write.
type TransitionInput struct {
	ReportID  string
	From      domain.ReportStatus
	To        domain.ReportStatus
	ActorType domain.ActorType
	ActorID   *string
	Note      string
}

// ReassignInput describes one admin department override.
type ReassignInput struct {
	ReportID        string
	NewDepartmentID string
	ActorID         string
	Reason          string
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `id, external_key, submitter_id, department_id, title, description, location,
       status, priority, triage_source, triage_confidence, created_at, updated_at, closed_at`

// Create inserts the report and its audit trail in one transaction: the
// birth record and the automatic CREATED -> SUBMITTED transition. The
// report is observable only at SUBMITTED with a complete trail.
func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertReport = `
        INSERT INTO reports (external_key, submitter_id, department_id, title, description, location,
                             status, priority, triage_source, triage_confidence)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertReport,
		report.ExternalKey,
		report.SubmitterID,
		report.DepartmentID,
		report.Title,
		report.Description,
		report.Location,
		domain.ReportStatusCreated,
		report.Priority,
		report.TriageSource,
		report.TriageConfidence,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt); err != nil {
		return err
	}

	const insertRecord = `
        INSERT INTO transition_records (report_id, from_status, to_status, actor_type, actor_id, note)
        VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := tx.Exec(ctx, insertRecord,
		report.ID, nil, domain.ReportStatusCreated, domain.ActorTypeCitizen, report.SubmitterID, "report created",
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertRecord,
		report.ID, domain.ReportStatusCreated, domain.ReportStatusSubmitted, domain.ActorTypeSystem, nil, "triage complete",
	); err != nil {
		return err
	}

	const promote = `UPDATE reports SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`
	if err := tx.QueryRow(ctx, promote, domain.ReportStatusSubmitted, report.ID).Scan(&report.UpdatedAt); err != nil {
		return err
	}
	report.Status = domain.ReportStatusSubmitted

	return tx.Commit(ctx)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id=$1`, reportColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *reportRepository) GetByExternalKey(ctx context.Context, key string) (*domain.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE external_key=$1`, reportColumns)
	return r.fetchSingle(ctx, query, key)
}

func (r *reportRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Report, error) {
	var report domain.Report
	if err := scanReport(r.pool.QueryRow(ctx, query, arg), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// TransitionStatus performs the locked read-modify-write for one lifecycle
// edge. The caller validates the edge beforehand; the locked re-check turns
// lost races into ErrStaleStatus instead of silent double transitions.
func (r *reportRepository) TransitionStatus(ctx context.Context, input TransitionInput) (*domain.Report, *domain.TransitionRecord, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id=$1 FOR UPDATE`, reportColumns)
	var report domain.Report
	if err := scanReport(tx.QueryRow(ctx, query, input.ReportID), &report); err != nil {
		return nil, nil, err
	}
	if report.Status != input.From {
		return nil, nil, ErrStaleStatus
	}

	var closedAt *time.Time
	if input.To == domain.ReportStatusClosed {
		now := time.Now()
		closedAt = &now
	}
	const update = `UPDATE reports SET status=$1, closed_at=$2, updated_at=NOW() WHERE id=$3 RETURNING updated_at`
	if err := tx.QueryRow(ctx, update, input.To, closedAt, report.ID).Scan(&report.UpdatedAt); err != nil {
		return nil, nil, err
	}
	report.Status = input.To
	report.ClosedAt = closedAt

	record := &domain.TransitionRecord{
		ReportID:   report.ID,
		FromStatus: &input.From,
		ToStatus:   input.To,
		ActorType:  input.ActorType,
		ActorID:    input.ActorID,
		Note:       input.Note,
	}
	const insertRecord = `
        INSERT INTO transition_records (report_id, from_status, to_status, actor_type, actor_id, note)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertRecord,
		record.ReportID, record.FromStatus, record.ToStatus, record.ActorType, record.ActorID, record.Note,
	).Scan(&record.ID, &record.CreatedAt); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &report, record, nil
}

// ReassignDepartment applies the audited admin override of the immutable
// triage assignment. Distinct from initial triage and never silent.
func (r *reportRepository) ReassignDepartment(ctx context.Context, input ReassignInput) (*domain.Report, *domain.DepartmentChange, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id=$1 FOR UPDATE`, reportColumns)
	var report domain.Report
	if err := scanReport(tx.QueryRow(ctx, query, input.ReportID), &report); err != nil {
		return nil, nil, err
	}

	change := &domain.DepartmentChange{
		ReportID:        report.ID,
		OldDepartmentID: report.DepartmentID,
		NewDepartmentID: input.NewDepartmentID,
		ActorID:         input.ActorID,
		Reason:          input.Reason,
	}

	const update = `UPDATE reports SET department_id=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`
	if err := tx.QueryRow(ctx, update, input.NewDepartmentID, report.ID).Scan(&report.UpdatedAt); err != nil {
		return nil, nil, err
	}
	report.DepartmentID = input.NewDepartmentID

	const insertChange = `
        INSERT INTO department_changes (report_id, old_department_id, new_department_id, actor_id, reason)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertChange,
		change.ReportID, change.OldDepartmentID, change.NewDepartmentID, change.ActorID, change.Reason,
	).Scan(&change.ID, &change.CreatedAt); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &report, change, nil
}

func (r *reportRepository) ListWithFilter(ctx context.Context, filter ReportFilter) ([]domain.Report, error) {
	base := fmt.Sprintf(`SELECT %s FROM reports`, reportColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.SubmitterID != nil {
		args = append(args, *filter.SubmitterID)
		clauses = append(clauses, fmt.Sprintf("submitter_id=$%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Report
	for rows.Next() {
		var report domain.Report
		if err := scanReport(rows, &report); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}

func scanReport(row pgx.Row, report *domain.Report) error {
	return row.Scan(
		&report.ID,
		&report.ExternalKey,
		&report.SubmitterID,
		&report.DepartmentID,
		&report.Title,
		&report.Description,
		&report.Location,
		&report.Status,
		&report.Priority,
		&report.TriageSource,
		&report.TriageConfidence,
		&report.CreatedAt,
		&report.UpdatedAt,
		&report.ClosedAt,
	)
}
