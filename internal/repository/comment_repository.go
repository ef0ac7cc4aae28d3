package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// CommentRepository stores report discussion threads.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.ReportComment) error
	ListByReport(ctx context.Context, reportID string) ([]domain.ReportComment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds the repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.ReportComment) error {
	const query = `
        INSERT INTO report_comments (report_id, author_type, author_id, visibility, body)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.ReportID,
		comment.AuthorType,
		comment.AuthorID,
		comment.Visibility,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListByReport(ctx context.Context, reportID string) ([]domain.ReportComment, error) {
	const query = `
        SELECT id, report_id, author_type, author_id, visibility, body, created_at
        FROM report_comments WHERE report_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReportComment
	for rows.Next() {
		var comment domain.ReportComment
		if err := rows.Scan(
			&comment.ID,
			&comment.ReportID,
			&comment.AuthorType,
			&comment.AuthorID,
			&comment.Visibility,
			&comment.Body,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
