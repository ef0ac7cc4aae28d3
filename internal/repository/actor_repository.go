package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// ActorFilter captures listing parameters for actor administration.
type ActorFilter struct {
	Role   *domain.Role
	Status *domain.ActorStatus
	Limit  int
	Offset int
}

// ActorRepository defines persistence access for principals.
type ActorRepository interface {
	Create(ctx context.Context, actor *domain.Actor) error
	Update(ctx context.Context, actor *domain.Actor) error
	GetByID(ctx context.Context, id string) (*domain.Actor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Actor, error)
	List(ctx context.Context, filter ActorFilter) ([]domain.Actor, error)
}

type actorRepository struct {
	pool *pgxpool.Pool
}

// NewActorRepository returns a Postgres-backed implementation.
func NewActorRepository(pool *pgxpool.Pool) ActorRepository {
	return &actorRepository{pool: pool}
}

func (r *actorRepository) Create(ctx context.Context, actor *domain.Actor) error {
	const query = `
        INSERT INTO actors (name, email, password_hash, role, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		actor.Name,
		actor.Email,
		actor.PasswordHash,
		actor.Role,
		actor.Status,
	).Scan(&actor.ID, &actor.CreatedAt, &actor.UpdatedAt)
}

func (r *actorRepository) Update(ctx context.Context, actor *domain.Actor) error {
	const query = `
        UPDATE actors SET name=$1, email=$2, password_hash=$3, role=$4, status=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		actor.Name,
		actor.Email,
		actor.PasswordHash,
		actor.Role,
		actor.Status,
		actor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *actorRepository) GetByID(ctx context.Context, id string) (*domain.Actor, error) {
	const query = `
        SELECT id, name, email, password_hash, role, status, created_at, updated_at
        FROM actors WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *actorRepository) GetByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	const query = `
        SELECT id, name, email, password_hash, role, status, created_at, updated_at
        FROM actors WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *actorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Actor, error) {
	var actor domain.Actor
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&actor.ID,
		&actor.Name,
		&actor.Email,
		&actor.PasswordHash,
		&actor.Role,
		&actor.Status,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &actor, nil
}

func (r *actorRepository) List(ctx context.Context, filter ActorFilter) ([]domain.Actor, error) {
	query := `
        SELECT id, name, email, password_hash, role, status, created_at, updated_at
        FROM actors WHERE 1=1`
	args := []any{}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		query += fmt.Sprintf(" AND role=$%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" ORDER BY created_at ASC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Actor
	for rows.Next() {
		var actor domain.Actor
		if err := rows.Scan(
			&actor.ID,
			&actor.Name,
			&actor.Email,
			&actor.PasswordHash,
			&actor.Role,
			&actor.Status,
			&actor.CreatedAt,
			&actor.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, actor)
	}
	return result, rows.Err()
}
