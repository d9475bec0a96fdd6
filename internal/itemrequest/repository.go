package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID string, page, pageSize int) ([]*ItemRequest, int, error)

	// ListOthers returns requests made by anyone except the given user,
	// newest first.
	ListOthers(ctx context.Context, excludeRequestorID string, page, pageSize int) ([]*ItemRequest, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.item_requests").
		Columns("description", "requestor_id").
		Values(req.Description, req.RequestorID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item request query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.description", "r.requestor_id", "u.name", "r.created_at",
	).
		From("public.item_requests r").
		Join("public.users u ON r.requestor_id = u.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item request query failed: %w", err)
	}

	var req ItemRequest
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&req.ID, &req.Description, &req.RequestorID, &req.RequestorName, &req.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID string, page, pageSize int) ([]*ItemRequest, int, error) {
	return r.list(ctx, squirrel.Eq{"r.requestor_id": requestorID}, page, pageSize)
}

func (r *pgxRepository) ListOthers(ctx context.Context, excludeRequestorID string, page, pageSize int) ([]*ItemRequest, int, error) {
	return r.list(ctx, squirrel.NotEq{"r.requestor_id": excludeRequestorID}, page, pageSize)
}

func (r *pgxRepository) list(ctx context.Context, cond squirrel.Sqlizer, page, pageSize int) ([]*ItemRequest, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(
		"r.id", "r.description", "r.requestor_id", "u.name", "r.created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.item_requests r").
		Join("public.users u ON r.requestor_id = u.id").
		Where(cond).
		OrderBy("r.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list item requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var reqs []*ItemRequest
	var total int

	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(
			&req.ID, &req.Description, &req.RequestorID, &req.RequestorName,
			&req.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan item request failed: %w", err)
		}
		reqs = append(reqs, &req)
	}

	// A page past the end returns no rows and so no windowed count; count
	// separately so the total stays truthful.
	if len(reqs) == 0 {
		countSQL, countArgs, err := psql.Select("count(*)").
			From("public.item_requests r").
			Where(cond).
			ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count item requests query failed: %w", err)
		}
		if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count item requests failed: %w", err)
		}
	}

	return reqs, total, nil
}
