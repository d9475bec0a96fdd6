package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for items.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	ListByOwner(ctx context.Context, filter Filter) ([]*Item, int, error)

	// Search returns available items whose name or description matches
	// the given text, case-insensitively.
	Search(ctx context.Context, text string, page, pageSize int) ([]*Item, int, error)

	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"i.id", "i.name", "i.description", "i.available",
		"i.owner_id", "u.name", "i.request_id",
		"i.created_at", "i.updated_at",
	).
		From("public.items i").
		Join("public.users u ON i.owner_id = u.id").
		Where(squirrel.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var it Item
	if err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Available,
		&it.OwnerID, &it.OwnerName, &it.RequestID,
		&it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &it, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, filter Filter) ([]*Item, int, error) {
	conds := []squirrel.Sqlizer{squirrel.Eq{"i.owner_id": filter.OwnerID}}
	return r.queryItems(ctx, conds, filter.Page, filter.PageSize)
}

func (r *pgxRepository) Search(ctx context.Context, text string, page, pageSize int) ([]*Item, int, error) {
	pattern := "%" + text + "%"

	conds := []squirrel.Sqlizer{
		squirrel.Eq{"i.available": true},
		squirrel.Or{
			squirrel.ILike{"i.name": pattern},
			squirrel.ILike{"i.description": pattern},
		},
	}
	return r.queryItems(ctx, conds, page, pageSize)
}

func (r *pgxRepository) queryItems(ctx context.Context, conds []squirrel.Sqlizer, page, pageSize int) ([]*Item, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"i.id", "i.name", "i.description", "i.available",
		"i.owner_id", "u.name", "i.request_id",
		"i.created_at", "i.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.items i").
		Join("public.users u ON i.owner_id = u.id")
	for _, cond := range conds {
		query = query.Where(cond)
	}
	query = query.OrderBy("i.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	var total int

	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Available,
			&it.OwnerID, &it.OwnerName, &it.RequestID,
			&it.CreatedAt, &it.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &it)
	}

	// A page past the end returns no rows and so no windowed count; count
	// separately so the total stays truthful.
	if len(items) == 0 {
		countQuery := psql.Select("count(*)").From("public.items i")
		for _, cond := range conds {
			countQuery = countQuery.Where(cond)
		}
		countSQL, countArgs, err := countQuery.ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count items query failed: %w", err)
		}
		if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count items failed: %w", err)
		}
	}

	return items, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("available", it.Available).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
