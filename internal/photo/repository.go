package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByItem(ctx context.Context, itemID string) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Photo) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.photos").
		Columns("id", "item_id", "user_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at").
		Values(p.ID, p.ItemID, p.UserID, p.Filename, p.StoragePath, p.ThumbnailPath, p.ContentType, p.Size, p.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create photo query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create photo record failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Photo, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "item_id", "user_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at",
	).
		From("public.photos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get photo query failed: %w", err)
	}

	var p Photo
	var thumbnailPath sql.NullString

	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.ItemID, &p.UserID, &p.Filename, &p.StoragePath,
		&thumbnailPath, &p.ContentType, &p.Size, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get photo failed: %w", err)
	}

	if thumbnailPath.Valid {
		p.ThumbnailPath = &thumbnailPath.String
	}
	return &p, nil
}

func (r *pgxRepository) ListByItem(ctx context.Context, itemID string) ([]*Photo, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "item_id", "user_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at",
	).
		From("public.photos").
		Where(squirrel.Eq{"item_id": itemID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list photos query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list photos failed: %w", err)
	}
	defer rows.Close()

	var photos []*Photo
	for rows.Next() {
		var p Photo
		var thumbnailPath sql.NullString
		if err := rows.Scan(
			&p.ID, &p.ItemID, &p.UserID, &p.Filename, &p.StoragePath,
			&thumbnailPath, &p.ContentType, &p.Size, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan photo failed: %w", err)
		}
		if thumbnailPath.Valid {
			p.ThumbnailPath = &thumbnailPath.String
		}
		photos = append(photos, &p)
	}

	return photos, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.photos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete photo query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete photo record failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
