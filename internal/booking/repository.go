package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the booking ledger. Bookings are appended and their status
// advanced; they are never deleted.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListForBooker(ctx context.Context, bookerID string, filter Filter) ([]*Booking, int, error)
	ListForOwner(ctx context.Context, ownerID string, filter Filter) ([]*Booking, int, error)

	// UpdateStatus atomically moves a booking from one status to another.
	// It returns ErrAlreadyDecided when the booking exists but is no longer
	// in the expected source status, so concurrent decisions on the same
	// booking cannot both succeed.
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	// ExistsCompleted reports whether the booker has an approved booking
	// of the item that ended before now.
	ExistsCompleted(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.StartTime, b.EndTime, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.item_id", "i.name", "b.booker_id", "u.name", "i.owner_id",
		"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName, &b.OwnerID,
		&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) ListForBooker(ctx context.Context, bookerID string, filter Filter) ([]*Booking, int, error) {
	return r.list(ctx, squirrel.Eq{"b.booker_id": bookerID}, filter)
}

func (r *pgxRepository) ListForOwner(ctx context.Context, ownerID string, filter Filter) ([]*Booking, int, error) {
	return r.list(ctx, squirrel.Eq{"i.owner_id": ownerID}, filter)
}

func (r *pgxRepository) list(ctx context.Context, role squirrel.Sqlizer, filter Filter) ([]*Booking, int, error) {
	conds := []squirrel.Sqlizer{role}

	switch filter.State {
	case StateAll, "":
		// no extra condition
	case StateCurrent:
		conds = append(conds,
			squirrel.LtOrEq{"b.start_time": filter.Now},
			squirrel.GtOrEq{"b.end_time": filter.Now})
	case StatePast:
		conds = append(conds, squirrel.Lt{"b.end_time": filter.Now})
	case StateFuture:
		conds = append(conds, squirrel.Gt{"b.start_time": filter.Now})
	case StateWaiting:
		conds = append(conds, squirrel.Eq{"b.status": StatusWaiting})
	case StateRejected:
		conds = append(conds, squirrel.Eq{"b.status": StatusRejected})
	default:
		return nil, 0, ErrInvalidState
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.item_id", "i.name", "b.booker_id", "u.name", "i.owner_id",
		"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
	for _, cond := range conds {
		query = query.Where(cond)
	}

	// Most recent start first; the tiebreak keeps pagination stable.
	query = query.OrderBy("b.start_time DESC", "b.id DESC")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	query = query.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName, &b.OwnerID,
			&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	// The windowed count comes back with the rows, so a page past the end
	// has no row to carry it. Count separately to keep the total truthful.
	if len(bookings) == 0 {
		countQuery := psql.Select("count(*)").
			From("public.bookings b").
			Join("public.items i ON b.item_id = i.id")
		for _, cond := range conds {
			countQuery = countQuery.Where(cond)
		}
		countSQL, countArgs, err := countQuery.ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count bookings query failed: %w", err)
		}
		if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count bookings failed: %w", err)
		}
	}

	return bookings, total, nil
}

func (r *pgxRepository) ExistsCompleted(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	inner, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID, "booker_id": bookerID, "status": StatusApproved}).
		Where(squirrel.Lt{"end_time": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build completed booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+inner+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check completed booking failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	// The guarded update matched nothing: either the booking is gone or a
	// concurrent decision got there first.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrAlreadyDecided
}
