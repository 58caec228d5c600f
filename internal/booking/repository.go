package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MoonTwilightShadow/shareit/internal/pkg/paging"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	UpdateStatus(ctx context.Context, b *Booking) error

	// ListByBooker returns the booker's bookings in the given state bucket,
	// evaluated against now, windowed by page.
	ListByBooker(ctx context.Context, bookerID string, state State, now time.Time, page paging.Params) ([]*Booking, error)
	// ListByOwner is the owner-side counterpart, filtering on the item owner.
	ListByOwner(ctx context.Context, ownerID string, state State, now time.Time, page paging.Params) ([]*Booking, error)

	// LastForItem returns the approved booking with the latest end among those
	// with start <= now, or nil when no such booking exists.
	LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	// NextForItem returns the approved booking with the earliest start among
	// those with start > now, or nil when no such booking exists.
	NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	// HasCompleted reports whether the booker has an approved booking of the
	// item whose end has passed.
	HasCompleted(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func bookingSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.start_date", "b.end_date",
		"b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name", "b.status", "b.created_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.Start, &b.End,
		&b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName, &b.Status, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID string, state State, now time.Time, page paging.Params) ([]*Booking, error) {
	query := bookingSelect().Where(squirrel.Eq{"b.booker_id": bookerID})

	// Descending by start everywhere except the booker-side CURRENT listing.
	order := "b.start_date DESC"

	switch state {
	case StateCurrent:
		// start <= now < end on the booker side
		query = query.
			Where(squirrel.LtOrEq{"b.start_date": now}).
			Where(squirrel.Gt{"b.end_date": now})
		order = "b.start_date ASC"
	default:
		query = applyCommonState(query, state, now)
	}

	return r.queryBookings(ctx, query.OrderBy(order), page)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, state State, now time.Time, page paging.Params) ([]*Booking, error) {
	query := bookingSelect().Where(squirrel.Eq{"i.owner_id": ownerID})

	switch state {
	case StateCurrent:
		// start < now < end on the owner side, both bounds strict
		query = query.
			Where(squirrel.Lt{"b.start_date": now}).
			Where(squirrel.Gt{"b.end_date": now})
	default:
		query = applyCommonState(query, state, now)
	}

	return r.queryBookings(ctx, query.OrderBy("b.start_date DESC"), page)
}

func applyCommonState(query squirrel.SelectBuilder, state State, now time.Time) squirrel.SelectBuilder {
	switch state {
	case StatePast:
		return query.Where(squirrel.Lt{"b.end_date": now})
	case StateFuture:
		return query.Where(squirrel.Gt{"b.start_date": now})
	case StateWaiting, StateRejected:
		return query.Where(squirrel.Eq{"b.status": string(state)})
	default: // StateAll
		return query
	}
}

func (r *pgxRepository) queryBookings(ctx context.Context, query squirrel.SelectBuilder, page paging.Params) ([]*Booking, error) {
	limit, offset := page.LimitOffset()
	sql, args, err := query.Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	query := bookingSelect().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": string(StatusApproved)}).
		Where(squirrel.LtOrEq{"b.start_date": now}).
		OrderBy("b.end_date DESC")

	return r.queryFirst(ctx, query)
}

func (r *pgxRepository) NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	query := bookingSelect().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": string(StatusApproved)}).
		Where(squirrel.Gt{"b.start_date": now}).
		OrderBy("b.start_date ASC")

	return r.queryFirst(ctx, query)
}

// queryFirst returns the first matching booking, or nil when none exists.
func (r *pgxRepository) queryFirst(ctx context.Context, query squirrel.SelectBuilder) (*Booking, error) {
	sql, args, err := query.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build nearest booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nearest booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) HasCompleted(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"booker_id": bookerID}).
		Where(squirrel.Eq{"status": string(StatusApproved)}).
		Where(squirrel.LtOrEq{"end_date": now})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build completed booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check completed booking failed: %w", err)
	}
	return exists, nil
}
