package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MoonTwilightShadow/shareit/internal/item"
	"github.com/MoonTwilightShadow/shareit/internal/pkg/paging"
	"github.com/MoonTwilightShadow/shareit/internal/user"
)

type CreateRequest struct {
	ItemID string
	Start  time.Time
	End    time.Time
}

// ItemGetter is the slice of the item service this package needs.
type ItemGetter interface {
	Get(ctx context.Context, id string) (*item.Item, error)
}

// UserGetter is the slice of the user service this package needs.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, bookerID string) (*Booking, error)
	Approve(ctx context.Context, ownerID, bookingID string, approved bool) (*Booking, error)
	GetByID(ctx context.Context, bookingID, callerID string) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID, state string, page paging.Params) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID, state string, page paging.Params) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items ItemGetter
	users UserGetter

	now func() time.Time
}

func NewService(repo Repository, items ItemGetter, users UserGetter) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, bookerID string) (*Booking, error) {
	log.Info().Str("item_id", req.ItemID).Str("booker_id", bookerID).Msg("create booking")

	if req.End.Before(req.Start) || req.End.Equal(req.Start) {
		return nil, ErrInvalidRange
	}

	it, err := s.items.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}
	// Owners cannot book their own items. Surfaced as a missing item rather
	// than a distinct authorization error so callers cannot probe ownership.
	if it.OwnerID == bookerID {
		return nil, item.ErrNotFound
	}

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		Start:       req.Start,
		End:         req.End,
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Status:      StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Approve(ctx context.Context, ownerID, bookingID string, approved bool) (*Booking, error) {
	log.Info().Str("booking_id", bookingID).Bool("approved", approved).Msg("approve booking")

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Only the item's owner decides; anyone else sees a missing booking.
	if b.ItemOwnerID != ownerID {
		return nil, ErrNotFound
	}

	// One-shot transition: WAITING is the only state this operation leaves.
	if b.Status != StatusWaiting {
		return nil, ErrAlreadyDecided
	}

	if approved {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}

	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, callerID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Only the two parties of the transaction may read a booking.
	if b.BookerID != callerID && b.ItemOwnerID != callerID {
		return nil, ErrNotFound
	}

	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID, state string, page paging.Params) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByBooker(ctx, bookerID, st, s.now(), page)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []*Booking{}
	}
	return bookings, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID, state string, page paging.Params) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByOwner(ctx, ownerID, st, s.now(), page)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []*Booking{}
	}
	return bookings, nil
}
