package booking

import (
	"context"
	"time"

	"github.com/MoonTwilightShadow/shareit/internal/item"
)

// itemChecker adapts the booking repository to the item package's
// BookingChecker, so item views can resolve last/next bookings and comment
// eligibility without a package cycle.
type itemChecker struct {
	repo Repository
}

func NewItemChecker(repo Repository) item.BookingChecker {
	return &itemChecker{repo: repo}
}

func (c *itemChecker) LastApproved(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := c.repo.LastForItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return toRef(b), nil
}

func (c *itemChecker) NextApproved(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, error) {
	b, err := c.repo.NextForItem(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return toRef(b), nil
}

func (c *itemChecker) HasCompleted(ctx context.Context, itemID, userID string, now time.Time) (bool, error) {
	return c.repo.HasCompleted(ctx, itemID, userID, now)
}

func toRef(b *Booking) *item.BookingRef {
	if b == nil {
		return nil
	}
	return &item.BookingRef{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
