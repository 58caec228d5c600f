package item

import (
	"context"
	"net/http"
	"time"

	"github.com/MoonTwilightShadow/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "item not found")
	ErrRequestNotFound   = apperror.New(http.StatusNotFound, "item request not found")
	ErrNotOwner          = apperror.New(http.StatusForbidden, "only the owner may modify an item")
	ErrNameRequired      = apperror.New(http.StatusBadRequest, "name is required")
	ErrEmptyComment      = apperror.New(http.StatusBadRequest, "comment text cannot be blank")
	ErrCommentNotAllowed = apperror.New(http.StatusBadRequest, "commenting requires a completed booking of the item")
)

// Item is a thing its owner offers for booking. Items with Available=false
// cannot be booked. The owner never changes after creation.
type Item struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
	OwnerName   string
	RequestID   *string // set when the item was listed in response to a request
	CreatedAt   time.Time
}

// Comment is a review left on an item by a user who completed a booking of it.
type Comment struct {
	ID         string
	Text       string
	ItemID     string
	AuthorID   string
	AuthorName string
	Created    time.Time
}

// BookingRef is the slice of a booking this package needs for item views.
type BookingRef struct {
	ID       string
	BookerID string
	Start    time.Time
	End      time.Time
}

// Detail is an item as seen in detail/listing views: comments always, and
// the nearest approved bookings around "now" when the viewer is the owner.
type Detail struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []*Comment
}

// BookingChecker answers booking questions without this package depending on
// the booking package. The booking package provides the implementation.
type BookingChecker interface {
	// LastApproved returns the approved booking with the latest end among
	// those with start <= now, or nil when none exists.
	LastApproved(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	// NextApproved returns the approved booking with the earliest start among
	// those with start > now, or nil when none exists.
	NextApproved(ctx context.Context, itemID string, now time.Time) (*BookingRef, error)
	// HasCompleted reports whether the user has an approved booking of the
	// item whose end has passed.
	HasCompleted(ctx context.Context, itemID, userID string, now time.Time) (bool, error)
}

// RequestChecker reports whether an item request exists.
type RequestChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}
