package booking

import (
	"net/http"
	"time"

	"github.com/MoonTwilightShadow/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidRange    = apperror.New(http.StatusBadRequest, "end must be after start")
	ErrItemUnavailable = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrAlreadyDecided  = apperror.New(http.StatusBadRequest, "booking has already been decided")
	ErrUnknownState    = apperror.New(http.StatusBadRequest, "unknown state")
)

// Status is the booking approval state machine. A booking starts WAITING;
// APPROVED, REJECTED and CANCELED are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// Booking is a time-bounded request by a booker to use another user's item.
// Item and booker references are denormalized for response shaping.
type Booking struct {
	ID          string
	Start       time.Time
	End         time.Time
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	BookerName  string
	Status      Status
	CreatedAt   time.Time
}
