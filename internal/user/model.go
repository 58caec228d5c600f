package user

import (
	"net/http"
	"time"

	"github.com/MoonTwilightShadow/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailRequired = apperror.New(http.StatusBadRequest, "email is required")
	ErrEmailTaken    = apperror.New(http.StatusConflict, "email already in use")
)

// User represents a registered account. Users own items and make bookings.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
