package itemrequest

import (
	"net/http"
	"time"

	"github.com/MoonTwilightShadow/shareit/internal/item"
	"github.com/MoonTwilightShadow/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
)

// Request is a wish for an item that does not exist yet. Other users may
// list items in response to it.
type Request struct {
	ID          string
	Description string
	RequestorID string
	Created     time.Time
}

// WithItems pairs a request with the items created in response to it.
type WithItems struct {
	Request
	Items []*item.Item
}
