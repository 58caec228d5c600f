package paging

import (
	"net/http"

	"github.com/MoonTwilightShadow/shareit/internal/pkg/apperror"
)

// ErrInvalid is returned when from is negative or size is not positive.
var ErrInvalid = apperror.New(http.StatusBadRequest, "from must be >= 0 and size must be > 0")

// Params carries the raw from/size values taken from the query string.
type Params struct {
	From int
	Size int
}

// Validate rejects negative offsets and non-positive page sizes.
func (p Params) Validate() error {
	if p.From < 0 || p.Size <= 0 {
		return ErrInvalid
	}
	return nil
}

// LimitOffset derives the SQL window for the page containing From.
// The page index is From/Size with integer division, so a From that is not a
// multiple of Size rounds down to the nearest page boundary rather than
// acting as a raw row offset. Existing API clients depend on this.
func (p Params) LimitOffset() (limit, offset uint64) {
	page := p.From / p.Size
	return uint64(p.Size), uint64(page * p.Size)
}
