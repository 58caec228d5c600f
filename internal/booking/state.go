package booking

import "time"

// State is a listing filter bucket evaluated against "now" at query time.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a filter token to a State. Matching is exact and
// case-sensitive; anything outside the six known tokens is rejected.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	default:
		return "", ErrUnknownState
	}
}

// MatchesBooker reports whether the booking falls into the bucket for
// booker-side listings. CURRENT uses the half-open interval start <= now < end.
func (s State) MatchesBooker(b *Booking, now time.Time) bool {
	if s == StateCurrent {
		return !b.Start.After(now) && b.End.After(now)
	}
	return s.matchesCommon(b, now)
}

// MatchesOwner reports whether the booking falls into the bucket for
// owner-side listings. CURRENT uses the open interval start < now < end.
// The boundary difference from MatchesBooker is part of the observable
// contract and must not be unified.
func (s State) MatchesOwner(b *Booking, now time.Time) bool {
	if s == StateCurrent {
		return b.Start.Before(now) && b.End.After(now)
	}
	return s.matchesCommon(b, now)
}

func (s State) matchesCommon(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}
