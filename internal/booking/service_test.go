package booking

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoonTwilightShadow/shareit/internal/item"
	"github.com/MoonTwilightShadow/shareit/internal/pkg/paging"
	"github.com/MoonTwilightShadow/shareit/internal/user"
)

type memRepo struct {
	bookings map[string]*Booking
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: map[string]*Booking{}}
}

func (r *memRepo) Create(_ context.Context, b *Booking) error {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, b *Booking) error {
	stored, ok := r.bookings[b.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = b.Status
	return nil
}

func (r *memRepo) ListByBooker(_ context.Context, bookerID string, state State, now time.Time, page paging.Params) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.BookerID == bookerID && state.MatchesBooker(b, now) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sortBookings(out, state == StateCurrent)
	return window(out, page), nil
}

func (r *memRepo) ListByOwner(_ context.Context, ownerID string, state State, now time.Time, page paging.Params) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.ItemOwnerID == ownerID && state.MatchesOwner(b, now) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sortBookings(out, false)
	return window(out, page), nil
}

func (r *memRepo) LastForItem(_ context.Context, itemID string, now time.Time) (*Booking, error) {
	var best *Booking
	for _, b := range r.bookings {
		if b.ItemID != itemID || b.Status != StatusApproved || b.Start.After(now) {
			continue
		}
		if best == nil || b.End.After(best.End) {
			best = b
		}
	}
	return best, nil
}

func (r *memRepo) NextForItem(_ context.Context, itemID string, now time.Time) (*Booking, error) {
	var best *Booking
	for _, b := range r.bookings {
		if b.ItemID != itemID || b.Status != StatusApproved || !b.Start.After(now) {
			continue
		}
		if best == nil || b.Start.Before(best.Start) {
			best = b
		}
	}
	return best, nil
}

func (r *memRepo) HasCompleted(_ context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID && b.Status == StatusApproved && !b.End.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func sortBookings(bs []*Booking, ascending bool) {
	sort.Slice(bs, func(i, j int) bool {
		if ascending {
			return bs[i].Start.Before(bs[j].Start)
		}
		return bs[i].Start.After(bs[j].Start)
	})
}

func window(bs []*Booking, page paging.Params) []*Booking {
	limit, offset := page.LimitOffset()
	if offset >= uint64(len(bs)) {
		return nil
	}
	bs = bs[offset:]
	if uint64(len(bs)) > limit {
		bs = bs[:limit]
	}
	return bs
}

type stubItems struct {
	items map[string]*item.Item
}

func (s stubItems) Get(_ context.Context, id string) (*item.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

type stubUsers struct {
	users map[string]*user.User
}

func (s stubUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fixture struct {
	repo *memRepo
	svc  *service
	now  time.Time

	ownerID  string
	bookerID string
	itemID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:     newMemRepo(),
		now:      time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		ownerID:  uuid.NewString(),
		bookerID: uuid.NewString(),
		itemID:   uuid.NewString(),
	}

	items := stubItems{items: map[string]*item.Item{
		f.itemID: {ID: f.itemID, Name: "drill", Available: true, OwnerID: f.ownerID},
	}}
	users := stubUsers{users: map[string]*user.User{
		f.ownerID:  {ID: f.ownerID, Name: "owner"},
		f.bookerID: {ID: f.bookerID, Name: "booker"},
	}}

	f.svc = NewService(f.repo, items, users).(*service)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) create(t *testing.T, start, end time.Time) *Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), CreateRequest{ItemID: f.itemID, Start: start, End: end}, f.bookerID)
	require.NoError(t, err)
	return b
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := f.now.Add(time.Hour)
	end := f.now.Add(2 * time.Hour)

	t.Run("success leaves booking waiting", func(t *testing.T) {
		b := f.create(t, start, end)
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, "drill", b.ItemName)
		assert.Equal(t, "booker", b.BookerName)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{ItemID: f.itemID, Start: end, End: start}, f.bookerID)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("zero-length range", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{ItemID: f.itemID, Start: start, End: start}, f.bookerID)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{ItemID: uuid.NewString(), Start: start, End: end}, f.bookerID)
		assert.ErrorIs(t, err, item.ErrNotFound)
	})

	t.Run("unavailable item", func(t *testing.T) {
		g := newFixture(t)
		g.svc.items.(stubItems).items[g.itemID].Available = false
		_, err := g.svc.Create(ctx, CreateRequest{ItemID: g.itemID, Start: start, End: end}, g.bookerID)
		assert.ErrorIs(t, err, ErrItemUnavailable)
	})

	t.Run("owner booking own item reads as missing", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{ItemID: f.itemID, Start: start, End: end}, f.ownerID)
		assert.ErrorIs(t, err, item.ErrNotFound)
	})

	t.Run("unknown booker", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{ItemID: f.itemID, Start: start, End: end}, uuid.NewString())
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestApproveBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("approve then re-decide", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, f.now.Add(time.Hour), f.now.Add(2*time.Hour))

		approved, err := f.svc.Approve(ctx, f.ownerID, b.ID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)

		_, err = f.svc.Approve(ctx, f.ownerID, b.ID, false)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("reject", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, f.now.Add(time.Hour), f.now.Add(2*time.Hour))

		rejected, err := f.svc.Approve(ctx, f.ownerID, b.ID, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, rejected.Status)
	})

	t.Run("non-owner reads as missing", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, f.now.Add(time.Hour), f.now.Add(2*time.Hour))

		_, err := f.svc.Approve(ctx, f.bookerID, b.ID, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Approve(ctx, f.ownerID, uuid.NewString(), true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetBookingByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t, f.now.Add(time.Hour), f.now.Add(2*time.Hour))

	got, err := f.svc.GetByID(ctx, b.ID, f.bookerID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.svc.GetByID(ctx, b.ID, f.ownerID)
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, b.ID, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	page := paging.Params{From: 0, Size: 10}

	past := f.create(t, f.now.Add(-3*time.Hour), f.now.Add(-2*time.Hour))
	running := f.create(t, f.now.Add(-time.Hour), f.now.Add(time.Hour))
	future := f.create(t, f.now.Add(time.Hour), f.now.Add(2*time.Hour))

	for _, b := range []*Booking{past, running} {
		_, err := f.svc.Approve(ctx, f.ownerID, b.ID, true)
		require.NoError(t, err)
	}

	t.Run("all descending by start", func(t *testing.T) {
		got, err := f.svc.ListByBooker(ctx, f.bookerID, "ALL", page)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, future.ID, got[0].ID)
		assert.Equal(t, past.ID, got[2].ID)
	})

	t.Run("future only", func(t *testing.T) {
		got, err := f.svc.ListByBooker(ctx, f.bookerID, "FUTURE", page)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, future.ID, got[0].ID)
	})

	t.Run("current for both sides", func(t *testing.T) {
		got, err := f.svc.ListByBooker(ctx, f.bookerID, "CURRENT", page)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, running.ID, got[0].ID)

		got, err = f.svc.ListByOwner(ctx, f.ownerID, "CURRENT", page)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, running.ID, got[0].ID)
	})

	t.Run("waiting only", func(t *testing.T) {
		got, err := f.svc.ListByOwner(ctx, f.ownerID, "WAITING", page)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, future.ID, got[0].ID)
	})

	t.Run("pagination snaps to page boundary", func(t *testing.T) {
		got, err := f.svc.ListByBooker(ctx, f.bookerID, "ALL", paging.Params{From: 3, Size: 2})
		require.NoError(t, err)
		// from=3 with size=2 lands on the second page, rows [2, 4)
		require.Len(t, got, 1)
		assert.Equal(t, past.ID, got[0].ID)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		got, err := f.svc.ListByOwner(ctx, f.ownerID, "REJECTED", page)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unknown state", func(t *testing.T) {
		_, err := f.svc.ListByBooker(ctx, f.bookerID, "BOGUS", page)
		assert.ErrorIs(t, err, ErrUnknownState)
	})

	t.Run("lowercase state is rejected", func(t *testing.T) {
		_, err := f.svc.ListByBooker(ctx, f.bookerID, "all", page)
		assert.ErrorIs(t, err, ErrUnknownState)
	})

	t.Run("invalid paging", func(t *testing.T) {
		_, err := f.svc.ListByBooker(ctx, f.bookerID, "ALL", paging.Params{From: -1, Size: 10})
		assert.ErrorIs(t, err, paging.ErrInvalid)

		_, err = f.svc.ListByOwner(ctx, f.ownerID, "ALL", paging.Params{From: 0, Size: 0})
		assert.ErrorIs(t, err, paging.ErrInvalid)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.ListByBooker(ctx, uuid.NewString(), "ALL", page)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestItemCheckerAdapter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	last := f.create(t, f.now.Add(-2*time.Hour), f.now.Add(-time.Hour))
	next := f.create(t, f.now.Add(time.Hour), f.now.Add(2*time.Hour))
	for _, b := range []*Booking{last, next} {
		_, err := f.svc.Approve(ctx, f.ownerID, b.ID, true)
		require.NoError(t, err)
	}
	// waiting bookings never surface through the checker
	f.create(t, f.now.Add(3*time.Hour), f.now.Add(4*time.Hour))

	checker := NewItemChecker(f.repo)

	ref, err := checker.LastApproved(ctx, f.itemID, f.now)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, last.ID, ref.ID)
	assert.Equal(t, f.bookerID, ref.BookerID)

	ref, err = checker.NextApproved(ctx, f.itemID, f.now)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, next.ID, ref.ID)

	ok, err := checker.HasCompleted(ctx, f.itemID, f.bookerID, f.now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.HasCompleted(ctx, f.itemID, f.ownerID, f.now)
	require.NoError(t, err)
	assert.False(t, ok)

	ref, err = checker.LastApproved(ctx, uuid.NewString(), f.now)
	require.NoError(t, err)
	assert.Nil(t, ref)
}
