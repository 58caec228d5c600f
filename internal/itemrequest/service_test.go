package itemrequest

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

type memRequestRepo struct {
	requests map[string]*Request
	clock    time.Time
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{
		requests: map[string]*Request{},
		clock:    time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *memRequestRepo) Create(_ context.Context, req *Request) error {
	req.ID = uuid.NewString()
	r.clock = r.clock.Add(time.Minute)
	req.Created = r.clock
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *memRequestRepo) GetByID(_ context.Context, id string) (*Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *memRequestRepo) ListByRequestor(_ context.Context, requestorID string) ([]*Request, error) {
	var out []*Request
	for _, req := range r.requests {
		if req.RequestorID == requestorID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memRequestRepo) ListOthers(_ context.Context, userID string, page paging.Params) ([]*Request, error) {
	var out []*Request
	for _, req := range r.requests {
		if req.RequestorID != userID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)

	limit, offset := page.LimitOffset()
	if offset >= uint64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortNewestFirst(reqs []*Request) {
	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].Created.After(reqs[j].Created)
	})
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

type stubItems struct {
	byRequest map[string][]*item.Item
}

func (s stubItems) ListByRequest(_ context.Context, requestID string) ([]*item.Item, error) {
	return s.byRequest[requestID], nil
}

type requestFixture struct {
	repo  *memRequestRepo
	items stubItems
	svc   Service

	aliceID string
	bobID   string
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()

	f := &requestFixture{
		repo:    newMemRequestRepo(),
		items:   stubItems{byRequest: map[string][]*item.Item{}},
		aliceID: uuid.NewString(),
		bobID:   uuid.NewString(),
	}

	users := stubUsers{users: map[string]*user.User{
		f.aliceID: {ID: f.aliceID, Name: "alice"},
		f.bobID:   {ID: f.bobID, Name: "bob"},
	}}

	f.svc = NewService(f.repo, users, f.items)
	return f
}

func (f *requestFixture) create(t *testing.T, requestorID, description string) *Request {
	t.Helper()
	req, err := f.svc.Create(context.Background(), requestorID, description)
	require.NoError(t, err)
	return req
}

func TestCreateRequest(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	req := f.create(t, f.aliceID, "need a drill")
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, f.aliceID, req.RequestorID)
	assert.False(t, req.Created.IsZero())

	_, err := f.svc.Create(ctx, f.aliceID, "   ")
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	_, err = f.svc.Create(ctx, uuid.NewString(), "need a saw")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestGetOwnRequests(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	first := f.create(t, f.aliceID, "need a drill")
	second := f.create(t, f.aliceID, "need a saw")
	f.create(t, f.bobID, "need a ladder")

	f.items.byRequest[first.ID] = []*item.Item{{ID: uuid.NewString(), Name: "drill"}}

	got, err := f.svc.GetOwn(ctx, f.aliceID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Empty(t, got[0].Items)
	assert.Equal(t, first.ID, got[1].ID)
	require.Len(t, got[1].Items, 1)
	assert.Equal(t, "drill", got[1].Items[0].Name)

	_, err = f.svc.GetOwn(ctx, uuid.NewString())
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestGetAllRequests(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	f.create(t, f.aliceID, "need a drill")
	bobs := f.create(t, f.bobID, "need a ladder")

	t.Run("excludes the caller's own requests", func(t *testing.T) {
		got, err := f.svc.GetAll(ctx, f.aliceID, paging.Params{From: 0, Size: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, bobs.ID, got[0].ID)
	})

	t.Run("invalid paging", func(t *testing.T) {
		_, err := f.svc.GetAll(ctx, f.aliceID, paging.Params{From: 0, Size: -1})
		assert.ErrorIs(t, err, paging.ErrInvalid)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.GetAll(ctx, uuid.NewString(), paging.Params{From: 0, Size: 10})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestGetRequestByID(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	req := f.create(t, f.aliceID, "need a drill")
	f.items.byRequest[req.ID] = []*item.Item{{ID: uuid.NewString(), Name: "drill"}}

	// any known user may read any request
	got, err := f.svc.GetByID(ctx, req.ID, f.bobID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)
	require.Len(t, got.Items, 1)

	_, err = f.svc.GetByID(ctx, uuid.NewString(), f.bobID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.GetByID(ctx, req.ID, uuid.NewString())
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestRequestChecker(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	req := f.create(t, f.aliceID, "need a drill")
	c := NewChecker(f.repo)

	ok, err := c.Exists(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}
