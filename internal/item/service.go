package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MoonTwilightShadow/shareit/internal/pkg/paging"
	"github.com/MoonTwilightShadow/shareit/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// UserGetter is the slice of the user service this package needs.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, ownerID string) (*Item, error)
	Update(ctx context.Context, id string, req UpdateRequest, ownerID string) (*Item, error)
	// Get returns the bare item without view annotations.
	Get(ctx context.Context, id string) (*Item, error)
	// GetDetail returns the item with comments, plus last/next approved
	// bookings when the caller owns the item.
	GetDetail(ctx context.Context, id, callerID string) (*Detail, error)
	GetByOwner(ctx context.Context, ownerID string, page paging.Params) ([]*Detail, error)
	Search(ctx context.Context, text string, page paging.Params) ([]*Item, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    UserGetter
	requests RequestChecker
	bookings BookingChecker

	now func() time.Time
}

func NewService(repo Repository, comments CommentRepository, users UserGetter, requests RequestChecker, bookings BookingChecker) Service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		requests: requests,
		bookings: bookings,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, ownerID string) (*Item, error) {
	log.Info().Str("owner_id", ownerID).Msg("create item")

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if req.RequestID != nil {
		ok, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRequestNotFound
		}
	}

	i := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, ownerID string) (*Item, error) {
	log.Info().Str("item_id", id).Msg("update item")

	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if i.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		i.Name = *req.Name
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Get(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetDetail(ctx context.Context, id, callerID string) (*Detail, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, i, callerID)
}

func (s *service) GetByOwner(ctx context.Context, ownerID string, page paging.Params) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, 0, len(items))
	for _, i := range items {
		d, err := s.annotate(ctx, i, ownerID)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// annotate attaches comments, and the last/next approved bookings when the
// caller is the item's owner. Missing bookings are simply left nil.
func (s *service) annotate(ctx context.Context, i *Item, callerID string) (*Detail, error) {
	d := &Detail{Item: *i}
	now := s.now()

	if i.OwnerID == callerID {
		last, err := s.bookings.LastApproved(ctx, i.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextApproved(ctx, i.ID, now)
		if err != nil {
			return nil, err
		}
		d.LastBooking = last
		d.NextBooking = next
	}

	comments, err := s.comments.ListByItem(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	d.Comments = comments

	return d, nil
}

func (s *service) Search(ctx context.Context, text string, page paging.Params) ([]*Item, error) {
	if text == "" {
		return []*Item{}, nil
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Search(ctx, text, page)
}

func (s *service) Delete(ctx context.Context, id string) error {
	log.Info().Str("item_id", id).Msg("delete item")

	return s.repo.Delete(ctx, id)
}

func (s *service) AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	now := s.now()
	completed, err := s.bookings.HasCompleted(ctx, i.ID, author.ID, now)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrCommentNotAllowed
	}

	c := &Comment{
		Text:       text,
		ItemID:     i.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
