package itemrequest

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MoonTwilightShadow/shareit/internal/item"
	"github.com/MoonTwilightShadow/shareit/internal/pkg/paging"
	"github.com/MoonTwilightShadow/shareit/internal/user"
)

// UserGetter is the slice of the user service this package needs.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemLister resolves the items created in response to a request.
type ItemLister interface {
	ListByRequest(ctx context.Context, requestID string) ([]*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, requestorID, description string) (*Request, error)
	GetOwn(ctx context.Context, requestorID string) ([]*WithItems, error)
	GetAll(ctx context.Context, userID string, page paging.Params) ([]*WithItems, error)
	GetByID(ctx context.Context, requestID, userID string) (*WithItems, error)
}

type service struct {
	repo  Repository
	users UserGetter
	items ItemLister
}

func NewService(repo Repository, users UserGetter, items ItemLister) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
	}
}

func (s *service) Create(ctx context.Context, requestorID, description string) (*Request, error) {
	log.Info().Str("requestor_id", requestorID).Msg("create item request")

	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	requestor, err := s.users.GetByID(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Description: description,
		RequestorID: requestor.ID,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) GetOwn(ctx context.Context, requestorID string) ([]*WithItems, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) GetAll(ctx context.Context, userID string, page paging.Params) ([]*WithItems, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, requestID, userID string) (*WithItems, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &WithItems{Request: *req, Items: items}, nil
}

func (s *service) attachItems(ctx context.Context, requests []*Request) ([]*WithItems, error) {
	result := make([]*WithItems, 0, len(requests))
	for _, req := range requests {
		items, err := s.items.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &WithItems{Request: *req, Items: items})
	}
	return result, nil
}

// checker adapts the repository to item.RequestChecker so item creation can
// validate its optional request reference.
type checker struct {
	repo Repository
}

func NewChecker(repo Repository) item.RequestChecker {
	return &checker{repo: repo}
}

func (c *checker) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := c.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
