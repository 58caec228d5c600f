package http

import (
	"time"

	itemHttp "github.com/MoonTwilightShadow/shareit/internal/item/http"
	"github.com/MoonTwilightShadow/shareit/internal/itemrequest"
)

type RequestResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func NewRequestResponse(r *itemrequest.Request) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
	}
}

type RequestWithItemsResponse struct {
	RequestResponse
	Items []itemHttp.ItemResponse `json:"items"`
}

func NewRequestWithItemsResponse(r *itemrequest.WithItems) RequestWithItemsResponse {
	resp := RequestWithItemsResponse{
		RequestResponse: NewRequestResponse(&r.Request),
		Items:           make([]itemHttp.ItemResponse, 0, len(r.Items)),
	}
	for _, i := range r.Items {
		resp.Items = append(resp.Items, itemHttp.NewItemResponse(i))
	}
	return resp
}

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}
