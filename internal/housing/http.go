// Copyright (c) 2026 ApnaBasera. All rights reserved.

/*
HTTP delivery layer for the listing catalogue.

Browsing is public; management endpoints require an authenticated admin.

# Architecture

The handler acts as a thin mediation layer between the web and the domain
service. Response envelopes carry a `success` flag alongside the payload,
matching what existing clients parse.
*/

package housing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apnabasera/basera/internal/platform/middleware"
	requestutil "github.com/apnabasera/basera/internal/platform/request"
	"github.com/apnabasera/basera/internal/platform/respond"
	"github.com/apnabasera/basera/internal/platform/validate"
	"github.com/apnabasera/basera/pkg/convert"
	"github.com/apnabasera/basera/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements listing-related HTTP endpoints.
type Handler struct {
	housingService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{housingService: service}
}

// Routes returns a [chi.Router] configured with listing routes.
//
// # Endpoints
//   - GET  /               : Public search with filters and pagination.
//   - GET  /{id}           : Public single-listing fetch.
//   - POST /               : Admin: publish a listing.
//   - PUT  /{id}           : Admin: update a listing.
//   - DELETE /{id}         : Admin: remove a listing.
//   - GET  /stats/overview : Admin: dashboard aggregates.
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Admin endpoints
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireAdmin)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.remove)
		r.Get("/stats/overview", handler.stats)
	})

	return router
}

// # Request Payloads

type createHouseRequest struct {
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Beds        int     `json:"beds"`
	Baths       int     `json:"baths"`
	ImageURL    string  `json:"img"`
}

type updateHouseRequest struct {
	Title       *string  `json:"title"`
	Location    *string  `json:"location"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	Beds        *int     `json:"beds"`
	Baths       *int     `json:"baths"`
	ImageURL    *string  `json:"img"`
}

// # Response Payloads

type houseListResponse struct {
	Success    bool            `json:"success"`
	Houses     []*House        `json:"houses"`
	Pagination pagination.Meta `json:"pagination"`
}

type houseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	House   *House `json:"house"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type statsResponse struct {
	Success bool   `json:"success"`
	Stats   *Stats `json:"stats"`
}

/*
list returns listings filtered by the query string.

GET /api/houses

Query parameters: page, limit, type, location, minPrice, maxPrice, beds,
baths, search. All optional.

Response:
  - 200: houseListResponse with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := Filter{
		Type:     query.Get("type"),
		Location: query.Get("location"),
		MinPrice: convert.ToFloat64(query.Get("minPrice")),
		MaxPrice: convert.ToFloat64(query.Get("maxPrice")),
		Beds:     convert.ToInt(query.Get("beds")),
		Baths:    convert.ToInt(query.Get("baths")),
		Search:   query.Get("search"),
	}

	params := pagination.FromRequest(request)

	houses, meta, err := handler.housingService.Browse(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, houseListResponse{
		Success:    true,
		Houses:     houses,
		Pagination: meta,
	})
}

/*
get returns a single listing.

GET /api/houses/{id}

Response:
  - 200: houseResponse
  - 404: "House not found"
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	house, err := handler.housingService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, houseResponse{Success: true, House: house})
}

/*
create publishes a new listing.

POST /api/houses  (admin)

Request:
  - Body: createHouseRequest

Response:
  - 201: houseResponse with "House added successfully!"
  - 400: First violated validation rule
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createHouseRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	house, err := handler.housingService.Create(request.Context(), CreateInput{
		Title:       input.Title,
		Location:    input.Location,
		Price:       input.Price,
		Description: input.Description,
		Type:        input.Type,
		Beds:        input.Beds,
		Baths:       input.Baths,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, houseResponse{
		Success: true,
		Message: "House added successfully!",
		House:   house,
	})
}

/*
update applies a partial update to a listing.

PUT /api/houses/{id}  (admin)

Request:
  - Body: updateHouseRequest (absent fields are left untouched)

Response:
  - 200: houseResponse with "House updated successfully!"
  - 404: "House not found"
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateHouseRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	house, err := handler.housingService.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		Title:       input.Title,
		Location:    input.Location,
		Price:       input.Price,
		Description: input.Description,
		Type:        input.Type,
		Beds:        input.Beds,
		Baths:       input.Baths,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, houseResponse{
		Success: true,
		Message: "House updated successfully!",
		House:   house,
	})
}

/*
remove deletes a listing.

DELETE /api/houses/{id}  (admin)

Response:
  - 200: "House deleted successfully!"
  - 404: "House not found"
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.housingService.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deleteResponse{
		Success: true,
		Message: "House deleted successfully!",
	})
}

/*
stats returns the admin dashboard aggregates.

GET /api/houses/stats/overview  (admin)

Response:
  - 200: statsResponse
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.housingService.Overview(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, statsResponse{Success: true, Stats: stats})
}
