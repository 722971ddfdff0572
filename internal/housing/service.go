// Copyright (c) 2026 ApnaBasera. All rights reserved.

package housing

import (
	"context"

	"github.com/apnabasera/basera/internal/platform/apperr"
	"github.com/apnabasera/basera/internal/platform/validate"
	"github.com/apnabasera/basera/pkg/pagination"
	"github.com/apnabasera/basera/pkg/uuidv7"
)

// Service implements the listing catalogue use cases.
type Service struct {
	houseRepository HouseRepository
}

// NewService constructs a new housing [Service].
func NewService(houseRepo HouseRepository) *Service {
	return &Service{houseRepository: houseRepo}
}

// # Browse Flow

/*
Browse returns a page of listings matching the filter, newest first.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - []*House: Page of listings
  - pagination.Meta: Navigation metadata
  - error: Storage failures
*/
func (service *Service) Browse(context context.Context, filter Filter, params pagination.Params) ([]*House, pagination.Meta, error) {
	houses, total, err := service.houseRepository.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, apperr.InternalWithMessage(err, "Error fetching houses")
	}

	return houses, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Get returns a single listing by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *House: Hydrated entity
  - error: 404 "House not found" or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*House, error) {
	house, err := service.houseRepository.FindByID(context, id)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.InternalWithMessage(err, "Error fetching house")
	}
	return house, nil
}

// # Admin Management Flow

// CreateInput holds the data required to publish a new listing.
type CreateInput struct {
	Title       string
	Location    string
	Price       float64
	Description string
	Type        string
	Beds        int
	Baths       int
	ImageURL    string
}

/*
Create validates and persists a brand-new listing.

Description: All of title, location, price, type, beds and baths are
required; description and image are optional.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *House: Created entity
  - error: Validation failures (first violated rule) or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*House, error) {
	const requiredMessage = "All required fields must be provided (title, location, price, type, beds, baths)"

	validator := &validate.Validator{}
	validator.Required(input.Title, requiredMessage).
		Required(input.Location, requiredMessage).
		Required(input.Type, requiredMessage).
		Custom(input.Price == 0 || input.Beds == 0 || input.Baths == 0, requiredMessage).
		OneOf(input.Type, HouseTypes, "Type must be one of: PG, Flat, Hostel").
		Positive(input.Price, "Price must be a positive number").
		Positive(float64(input.Beds), "Beds must be a positive number").
		Positive(float64(input.Baths), "Baths must be a positive number")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	house := &House{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Location:    input.Location,
		Price:       input.Price,
		Description: input.Description,
		Type:        HouseType(input.Type),
		Beds:        input.Beds,
		Baths:       input.Baths,
		ImageURL:    input.ImageURL,
	}

	if err := service.houseRepository.Create(context, house); err != nil {
		return nil, apperr.InternalWithMessage(err, "Error adding house")
	}

	return house, nil
}

// UpdateInput holds a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Location    *string
	Price       *float64
	Description *string
	Type        *string
	Beds        *int
	Baths       *int
	ImageURL    *string
}

/*
Update applies a partial update to an existing listing.

Description: Loads the entity, validates only the provided fields, applies
them, and persists the full row.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *House: Updated entity
  - error: 404 if missing, validation failures, or storage errors
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*House, error) {
	house, err := service.houseRepository.FindByID(context, id)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.InternalWithMessage(err, "Error updating house")
	}

	// Validate only what the caller provided.
	validator := &validate.Validator{}
	if input.Type != nil {
		validator.OneOf(*input.Type, HouseTypes, "Type must be one of: PG, Flat, Hostel")
	}
	if input.Price != nil {
		validator.Positive(*input.Price, "Price must be a positive number")
	}
	if input.Beds != nil {
		validator.Positive(float64(*input.Beds), "Beds must be a positive number")
	}
	if input.Baths != nil {
		validator.Positive(float64(*input.Baths), "Baths must be a positive number")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Title != nil {
		house.Title = *input.Title
	}
	if input.Location != nil {
		house.Location = *input.Location
	}
	if input.Price != nil {
		house.Price = *input.Price
	}
	if input.Description != nil {
		house.Description = *input.Description
	}
	if input.Type != nil {
		house.Type = HouseType(*input.Type)
	}
	if input.Beds != nil {
		house.Beds = *input.Beds
	}
	if input.Baths != nil {
		house.Baths = *input.Baths
	}
	if input.ImageURL != nil {
		house.ImageURL = *input.ImageURL
	}

	if err := service.houseRepository.Update(context, house); err != nil {
		return nil, apperr.InternalWithMessage(err, "Error updating house")
	}

	return house, nil
}

/*
Delete removes a listing permanently.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: 404 if missing or storage errors
*/
func (service *Service) Delete(context context.Context, id string) error {
	if _, err := service.houseRepository.FindByID(context, id); err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return apperr.InternalWithMessage(err, "Error deleting house")
	}

	if err := service.houseRepository.Delete(context, id); err != nil {
		return apperr.InternalWithMessage(err, "Error deleting house")
	}

	return nil
}

/*
Overview computes the admin dashboard statistics.

Parameters:
  - context: context.Context

Returns:
  - *Stats: Totals, per-type distribution, and price aggregates
  - error: Storage failures
*/
func (service *Service) Overview(context context.Context) (*Stats, error) {
	stats, err := service.houseRepository.Stats(context)
	if err != nil {
		return nil, apperr.InternalWithMessage(err, "Error fetching statistics")
	}
	return stats, nil
}
