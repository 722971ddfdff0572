// Copyright (c) 2026 ApnaBasera. All rights reserved.

package housing

import (
	"context"
)

// # House Data Access

// HouseRepository defines the data access contract for listings.
type HouseRepository interface {

	/*
		List returns a page of listings matching the filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*House: Page of matching listings
		  - int: Total count matching the filter (for pagination)
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*House, int, error)

	/*
		FindByID returns the listing with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *House: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*House, error)

	/*
		Create persists a brand-new listing.

		Parameters:
		  - context: context.Context
		  - house: *House

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, house *House) error

	/*
		Update persists changes to an existing listing.

		Parameters:
		  - context: context.Context
		  - house: *House

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, house *House) error

	/*
		Delete removes a listing permanently.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		Stats computes the dashboard aggregates across all listings.

		Parameters:
		  - context: context.Context

		Returns:
		  - *Stats: Totals, per-type distribution, and price aggregates
		  - error: Database execution errors
	*/
	Stats(context context.Context) (*Stats, error)
}
