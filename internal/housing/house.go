// Copyright (c) 2026 ApnaBasera. All rights reserved.

/*
Package housing implements the house-listing catalogue for ApnaBasera.

It defines the House entity and the browse/manage lifecycle: public search
with filters and pagination, and admin-only create/update/delete plus a
dashboard statistics overview.
*/
package housing

import (
	"time"
)

// # Domain Entities

// HouseType enumerates the accepted accommodation categories.
type HouseType string

const (
	TypePG     HouseType = "PG"
	TypeFlat   HouseType = "Flat"
	TypeHostel HouseType = "Hostel"
)

// HouseTypes lists the accepted values for validation messages.
var HouseTypes = []string{string(TypePG), string(TypeFlat), string(TypeHostel)}

// IsValid reports whether the type is one of the accepted categories.
func (houseType HouseType) IsValid() bool {
	switch houseType {
	case TypePG, TypeFlat, TypeHostel:
		return true
	}
	return false
}

// House represents a single accommodation listing.
//
// Price is a monthly amount in rupees. ImageURL is an already-hosted asset
// URL; this service stores the reference, not the bytes.
type House struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Type        HouseType `json:"type"`
	Beds        int       `json:"beds"`
	Baths       int       `json:"baths"`
	ImageURL    string    `json:"img"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Query Types

// Filter narrows the listing search. Zero values mean "no constraint".
type Filter struct {
	Type     string  // exact category; "all" and "" disable the filter
	Location string  // case-insensitive substring
	MinPrice float64 // inclusive lower bound
	MaxPrice float64 // inclusive upper bound
	Beds     int     // exact match
	Baths    int     // exact match
	Search   string  // case-insensitive substring over title, description, location
}

// Stats is the admin dashboard overview.
type Stats struct {
	TotalHouses      int             `json:"totalHouses"`
	TypeDistribution []TypeCount     `json:"typeDistribution"`
	PriceStats       PriceAggregates `json:"priceStats"`
}

// TypeCount is one row of the per-category distribution.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// PriceAggregates summarizes the price range across all listings.
type PriceAggregates struct {
	AvgPrice float64 `json:"avgPrice"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
}
