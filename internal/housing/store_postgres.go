// Copyright (c) 2026 ApnaBasera. All rights reserved.

// PostgreSQL storage layer for the housing domain.

package housing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apnabasera/basera/internal/platform/apperr"
)

// PostgresHouseRepository implements the HouseRepository interface using pgx.
type PostgresHouseRepository struct {
	pool *pgxpool.Pool
}

// NewHouseRepository creates a new PostgreSQL implementation of the HouseRepository.
func NewHouseRepository(pool *pgxpool.Pool) *PostgresHouseRepository {
	return &PostgresHouseRepository{pool: pool}
}

/*
List returns a page of listings matching the filter, newest first.

Description: Builds a dynamic WHERE clause from the populated filter fields
and uses a window function to obtain the total match count in the same
round-trip. Ordering is by the time-sortable primary key, descending.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*House: Page of matching listings
  - int: Total count matching the filter
  - error: Database execution errors
*/
func (repository *PostgresHouseRepository) List(context context.Context, filter Filter, limit, offset int) ([]*House, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	// Window function for the total count, same round-trip as the page.
	queryBuilder.WriteString(`
		SELECT id, title, location, price, description, type, beds, baths, image_url,
		       created_at, updated_at,
		       COUNT(*) OVER() AS total_count
		FROM houses
		WHERE 1=1`)

	if filter.Type != "" && filter.Type != "all" {
		queryBuilder.WriteString(fmt.Sprintf(" AND type = $%d", argID))
		args = append(args, filter.Type)
		argID++
	}

	if filter.Location != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND location ILIKE $%d", argID))
		args = append(args, "%"+filter.Location+"%")
		argID++
	}

	if filter.MinPrice > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND price >= $%d", argID))
		args = append(args, filter.MinPrice)
		argID++
	}

	if filter.MaxPrice > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND price <= $%d", argID))
		args = append(args, filter.MaxPrice)
		argID++
	}

	if filter.Beds > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND beds = $%d", argID))
		args = append(args, filter.Beds)
		argID++
	}

	if filter.Baths > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND baths = $%d", argID))
		args = append(args, filter.Baths)
		argID++
	}

	// Free-text search across title, description and location.
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)",
			argID, argID, argID,
		))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_house_repo_list_failed: %w", err)
	}
	defer rows.Close()

	houses := make([]*House, 0)
	total := 0

	for rows.Next() {
		house := &House{}
		if err := rows.Scan(
			&house.ID,
			&house.Title,
			&house.Location,
			&house.Price,
			&house.Description,
			&house.Type,
			&house.Beds,
			&house.Baths,
			&house.ImageURL,
			&house.CreatedAt,
			&house.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_house_repo_list_scan_failed: %w", err)
		}
		houses = append(houses, house)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_house_repo_list_rows_failed: %w", err)
	}

	return houses, total, nil
}

/*
FindByID retrieves a listing by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *House: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresHouseRepository) FindByID(context context.Context, id string) (*House, error) {
	const query = `
		SELECT id, title, location, price, description, type, beds, baths, image_url,
		       created_at, updated_at
		FROM houses
		WHERE id = $1`

	house := &House{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&house.ID,
		&house.Title,
		&house.Location,
		&house.Price,
		&house.Description,
		&house.Type,
		&house.Beds,
		&house.Baths,
		&house.ImageURL,
		&house.CreatedAt,
		&house.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("House")
		}
		return nil, fmt.Errorf("postgres_house_repo_find_by_id_failed: %w", err)
	}

	return house, nil
}

/*
Create persists a new listing record into the houses table.

Parameters:
  - context: context.Context
  - house: *House (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresHouseRepository) Create(context context.Context, house *House) error {
	const query = `
		INSERT INTO houses (
			id, title, location, price, description, type, beds, baths, image_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	if house.CreatedAt.IsZero() {
		house.CreatedAt = now
	}
	house.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		house.ID,
		house.Title,
		house.Location,
		house.Price,
		house.Description,
		house.Type,
		house.Beds,
		house.Baths,
		house.ImageURL,
		house.CreatedAt,
		house.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_house_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to an existing listing.

Description: Full-row update; the service layer applies partial input onto
the loaded entity first, so zero-value clobbering is not a concern here.

Parameters:
  - context: context.Context
  - house: *House

Returns:
  - error: Update failures
*/
func (repository *PostgresHouseRepository) Update(context context.Context, house *House) error {
	const query = `
		UPDATE houses
		SET title = $2, location = $3, price = $4, description = $5,
		    type = $6, beds = $7, baths = $8, image_url = $9, updated_at = $10
		WHERE id = $1`

	house.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		house.ID,
		house.Title,
		house.Location,
		house.Price,
		house.Description,
		house.Type,
		house.Beds,
		house.Baths,
		house.ImageURL,
		house.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_house_repo_update_failed: %w", err)
	}

	return nil
}

/*
Delete removes a listing permanently.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresHouseRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM houses WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_house_repo_delete_failed: %w", err)
	}
	return nil
}

/*
Stats computes the dashboard aggregates across all listings.

Description: One query for the per-type distribution and one for the price
aggregates. Empty tables yield zeroed aggregates rather than NULL errors.

Parameters:
  - context: context.Context

Returns:
  - *Stats: Totals, per-type distribution, and price aggregates
  - error: Database execution errors
*/
func (repository *PostgresHouseRepository) Stats(context context.Context) (*Stats, error) {
	stats := &Stats{TypeDistribution: make([]TypeCount, 0)}

	const distributionQuery = `
		SELECT type, COUNT(*)
		FROM houses
		GROUP BY type
		ORDER BY type`

	rows, err := repository.pool.Query(context, distributionQuery)
	if err != nil {
		return nil, fmt.Errorf("postgres_house_repo_stats_distribution_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry TypeCount
		if err := rows.Scan(&entry.Type, &entry.Count); err != nil {
			return nil, fmt.Errorf("postgres_house_repo_stats_scan_failed: %w", err)
		}
		stats.TypeDistribution = append(stats.TypeDistribution, entry)
		stats.TotalHouses += entry.Count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_house_repo_stats_rows_failed: %w", err)
	}

	const priceQuery = `
		SELECT COALESCE(AVG(price), 0), COALESCE(MIN(price), 0), COALESCE(MAX(price), 0)
		FROM houses`

	err = repository.pool.QueryRow(context, priceQuery).Scan(
		&stats.PriceStats.AvgPrice,
		&stats.PriceStats.MinPrice,
		&stats.PriceStats.MaxPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_house_repo_stats_price_failed: %w", err)
	}

	return stats, nil
}
