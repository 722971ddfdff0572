// Copyright (c) 2026 ApnaBasera. All rights reserved.

package housing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnabasera/basera/internal/housing"
	"github.com/apnabasera/basera/internal/platform/apperr"
	"github.com/apnabasera/basera/pkg/pagination"
)

// # Test Doubles

// fakeHouseRepository is an in-memory HouseRepository preserving insertion order.
type fakeHouseRepository struct {
	houses []*housing.House

	listErr  error
	statsErr error

	lastLimit  int
	lastOffset int
	lastFilter housing.Filter
}

func (repo *fakeHouseRepository) List(_ context.Context, filter housing.Filter, limit, offset int) ([]*housing.House, int, error) {
	if repo.listErr != nil {
		return nil, 0, repo.listErr
	}
	repo.lastFilter, repo.lastLimit, repo.lastOffset = filter, limit, offset

	total := len(repo.houses)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return repo.houses[offset:end], total, nil
}

func (repo *fakeHouseRepository) FindByID(_ context.Context, id string) (*housing.House, error) {
	for _, house := range repo.houses {
		if house.ID == id {
			return house, nil
		}
	}
	return nil, apperr.NotFound("House")
}

func (repo *fakeHouseRepository) Create(_ context.Context, house *housing.House) error {
	repo.houses = append(repo.houses, house)
	return nil
}

func (repo *fakeHouseRepository) Update(_ context.Context, house *housing.House) error {
	for i, existing := range repo.houses {
		if existing.ID == house.ID {
			repo.houses[i] = house
			return nil
		}
	}
	return apperr.NotFound("House")
}

func (repo *fakeHouseRepository) Delete(_ context.Context, id string) error {
	for i, existing := range repo.houses {
		if existing.ID == id {
			repo.houses = append(repo.houses[:i], repo.houses[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("House")
}

func (repo *fakeHouseRepository) Stats(_ context.Context) (*housing.Stats, error) {
	if repo.statsErr != nil {
		return nil, repo.statsErr
	}
	return &housing.Stats{TotalHouses: len(repo.houses)}, nil
}

func validCreateInput() housing.CreateInput {
	return housing.CreateInput{
		Title:    "Sunny PG near campus",
		Location: "Koramangala, Bangalore",
		Price:    8500,
		Type:     "PG",
		Beds:     2,
		Baths:    1,
	}
}

// # Create

func TestService_Create_Success(t *testing.T) {
	repo := &fakeHouseRepository{}
	service := housing.NewService(repo)

	house, err := service.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.NotEmpty(t, house.ID)
	assert.Equal(t, housing.TypePG, house.Type)
	assert.Len(t, repo.houses, 1)
}

func TestService_Create_ValidationMessages(t *testing.T) {
	const requiredMessage = "All required fields must be provided (title, location, price, type, beds, baths)"

	tests := []struct {
		name    string
		mutate  func(*housing.CreateInput)
		message string
	}{
		{"missing_title", func(in *housing.CreateInput) { in.Title = "" }, requiredMessage},
		{"missing_location", func(in *housing.CreateInput) { in.Location = " " }, requiredMessage},
		{"missing_type", func(in *housing.CreateInput) { in.Type = "" }, requiredMessage},
		{"zero_price", func(in *housing.CreateInput) { in.Price = 0 }, requiredMessage},
		{"zero_beds", func(in *housing.CreateInput) { in.Beds = 0 }, requiredMessage},
		{"zero_baths", func(in *housing.CreateInput) { in.Baths = 0 }, requiredMessage},
		{"bad_type", func(in *housing.CreateInput) { in.Type = "Villa" }, "Type must be one of: PG, Flat, Hostel"},
		{"negative_price", func(in *housing.CreateInput) { in.Price = -100 }, "Price must be a positive number"},
		{"negative_beds", func(in *housing.CreateInput) { in.Beds = -1 }, "Beds must be a positive number"},
		{"negative_baths", func(in *housing.CreateInput) { in.Baths = -1 }, "Baths must be a positive number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeHouseRepository{}
			service := housing.NewService(repo)

			input := validCreateInput()
			tt.mutate(&input)

			_, err := service.Create(context.Background(), input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.message, appError.Message)
			assert.Equal(t, 400, appError.HTTPStatus)
			assert.Empty(t, repo.houses)
		})
	}
}

func TestService_Create_FirstViolationWins(t *testing.T) {
	repo := &fakeHouseRepository{}
	service := housing.NewService(repo)

	// Missing title AND bad type: the required-fields message comes first.
	input := validCreateInput()
	input.Title = ""
	input.Type = "Villa"

	_, err := service.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "All required fields must be provided (title, location, price, type, beds, baths)", err.Error())
}

// # Update

func TestService_Update_PartialFields(t *testing.T) {
	repo := &fakeHouseRepository{}
	service := housing.NewService(repo)

	created, err := service.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	newPrice := 9999.0
	newTitle := "Renovated PG near campus"
	updated, err := service.Update(context.Background(), created.ID, housing.UpdateInput{
		Title: &newTitle,
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renovated PG near campus", updated.Title)
	assert.Equal(t, 9999.0, updated.Price)
	// Untouched fields survive.
	assert.Equal(t, "Koramangala, Bangalore", updated.Location)
	assert.Equal(t, housing.TypePG, updated.Type)
	assert.Equal(t, 2, updated.Beds)
}

func TestService_Update_ValidatesProvidedFieldsOnly(t *testing.T) {
	repo := &fakeHouseRepository{}
	service := housing.NewService(repo)

	created, err := service.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	badPrice := -50.0
	_, err = service.Update(context.Background(), created.ID, housing.UpdateInput{Price: &badPrice})
	require.Error(t, err)
	assert.Equal(t, "Price must be a positive number", err.Error())

	badType := "Castle"
	_, err = service.Update(context.Background(), created.ID, housing.UpdateInput{Type: &badType})
	require.Error(t, err)
	assert.Equal(t, "Type must be one of: PG, Flat, Hostel", err.Error())
}

func TestService_Update_NotFound(t *testing.T) {
	service := housing.NewService(&fakeHouseRepository{})

	_, err := service.Update(context.Background(), "no-such-id", housing.UpdateInput{})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "House not found", appError.Message)
	assert.Equal(t, 404, appError.HTTPStatus)
}

// # Delete

func TestService_Delete(t *testing.T) {
	repo := &fakeHouseRepository{}
	service := housing.NewService(repo)

	created, err := service.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.houses)

	err = service.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, "House not found", err.Error())
}

// # Browse

func TestService_Browse_PassesFilterAndPagination(t *testing.T) {
	repo := &fakeHouseRepository{}
	service := housing.NewService(repo)

	for i := 0; i < 25; i++ {
		_, err := service.Create(context.Background(), validCreateInput())
		require.NoError(t, err)
	}

	filter := housing.Filter{Type: "PG", Location: "bangalore"}
	houses, meta, err := service.Browse(context.Background(), filter, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, houses, 10)
	assert.Equal(t, filter, repo.lastFilter)
	assert.Equal(t, 10, repo.lastLimit)
	assert.Equal(t, 10, repo.lastOffset)

	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 25, meta.TotalHouses)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestService_Browse_StorageFailure(t *testing.T) {
	repo := &fakeHouseRepository{listErr: assert.AnError}
	service := housing.NewService(repo)

	_, _, err := service.Browse(context.Background(), housing.Filter{}, pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "Error fetching houses", appError.Message)
	assert.Equal(t, 500, appError.HTTPStatus)
}

// # Overview

func TestService_Overview(t *testing.T) {
	repo := &fakeHouseRepository{}
	service := housing.NewService(repo)

	_, err := service.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	stats, err := service.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalHouses)

	repo.statsErr = assert.AnError
	_, err = service.Overview(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Error fetching statistics", err.Error())
}
