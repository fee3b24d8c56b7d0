// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package business

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
)

type fakeRepository struct {
	businesses map[int64]*Business
	nextID     int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{businesses: map[int64]*Business{}, nextID: 1}
}

func (f *fakeRepository) ListBusinesses(_ context.Context, _ Filter, limit, offset int) ([]*Business, int, error) {
	var all []*Business
	for _, b := range f.businesses {
		all = append(all, b)
	}
	if offset > len(all) {
		return nil, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (f *fakeRepository) GetBusiness(_ context.Context, id int64) (*Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, apperr.NotFound("business")
	}
	return b, nil
}

func (f *fakeRepository) CreateBusiness(_ context.Context, b *Business) error {
	b.ID = f.nextID
	b.Statut = 1
	f.nextID++
	f.businesses[b.ID] = b
	return nil
}

func (f *fakeRepository) UpdateBusiness(_ context.Context, b *Business) error {
	if _, ok := f.businesses[b.ID]; !ok {
		return apperr.NotFound("business")
	}
	f.businesses[b.ID] = b
	return nil
}

func (f *fakeRepository) DeleteBusiness(_ context.Context, id int64) error {
	if _, ok := f.businesses[id]; !ok {
		return apperr.NotFound("business")
	}
	delete(f.businesses, id)
	return nil
}

func (f *fakeRepository) ExistsByDenomination(_ context.Context, denomination string, excludeID int64) (bool, error) {
	for _, b := range f.businesses {
		if strings.EqualFold(b.Denomination, denomination) && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidatePrefix(context.Context, string) {}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, noopInvalidator{}, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreateBusinessRejectsDuplicateDenomination(t *testing.T) {
	service, _ := newTestService()

	require.NoError(t, service.CreateBusiness(context.Background(), &Business{Denomination: "Studio Ghibli"}))

	// Case variants count as duplicates.
	err := service.CreateBusiness(context.Background(), &Business{Denomination: "studio ghibli"})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 409, appError.HTTPStatus)
}

func TestUpdateBusinessKeepsOwnDenomination(t *testing.T) {
	service, _ := newTestService()

	input := &Business{Denomination: "Madhouse"}
	require.NoError(t, service.CreateBusiness(context.Background(), input))

	// Renaming to its own denomination must not trip the duplicate check.
	assert.NoError(t, service.UpdateBusiness(context.Background(), input.ID, &Business{Denomination: "Madhouse"}))
}

func TestDeleteBusinessIsHard(t *testing.T) {
	service, repo := newTestService()

	input := &Business{Denomination: "Gonzo"}
	require.NoError(t, service.CreateBusiness(context.Background(), input))
	require.NoError(t, service.DeleteBusiness(context.Background(), input.ID))

	// Row is gone, not archived.
	_, exists := repo.businesses[input.ID]
	assert.False(t, exists)
}
