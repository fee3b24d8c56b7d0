// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package anime

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
	"github.com/mlebrun/otaclub/pkg/pagination"
)

type fakeRepository struct {
	animes  map[int64]*Anime
	nextID  int64
	deleted []int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{animes: map[int64]*Anime{}, nextID: 1}
}

func (f *fakeRepository) ListAnimes(_ context.Context, _ Filter, limit, offset int) ([]*Anime, int, error) {
	var all []*Anime
	for _, a := range f.animes {
		all = append(all, a)
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

func (f *fakeRepository) GetAnime(_ context.Context, id int64) (*Anime, error) {
	a, ok := f.animes[id]
	if !ok || a.Statut != 1 {
		return nil, apperr.NotFound("anime")
	}
	return a, nil
}

func (f *fakeRepository) GetAnimeByNiceURL(_ context.Context, niceURL string) (*Anime, error) {
	for _, a := range f.animes {
		if a.NiceURL == niceURL && a.Statut == 1 {
			return a, nil
		}
	}
	return nil, apperr.NotFound("anime")
}

func (f *fakeRepository) CreateAnime(_ context.Context, a *Anime) error {
	a.ID = f.nextID
	a.Statut = 1
	f.nextID++
	f.animes[a.ID] = a
	return nil
}

func (f *fakeRepository) UpdateAnime(_ context.Context, a *Anime) error {
	if _, ok := f.animes[a.ID]; !ok {
		return apperr.NotFound("anime")
	}
	f.animes[a.ID] = a
	return nil
}

func (f *fakeRepository) DeleteAnime(_ context.Context, id int64) error {
	a, ok := f.animes[id]
	if !ok || a.Statut != 1 {
		return apperr.NotFound("anime")
	}
	a.Statut = 0
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepository) SetImage(_ context.Context, id int64, filename string) error {
	a, ok := f.animes[id]
	if !ok {
		return apperr.NotFound("anime")
	}
	a.Image = &filename
	return nil
}

type fakeInvalidator struct {
	prefixes []string
}

func (f *fakeInvalidator) InvalidatePrefix(_ context.Context, prefix string) {
	f.prefixes = append(f.prefixes, prefix)
}

func newTestService() (*Service, *fakeRepository, *fakeInvalidator) {
	repo := newFakeRepository()
	invalidator := &fakeInvalidator{}
	return NewService(repo, invalidator, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, invalidator
}

func TestCreateAnimeGeneratesNiceURL(t *testing.T) {
	service, _, invalidator := newTestService()

	input := &Anime{Titre: "Saint Seiya: Les Chevaliers du Zodiaque"}
	require.NoError(t, service.CreateAnime(context.Background(), input))

	assert.Equal(t, "saint-seiya-les-chevaliers-du-zodiaque", input.NiceURL)
	assert.Equal(t, 1, input.Statut)
	assert.Contains(t, invalidator.prefixes, CachePrefix)
}

func TestCreateAnimeValidation(t *testing.T) {
	service, repo, _ := newTestService()
	year := 1723

	err := service.CreateAnime(context.Background(), &Anime{Titre: "", Annee: &year})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 2)
	assert.Empty(t, repo.animes)
}

func TestDeleteAnimeIsSoft(t *testing.T) {
	service, repo, _ := newTestService()

	input := &Anime{Titre: "Monster"}
	require.NoError(t, service.CreateAnime(context.Background(), input))
	require.NoError(t, service.DeleteAnime(context.Background(), input.ID))

	// Row is retained with statut=0, invisible to reads.
	assert.Equal(t, 0, repo.animes[input.ID].Statut)
	_, err := service.GetAnime(context.Background(), input.ID)
	assert.NotNil(t, apperr.As(err))
}

func TestDeleteAnimeTwice(t *testing.T) {
	service, _, _ := newTestService()

	input := &Anime{Titre: "Akira"}
	require.NoError(t, service.CreateAnime(context.Background(), input))
	require.NoError(t, service.DeleteAnime(context.Background(), input.ID))

	err := service.DeleteAnime(context.Background(), input.ID)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

func TestListAnimesPagination(t *testing.T) {
	service, _, _ := newTestService()

	for index := 0; index < 12; index++ {
		input := &Anime{Titre: "Titre " + string(rune('A'+index))}
		require.NoError(t, service.CreateAnime(context.Background(), input))
	}

	params := pagination.Params{Page: 2, Limit: 5}
	animes, total, err := service.ListAnimes(context.Background(), Filter{}, params.Limit, params.Offset())
	require.NoError(t, err)

	assert.Len(t, animes, 5)
	assert.Equal(t, 12, total)

	meta := pagination.NewMeta(params.Page, params.Limit, total)
	assert.Equal(t, 3, meta.Pages)
}
