// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package review

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
)

// fakeRepository mimics the store including the aggregate recompute, so tests
// can observe moyenne_notes / nb_reviews the way the fiche tables would.
type fakeRepository struct {
	reviews map[int64]*Review
	nextID  int64

	activeMedia map[string]bool // "anime:1" -> active

	moyenne    map[string]float64
	nbReviews  map[string]int
	recomputes int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		reviews:     map[int64]*Review{},
		nextID:      1,
		activeMedia: map[string]bool{},
		moyenne:     map[string]float64{},
		nbReviews:   map[string]int{},
	}
}

func mediaKey(mediaType string, mediaID int64) string {
	return mediaType + ":" + strconv.FormatInt(mediaID, 10)
}

func (f *fakeRepository) addMedia(mediaType string, mediaID int64) {
	f.activeMedia[mediaKey(mediaType, mediaID)] = true
}

func (f *fakeRepository) ListReviews(_ context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	var all []*Review
	for _, r := range f.reviews {
		if r.Statut != 1 {
			continue
		}
		if filter.UserID > 0 && r.IDUser != filter.UserID {
			continue
		}
		all = append(all, r)
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

func (f *fakeRepository) GetReview(_ context.Context, id int64) (*Review, error) {
	r, ok := f.reviews[id]
	if !ok || r.Statut != 1 {
		return nil, apperr.NotFound("review")
	}
	return r, nil
}

func (f *fakeRepository) CreateReview(_ context.Context, r *Review) error {
	r.ID = f.nextID
	r.Statut = 1
	r.DateCreation = 1700000000
	f.nextID++
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeRepository) UpdateReview(_ context.Context, r *Review) error {
	if _, ok := f.reviews[r.ID]; !ok {
		return apperr.NotFound("review")
	}
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeRepository) DeleteReview(_ context.Context, id int64) error {
	r, ok := f.reviews[id]
	if !ok || r.Statut != 1 {
		return apperr.NotFound("review")
	}
	r.Statut = 0
	return nil
}

func (f *fakeRepository) HasActiveReview(_ context.Context, userID int64, mediaType string, mediaID int64) (bool, error) {
	for _, r := range f.reviews {
		if r.Statut == 1 && r.IDUser == userID && r.MediaType() == mediaType && r.MediaID() == mediaID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) MediaExists(_ context.Context, mediaType string, mediaID int64) (bool, error) {
	return f.activeMedia[mediaKey(mediaType, mediaID)], nil
}

func (f *fakeRepository) RecomputeRating(_ context.Context, mediaType string, mediaID int64) error {
	f.recomputes++

	sum, count := 0, 0
	for _, r := range f.reviews {
		if r.Statut == 1 && r.MediaType() == mediaType && r.MediaID() == mediaID {
			sum += r.Note
			count++
		}
	}

	key := mediaKey(mediaType, mediaID)
	f.nbReviews[key] = count
	if count == 0 {
		f.moyenne[key] = 0
	} else {
		f.moyenne[key] = float64(sum) / float64(count)
	}
	return nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreateReviewRecomputesAggregates(t *testing.T) {
	service, repo := newTestService()
	repo.addMedia(MediaTypeAnime, 1)

	_, err := service.CreateReview(context.Background(), 10, CreateInput{
		MediaID: 1, MediaType: MediaTypeAnime, Rating: 8, Title: "Superbe", Content: "Un classique.",
	})
	require.NoError(t, err)

	_, err = service.CreateReview(context.Background(), 11, CreateInput{
		MediaID: 1, MediaType: MediaTypeAnime, Rating: 6, Title: "Correct", Content: "Sans plus.",
	})
	require.NoError(t, err)

	key := mediaKey(MediaTypeAnime, 1)
	assert.Equal(t, 2, repo.nbReviews[key])
	assert.InDelta(t, 7.0, repo.moyenne[key], 0.001)
}

func TestCreateReviewDuplicateConflict(t *testing.T) {
	service, repo := newTestService()
	repo.addMedia(MediaTypeAnime, 1)

	input := CreateInput{MediaID: 1, MediaType: MediaTypeAnime, Rating: 8, Title: "Bien", Content: "Oui."}
	_, err := service.CreateReview(context.Background(), 10, input)
	require.NoError(t, err)

	_, err = service.CreateReview(context.Background(), 10, input)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 409, appError.HTTPStatus)

	// The rejected attempt must not drift the aggregates.
	key := mediaKey(MediaTypeAnime, 1)
	assert.Equal(t, 1, repo.nbReviews[key])
	assert.InDelta(t, 8.0, repo.moyenne[key], 0.001)
}

func TestCreateReviewMissingMedia(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateReview(context.Background(), 10, CreateInput{
		MediaID: 99, MediaType: MediaTypeManga, Rating: 5, Title: "Inconnu", Content: "?",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

func TestCreateReviewRatingOutOfRange(t *testing.T) {
	service, repo := newTestService()
	repo.addMedia(MediaTypeAnime, 1)

	_, err := service.CreateReview(context.Background(), 10, CreateInput{
		MediaID: 1, MediaType: MediaTypeAnime, Rating: 11, Title: "Trop", Content: "Trop bien.",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestUpdateReviewOwnership(t *testing.T) {
	service, repo := newTestService()
	repo.addMedia(MediaTypeManga, 2)

	created, err := service.CreateReview(context.Background(), 10, CreateInput{
		MediaID: 2, MediaType: MediaTypeManga, Rating: 4, Title: "Bof", Content: "Mouais.",
	})
	require.NoError(t, err)

	edit := UpdateInput{Rating: 9, Title: "Revu", Content: "En fait excellent."}

	// Another member is refused.
	_, err = service.UpdateReview(context.Background(), Actor{ID: 11}, created.ID, edit)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 403, appError.HTTPStatus)

	// An admin passes.
	_, err = service.UpdateReview(context.Background(), Actor{ID: 11, IsAdmin: true}, created.ID, edit)
	require.NoError(t, err)

	// The new note is reflected in the aggregates.
	key := mediaKey(MediaTypeManga, 2)
	assert.InDelta(t, 9.0, repo.moyenne[key], 0.001)
}

func TestDeleteReviewIsSoftAndRecomputes(t *testing.T) {
	service, repo := newTestService()
	repo.addMedia(MediaTypeAnime, 3)

	created, err := service.CreateReview(context.Background(), 10, CreateInput{
		MediaID: 3, MediaType: MediaTypeAnime, Rating: 7, Title: "Bien", Content: "Oui.",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteReview(context.Background(), Actor{ID: 10}, created.ID))

	// Row kept with statut=0, aggregates back to zero.
	assert.Equal(t, 0, repo.reviews[created.ID].Statut)
	key := mediaKey(MediaTypeAnime, 3)
	assert.Equal(t, 0, repo.nbReviews[key])
	assert.InDelta(t, 0.0, repo.moyenne[key], 0.001)

	// The member may review the fiche again after deleting.
	_, err = service.CreateReview(context.Background(), 10, CreateInput{
		MediaID: 3, MediaType: MediaTypeAnime, Rating: 5, Title: "Encore", Content: "Deuxième avis.",
	})
	assert.NoError(t, err)
}

func TestRecomputeRatingIsIdempotent(t *testing.T) {
	service, repo := newTestService()
	repo.addMedia(MediaTypeAnime, 1)

	_, err := service.CreateReview(context.Background(), 10, CreateInput{
		MediaID: 1, MediaType: MediaTypeAnime, Rating: 8, Title: "Bien", Content: "Oui.",
	})
	require.NoError(t, err)

	key := mediaKey(MediaTypeAnime, 1)
	before := repo.moyenne[key]

	// Replaying the recompute changes nothing.
	require.NoError(t, repo.RecomputeRating(context.Background(), MediaTypeAnime, 1))
	require.NoError(t, repo.RecomputeRating(context.Background(), MediaTypeAnime, 1))

	assert.Equal(t, before, repo.moyenne[key])
	assert.Equal(t, 1, repo.nbReviews[key])
}
