// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package comment

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
)

type fakeRepository struct {
	comments map[int64]*Comment
	nextID   int64

	publishedArticles map[int64]bool
	nbCom             map[int64]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		comments:          map[int64]*Comment{},
		nextID:            1,
		publishedArticles: map[int64]bool{},
		nbCom:             map[int64]int{},
	}
}

func (f *fakeRepository) ListApprovedComments(_ context.Context, articleID int64, limit, offset int) ([]*Comment, int, error) {
	var all []*Comment
	for _, c := range f.comments {
		if c.IDArticle == articleID && c.Moderation == ModerationApproved {
			all = append(all, c)
		}
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

func (f *fakeRepository) ListCommentsByModeration(_ context.Context, moderation int, limit, offset int) ([]*Comment, int, error) {
	var all []*Comment
	for _, c := range f.comments {
		if c.Moderation == moderation {
			all = append(all, c)
		}
	}
	return all, len(all), nil
}

func (f *fakeRepository) GetComment(_ context.Context, id int64) (*Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.NotFound("comment")
	}
	return c, nil
}

func (f *fakeRepository) CreateComment(_ context.Context, c *Comment) error {
	c.ID = f.nextID
	c.DateCreation = 1700000000
	f.nextID++
	f.comments[c.ID] = c
	return nil
}

func (f *fakeRepository) SetModeration(_ context.Context, id int64, moderation int) error {
	c, ok := f.comments[id]
	if !ok {
		return apperr.NotFound("comment")
	}
	c.Moderation = moderation
	return nil
}

func (f *fakeRepository) DeleteComment(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return apperr.NotFound("comment")
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeRepository) RecomputeCommentCount(_ context.Context, articleID int64) error {
	count := 0
	for _, c := range f.comments {
		if c.IDArticle == articleID && c.Moderation == ModerationApproved {
			count++
		}
	}
	f.nbCom[articleID] = count
	return nil
}

func (f *fakeRepository) ArticlePublished(_ context.Context, articleID int64) (bool, error) {
	return f.publishedArticles[articleID], nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	repo.publishedArticles[1] = true
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreateCommentAnonymousIsPending(t *testing.T) {
	service, repo := newTestService()

	result, err := service.CreateComment(context.Background(), 1, nil, "", CreateInput{
		AuteurNom: "Visiteur", Contenu: "Très bon article.",
	})
	require.NoError(t, err)

	assert.Equal(t, ModerationPending, result.Moderation)
	// A pending comment does not count.
	assert.Equal(t, 0, repo.nbCom[1])
}

func TestCreateCommentAuthenticatedIsApproved(t *testing.T) {
	service, repo := newTestService()
	userID := int64(42)

	result, err := service.CreateComment(context.Background(), 1, &userID, "kenshin", CreateInput{
		AuteurNom: "ignored", Contenu: "Excellente chronique.",
	})
	require.NoError(t, err)

	assert.Equal(t, ModerationApproved, result.Moderation)
	assert.Equal(t, "kenshin", result.AuteurNom)
	assert.Equal(t, 1, repo.nbCom[1])
}

func TestCreateCommentRejectsSpam(t *testing.T) {
	service, repo := newTestService()

	_, err := service.CreateComment(context.Background(), 1, nil, "", CreateInput{
		AuteurNom: "Bot", Contenu: "FREE episodes available, just click here now",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Empty(t, repo.comments)
}

func TestCreateCommentUnpublishedArticle(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateComment(context.Background(), 99, nil, "", CreateInput{
		AuteurNom: "Visiteur", Contenu: "Premier !",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

func TestModerateRecomputesCount(t *testing.T) {
	service, repo := newTestService()

	pending, err := service.CreateComment(context.Background(), 1, nil, "", CreateInput{
		AuteurNom: "Visiteur", Contenu: "En attente de validation.",
	})
	require.NoError(t, err)
	require.Equal(t, 0, repo.nbCom[1])

	_, err = service.Moderate(context.Background(), pending.ID, ModerationApproved)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.nbCom[1])

	_, err = service.Moderate(context.Background(), pending.ID, ModerationRejected)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.nbCom[1])
}

// Replaying a transition leaves the counter unchanged: nb_com is derived from
// the comment rows, never incremented.
func TestModerateIsIdempotent(t *testing.T) {
	service, repo := newTestService()

	pending, err := service.CreateComment(context.Background(), 1, nil, "", CreateInput{
		AuteurNom: "Visiteur", Contenu: "Un avis sincère.",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = service.Moderate(context.Background(), pending.ID, ModerationApproved)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, repo.nbCom[1])
}

func TestModerateRejectsUnknownState(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Moderate(context.Background(), 1, 2)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}
