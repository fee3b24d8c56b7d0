// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package article

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
	articles map[int64]*Article
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{articles: map[int64]*Article{}, nextID: 1}
}

func (f *fakeRepository) ListArticles(_ context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {
	var all []*Article
	for _, a := range f.articles {
		if a.Statut != StatusPublished {
			continue
		}
		if filter.OnIndexOnly && !a.OnIndex {
			continue
		}
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

func (f *fakeRepository) GetArticle(_ context.Context, id int64) (*Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, apperr.NotFound("article")
	}
	return a, nil
}

func (f *fakeRepository) GetArticleByNiceURL(_ context.Context, niceURL string) (*Article, error) {
	for _, a := range f.articles {
		if a.NiceURL == niceURL {
			return a, nil
		}
	}
	return nil, apperr.NotFound("article")
}

func (f *fakeRepository) CreateArticle(_ context.Context, a *Article) error {
	a.ID = f.nextID
	f.nextID++
	f.articles[a.ID] = a
	return nil
}

func (f *fakeRepository) UpdateArticle(_ context.Context, a *Article) error {
	if _, ok := f.articles[a.ID]; !ok {
		return apperr.NotFound("article")
	}
	f.articles[a.ID] = a
	return nil
}

func (f *fakeRepository) DeleteArticle(_ context.Context, id int64) error {
	if _, ok := f.articles[id]; !ok {
		return apperr.NotFound("article")
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeRepository) IncrementClicks(_ context.Context, id int64) error {
	a, ok := f.articles[id]
	if !ok {
		return apperr.NotFound("article")
	}
	a.NbClics++
	return nil
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidatePrefix(context.Context, string) {}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, noopInvalidator{}, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreateArticleDefaultsToDraft(t *testing.T) {
	service, _ := newTestService()

	input := &Article{Titre: "Retour sur la saison", Contenu: "..."}
	require.NoError(t, service.CreateArticle(context.Background(), 1, input))

	assert.Equal(t, StatusDraft, input.Statut)
	assert.Nil(t, input.DatePublication)
	assert.Equal(t, "retour-sur-la-saison", input.NiceURL)
}

func TestCreateArticlePublishedStampsDate(t *testing.T) {
	service, _ := newTestService()

	input := &Article{Titre: "Édito", Contenu: "...", Statut: StatusPublished}
	require.NoError(t, service.CreateArticle(context.Background(), 1, input))

	require.NotNil(t, input.DatePublication)
	assert.Positive(t, *input.DatePublication)
}

func TestGetPublishedArticleHidesDrafts(t *testing.T) {
	service, _ := newTestService()

	draft := &Article{Titre: "Brouillon", Contenu: "..."}
	require.NoError(t, service.CreateArticle(context.Background(), 1, draft))

	_, err := service.GetPublishedArticle(context.Background(), draft.ID)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

func TestGetPublishedArticleCountsClicks(t *testing.T) {
	service, repo := newTestService()

	published := &Article{Titre: "Dossier", Contenu: "...", Statut: StatusPublished}
	require.NoError(t, service.CreateArticle(context.Background(), 1, published))

	_, err := service.GetPublishedArticle(context.Background(), published.ID)
	require.NoError(t, err)
	_, err = service.GetPublishedArticle(context.Background(), published.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.articles[published.ID].NbClics)
}

func TestUpdateArticleKeepsFirstPublicationDate(t *testing.T) {
	service, repo := newTestService()

	input := &Article{Titre: "Chronique", Contenu: "...", Statut: StatusPublished}
	require.NoError(t, service.CreateArticle(context.Background(), 1, input))
	original := *repo.articles[input.ID].DatePublication

	edit := &Article{Titre: "Chronique (màj)", Contenu: "...", Statut: StatusPublished}
	require.NoError(t, service.UpdateArticle(context.Background(), input.ID, edit))

	require.NotNil(t, edit.DatePublication)
	assert.Equal(t, original, *edit.DatePublication)
}

func TestUpdateArticleArchive(t *testing.T) {
	service, repo := newTestService()

	input := &Article{Titre: "Vieux dossier", Contenu: "...", Statut: StatusPublished}
	require.NoError(t, service.CreateArticle(context.Background(), 1, input))

	edit := &Article{Titre: "Vieux dossier", Contenu: "...", Statut: StatusArchived}
	require.NoError(t, service.UpdateArticle(context.Background(), input.ID, edit))

	assert.Equal(t, StatusArchived, repo.articles[input.ID].Statut)
	_, err := service.GetPublishedArticle(context.Background(), input.ID)
	assert.NotNil(t, apperr.As(err))
}
