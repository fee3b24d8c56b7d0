// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package tag

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
	tags   map[int64]*Tag
	links  map[Link]bool
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tags: map[int64]*Tag{}, links: map[Link]bool{}, nextID: 1}
}

func (f *fakeRepository) ListTags(_ context.Context, _ Filter, _, _ int) ([]*Tag, int, error) {
	result := make([]*Tag, 0, len(f.tags))
	for _, tag := range f.tags {
		result = append(result, tag)
	}
	return result, len(result), nil
}

func (f *fakeRepository) GetTag(_ context.Context, id int64) (*Tag, error) {
	tag, ok := f.tags[id]
	if !ok {
		return nil, apperr.NotFound("Tag")
	}
	return tag, nil
}

func (f *fakeRepository) CreateTag(_ context.Context, tag *Tag) error {
	tag.ID = f.nextID
	f.nextID++
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeRepository) UpdateTag(_ context.Context, tag *Tag) error {
	if _, ok := f.tags[tag.ID]; !ok {
		return apperr.NotFound("Tag")
	}
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeRepository) DeleteTag(_ context.Context, id int64) error {
	if _, ok := f.tags[id]; !ok {
		return apperr.NotFound("Tag")
	}
	delete(f.tags, id)
	for link := range f.links {
		if link.TagID == id {
			delete(f.links, link)
		}
	}
	return nil
}

func (f *fakeRepository) ListTagsForFiche(_ context.Context, ficheID int64, ficheType string) ([]*Tag, error) {
	result := []*Tag{}
	for link := range f.links {
		if link.FicheID == ficheID && link.Type == ficheType {
			if tag, ok := f.tags[link.TagID]; ok {
				result = append(result, tag)
			}
		}
	}
	return result, nil
}

func (f *fakeRepository) Attach(_ context.Context, link Link) error {
	f.links[link] = true
	return nil
}

func (f *fakeRepository) Detach(_ context.Context, link Link) error {
	if !f.links[link] {
		return apperr.NotFound("Tag link")
	}
	delete(f.links, link)
	return nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateTag_SlugGenerated(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	tag := &Tag{Nom: "Tranche de vie"}
	require.NoError(t, service.CreateTag(context.Background(), tag))

	assert.Equal(t, int64(1), tag.ID)
	assert.Equal(t, "tranche-de-vie", tag.NiceURL)
}

func TestCreateTag_Validation(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.CreateTag(context.Background(), &Tag{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestAttachDetach(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	tag := &Tag{Nom: "Mecha"}
	require.NoError(t, service.CreateTag(context.Background(), tag))

	link := Link{TagID: tag.ID, FicheID: 42, Type: FicheTypeAnime}
	require.NoError(t, service.Attach(context.Background(), link))

	tags, err := service.ListTagsForFiche(context.Background(), 42, FicheTypeAnime)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Mecha", tags[0].Nom)

	// The link is typed: the same id on the manga side carries no tags.
	tags, err = service.ListTagsForFiche(context.Background(), 42, FicheTypeManga)
	require.NoError(t, err)
	assert.Empty(t, tags)

	require.NoError(t, service.Detach(context.Background(), link))
	tags, err = service.ListTagsForFiche(context.Background(), 42, FicheTypeAnime)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestAttach_InvalidType(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.Attach(context.Background(), Link{TagID: 1, FicheID: 42, Type: "film"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDetach_MissingLink(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.Detach(context.Background(), Link{TagID: 1, FicheID: 42, Type: FicheTypeAnime})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestDeleteTag_RemovesLinks(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	tag := &Tag{Nom: "Shonen"}
	require.NoError(t, service.CreateTag(context.Background(), tag))
	require.NoError(t, service.Attach(context.Background(), Link{TagID: tag.ID, FicheID: 7, Type: FicheTypeManga}))

	require.NoError(t, service.DeleteTag(context.Background(), tag.ID))

	tags, err := service.ListTagsForFiche(context.Background(), 7, FicheTypeManga)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
