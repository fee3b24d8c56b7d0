// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package manga

import (
	"context"
	"log/slog"

	"github.com/mlebrun/otaclub/internal/platform/validate"
	"github.com/mlebrun/otaclub/pkg/slug"
)

// CachePrefix namespaces this catalogue's entries in the response cache.
const CachePrefix = "mangas"

// Invalidator is the slice of the response cache the service depends on.
type Invalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string)
}

type Service struct {
	repo   Repository
	cache  Invalidator
	logger *slog.Logger
}

func NewService(repo Repository, cacheStore Invalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cacheStore,
		logger: logger,
	}
}

func (service *Service) ListMangas(context context.Context, filter Filter, limit, offset int) ([]*Manga, int, error) {
	return service.repo.ListMangas(context, filter, limit, offset)
}

func (service *Service) GetManga(context context.Context, id int64) (*Manga, error) {
	return service.repo.GetManga(context, id)
}

func (service *Service) GetMangaByNiceURL(context context.Context, niceURL string) (*Manga, error) {
	return service.repo.GetMangaByNiceURL(context, niceURL)
}

func (service *Service) CreateManga(context context.Context, manga *Manga) error {
	if manga.StatutPublication == "" {
		manga.StatutPublication = PublicationOngoing
	}

	if err := validateManga(manga); err != nil {
		return err
	}

	if manga.NiceURL == "" {
		manga.NiceURL = slug.From(manga.Titre)
	}

	if err := service.repo.CreateManga(context, manga); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("manga_created", slog.Int64("manga_id", manga.ID), slog.String("titre", manga.Titre))
	return nil
}

func (service *Service) UpdateManga(context context.Context, id int64, manga *Manga) error {
	manga.ID = id

	if err := validateManga(manga); err != nil {
		return err
	}

	if manga.NiceURL == "" {
		manga.NiceURL = slug.From(manga.Titre)
	}

	if err := service.repo.UpdateManga(context, manga); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("manga_updated", slog.Int64("manga_id", id))
	return nil
}

func (service *Service) DeleteManga(context context.Context, id int64) error {
	if err := service.repo.DeleteManga(context, id); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Warn("manga_deleted", slog.Int64("manga_id", id))
	return nil
}

// AttachCover records an uploaded cover filename on the fiche.
func (service *Service) AttachCover(context context.Context, id int64, filename string) error {
	if err := service.repo.SetImage(context, id, filename); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("manga_cover_attached", slog.Int64("manga_id", id), slog.String("file", filename))
	return nil
}

func validateManga(manga *Manga) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitre, manga.Titre).MaxLen(FieldTitre, manga.Titre, 255)
	validator.OneOf(FieldStatutPublication, manga.StatutPublication, PublicationStatuses...)

	if manga.TitreOrig != nil {
		validator.MaxLen(FieldTitreOrig, *manga.TitreOrig, 255)
	}
	if manga.Annee != nil {
		validator.Range(FieldAnnee, *manga.Annee, 1900, 2100)
	}
	if manga.NbVolumes != nil {
		validator.Custom(FieldNbVolumes, *manga.NbVolumes < 0, "Cannot be negative")
	}
	if manga.Auteur != nil {
		validator.MaxLen(FieldAuteur, *manga.Auteur, 255)
	}

	return validator.Err()
}
