// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package anime

import (
	"context"
	"log/slog"

	"github.com/mlebrun/otaclub/internal/platform/validate"
	"github.com/mlebrun/otaclub/pkg/slug"
)

// CachePrefix namespaces this catalogue's entries in the response cache.
const CachePrefix = "animes"

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

func (service *Service) ListAnimes(context context.Context, filter Filter, limit, offset int) ([]*Anime, int, error) {
	return service.repo.ListAnimes(context, filter, limit, offset)
}

func (service *Service) GetAnime(context context.Context, id int64) (*Anime, error) {
	return service.repo.GetAnime(context, id)
}

func (service *Service) GetAnimeByNiceURL(context context.Context, niceURL string) (*Anime, error) {
	return service.repo.GetAnimeByNiceURL(context, niceURL)
}

func (service *Service) CreateAnime(context context.Context, anime *Anime) error {
	if err := validateAnime(anime); err != nil {
		return err
	}

	if anime.NiceURL == "" {
		anime.NiceURL = slug.From(anime.Titre)
	}

	if err := service.repo.CreateAnime(context, anime); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("anime_created", slog.Int64("anime_id", anime.ID), slog.String("titre", anime.Titre))
	return nil
}

func (service *Service) UpdateAnime(context context.Context, id int64, anime *Anime) error {
	anime.ID = id

	if err := validateAnime(anime); err != nil {
		return err
	}

	if anime.NiceURL == "" {
		anime.NiceURL = slug.From(anime.Titre)
	}

	if err := service.repo.UpdateAnime(context, anime); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("anime_updated", slog.Int64("anime_id", id))
	return nil
}

func (service *Service) DeleteAnime(context context.Context, id int64) error {
	if err := service.repo.DeleteAnime(context, id); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Warn("anime_deleted", slog.Int64("anime_id", id))
	return nil
}

// AttachScreenshot records an uploaded screenshot filename on the fiche.
func (service *Service) AttachScreenshot(context context.Context, id int64, filename string) error {
	if err := service.repo.SetImage(context, id, filename); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("anime_screenshot_attached", slog.Int64("anime_id", id), slog.String("file", filename))
	return nil
}

func validateAnime(anime *Anime) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitre, anime.Titre).MaxLen(FieldTitre, anime.Titre, 255)

	if anime.TitreOrig != nil {
		validator.MaxLen(FieldTitreOrig, *anime.TitreOrig, 255)
	}
	if anime.Annee != nil {
		validator.Range(FieldAnnee, *anime.Annee, 1900, 2100)
	}
	if anime.NbEp != nil {
		validator.Custom(FieldNbEp, *anime.NbEp < 0, "Cannot be negative")
	}
	if anime.Studio != nil {
		validator.MaxLen(FieldStudio, *anime.Studio, 255)
	}

	return validator.Err()
}
