// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package tag

import (
	"context"
	"log/slog"

	"github.com/mlebrun/otaclub/internal/platform/validate"
	"github.com/mlebrun/otaclub/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListTags(context context.Context, filter Filter, limit, offset int) ([]*Tag, int, error) {
	return service.repo.ListTags(context, filter, limit, offset)
}

func (service *Service) GetTag(context context.Context, id int64) (*Tag, error) {
	return service.repo.GetTag(context, id)
}

func (service *Service) ListTagsForFiche(context context.Context, ficheID int64, ficheType string) ([]*Tag, error) {
	if err := validateFicheType(ficheType); err != nil {
		return nil, err
	}
	return service.repo.ListTagsForFiche(context, ficheID, ficheType)
}

func (service *Service) CreateTag(context context.Context, tag *Tag) error {
	validator := &validate.Validator{}
	validator.Required(FieldNom, tag.Nom).MaxLen(FieldNom, tag.Nom, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	if tag.NiceURL == "" {
		tag.NiceURL = slug.From(tag.Nom)
	}

	if err := service.repo.CreateTag(context, tag); err != nil {
		return err
	}

	service.logger.Info("tag_created", slog.Int64("tag_id", tag.ID), slog.String("nom", tag.Nom))
	return nil
}

func (service *Service) UpdateTag(context context.Context, id int64, tag *Tag) error {
	tag.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldNom, tag.Nom).MaxLen(FieldNom, tag.Nom, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	if tag.NiceURL == "" {
		tag.NiceURL = slug.From(tag.Nom)
	}

	if err := service.repo.UpdateTag(context, tag); err != nil {
		return err
	}

	service.logger.Info("tag_updated", slog.Int64("tag_id", id))
	return nil
}

func (service *Service) DeleteTag(context context.Context, id int64) error {
	if err := service.repo.DeleteTag(context, id); err != nil {
		return err
	}

	service.logger.Warn("tag_deleted", slog.Int64("tag_id", id))
	return nil
}

// Attach links a tag to a fiche. Re-attaching an existing link is a no-op.
func (service *Service) Attach(context context.Context, link Link) error {
	if err := validateLink(link); err != nil {
		return err
	}

	if err := service.repo.Attach(context, link); err != nil {
		return err
	}

	service.logger.Info("tag_attached",
		slog.Int64("tag_id", link.TagID),
		slog.Int64("fiche_id", link.FicheID),
		slog.String("type", link.Type),
	)
	return nil
}

func (service *Service) Detach(context context.Context, link Link) error {
	if err := validateLink(link); err != nil {
		return err
	}

	if err := service.repo.Detach(context, link); err != nil {
		return err
	}

	service.logger.Info("tag_detached",
		slog.Int64("tag_id", link.TagID),
		slog.Int64("fiche_id", link.FicheID),
		slog.String("type", link.Type),
	)
	return nil
}

func validateLink(link Link) error {
	validator := &validate.Validator{}
	validator.Positive(FieldFicheID, link.FicheID)
	validator.OneOf(FieldType, link.Type, FicheTypeAnime, FicheTypeManga)
	return validator.Err()
}

func validateFicheType(ficheType string) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldType, ficheType, FicheTypeAnime, FicheTypeManga)
	return validator.Err()
}
