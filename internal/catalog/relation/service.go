// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package relation

import (
	"context"
	"log/slog"

	"github.com/mlebrun/otaclub/internal/platform/validate"
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

func (service *Service) ListRelations(context context.Context, ficheKey string) ([]*Relation, error) {
	key, err := ParseFicheKey(ficheKey)
	if err != nil {
		return nil, err
	}
	return service.repo.ListRelations(context, key)
}

func (service *Service) CreateRelation(context context.Context, ficheKey string, idFicheCible int64, typeCible string) error {
	key, err := ParseFicheKey(ficheKey)
	if err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Positive("id_fiche_cible", idFicheCible)
	validator.OneOf("type_cible", typeCible, TypeAnime, TypeManga)
	validator.Custom("id_fiche_cible", key == FicheKey(typeCible, idFicheCible), "A fiche cannot relate to itself")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateRelation(context, key, idFicheCible, typeCible); err != nil {
		return err
	}

	service.logger.Info("relation_created",
		slog.String("origine", key),
		slog.Int64("cible", idFicheCible),
		slog.String("type_cible", typeCible),
	)
	return nil
}

func (service *Service) DeleteRelation(context context.Context, ficheKey string, idFicheCible int64, typeCible string) error {
	key, err := ParseFicheKey(ficheKey)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteRelation(context, key, idFicheCible, typeCible); err != nil {
		return err
	}

	service.logger.Info("relation_deleted",
		slog.String("origine", key),
		slog.Int64("cible", idFicheCible),
		slog.String("type_cible", typeCible),
	)
	return nil
}
