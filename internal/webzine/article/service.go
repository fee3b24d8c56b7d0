// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package article

import (
	"context"
	"log/slog"
	"time"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
	"github.com/mlebrun/otaclub/internal/platform/validate"
	"github.com/mlebrun/otaclub/pkg/pointer"
	"github.com/mlebrun/otaclub/pkg/slice"
	"github.com/mlebrun/otaclub/pkg/slug"
)

// CachePrefix namespaces webzine listings in the response cache.
const CachePrefix = "articles"

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

func (service *Service) ListArticles(context context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {
	return service.repo.ListArticles(context, filter, limit, offset)
}

// GetPublishedArticle serves the public read path: drafts and archives answer
// 404, and every successful read counts one click.
func (service *Service) GetPublishedArticle(context context.Context, id int64) (*Article, error) {
	result, err := service.repo.GetArticle(context, id)
	if err != nil {
		return nil, err
	}
	return service.finishPublicRead(context, result)
}

// GetPublishedArticleByNiceURL is the slug variant of the public read path.
func (service *Service) GetPublishedArticleByNiceURL(context context.Context, niceURL string) (*Article, error) {
	result, err := service.repo.GetArticleByNiceURL(context, niceURL)
	if err != nil {
		return nil, err
	}
	return service.finishPublicRead(context, result)
}

func (service *Service) finishPublicRead(context context.Context, result *Article) (*Article, error) {
	if result.Statut != StatusPublished {
		return nil, apperr.NotFound("article")
	}

	// Click counting is best effort; a failed increment must not fail the read.
	if err := service.repo.IncrementClicks(context, result.ID); err != nil {
		service.logger.Warn("article_click_increment_failed", slog.Int64("article_id", result.ID), slog.Any("error", err))
	} else {
		result.NbClics++
	}

	return result, nil
}

// GetArticle is the admin read path: any statut is visible.
func (service *Service) GetArticle(context context.Context, id int64) (*Article, error) {
	return service.repo.GetArticle(context, id)
}

func (service *Service) CreateArticle(context context.Context, authorID int64, input *Article) error {
	if err := validateArticle(input); err != nil {
		return err
	}

	input.Auteur = authorID
	if input.NiceURL == "" {
		input.NiceURL = slug.From(input.Titre)
	}

	// New articles start as drafts unless explicitly published.
	if input.Statut == StatusPublished {
		input.DatePublication = pointer.To(time.Now().Unix())
	} else {
		input.Statut = StatusDraft
		input.DatePublication = nil
	}

	if err := service.repo.CreateArticle(context, input); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("article_created",
		slog.Int64("article_id", input.ID),
		slog.Int64("author_id", authorID),
		slog.Int("statut", input.Statut),
	)
	return nil
}

func (service *Service) UpdateArticle(context context.Context, id int64, input *Article) error {
	if err := validateArticle(input); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldStatut,
		!slice.Contains([]int{StatusArchived, StatusDraft, StatusPublished}, input.Statut),
		"Must be -1 (archived), 0 (draft) or 1 (published)")
	if err := validator.Err(); err != nil {
		return err
	}

	current, err := service.repo.GetArticle(context, id)
	if err != nil {
		return err
	}

	input.ID = id
	input.Auteur = current.Auteur
	if input.NiceURL == "" {
		input.NiceURL = slug.From(input.Titre)
	}

	// The first transition to published stamps the publication date; later
	// edits keep the original.
	input.DatePublication = current.DatePublication
	if input.Statut == StatusPublished && current.DatePublication == nil {
		input.DatePublication = pointer.To(time.Now().Unix())
	}

	if err := service.repo.UpdateArticle(context, input); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("article_updated",
		slog.Int64("article_id", id),
		slog.Int("statut", input.Statut),
	)
	return nil
}

func (service *Service) DeleteArticle(context context.Context, id int64) error {
	if err := service.repo.DeleteArticle(context, id); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Warn("article_deleted", slog.Int64("article_id", id))
	return nil
}

func validateArticle(input *Article) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitre, input.Titre).MaxLen(FieldTitre, input.Titre, 255)
	validator.Required(FieldContenu, input.Contenu)
	return validator.Err()
}
