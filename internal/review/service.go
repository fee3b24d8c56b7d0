// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
	"github.com/mlebrun/otaclub/internal/platform/validate"
	"github.com/mlebrun/otaclub/pkg/pointer"
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

func (service *Service) ListReviews(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	if filter.MediaType != "" && filter.MediaType != MediaTypeAnime && filter.MediaType != MediaTypeManga {
		return nil, 0, validate.RequiredError(FieldMediaType, "Must be one of: anime, manga")
	}
	return service.repo.ListReviews(context, filter, limit, offset)
}

func (service *Service) GetReview(context context.Context, id int64) (*Review, error) {
	return service.repo.GetReview(context, id)
}

// CreateReview posts a critique on behalf of userID.
//
// # Flow
//  1. Validate the payload (rating 0–10, required fields, media type enum).
//  2. The target fiche must exist and be active.
//  3. Reject a second active critique of the same fiche with 409. The partial
//     unique index repeats this check transactionally; dberr maps its
//     violation to the same 409, so concurrent posts cannot slip through.
//  4. Insert, then recompute the fiche aggregates.
func (service *Service) CreateReview(context context.Context, userID int64, input CreateInput) (*Review, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldMediaID, input.MediaID)
	validator.OneOf(FieldMediaType, input.MediaType, MediaTypeAnime, MediaTypeManga)
	validator.Range(FieldRating, input.Rating, 0, 10)
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 255)
	validator.Required(FieldContent, input.Content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.repo.MediaExists(context, input.MediaType, input.MediaID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound(input.MediaType)
	}

	duplicate, err := service.repo.HasActiveReview(context, userID, input.MediaType, input.MediaID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperr.Conflict("You have already reviewed this title")
	}

	review := &Review{
		IDUser:  userID,
		Note:    input.Rating,
		Titre:   input.Title,
		Contenu: input.Content,
	}
	if input.MediaType == MediaTypeAnime {
		review.IDAnime = pointer.To(input.MediaID)
	} else {
		review.IDManga = pointer.To(input.MediaID)
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	if err := service.repo.RecomputeRating(context, input.MediaType, input.MediaID); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("user_id", userID),
		slog.String("media_type", input.MediaType),
		slog.Int64("media_id", input.MediaID),
	)
	return review, nil
}

// UpdateReview edits a critique. Only the owner or an admin may do so, and the
// fiche aggregates are recomputed afterwards since the note may have changed.
func (service *Service) UpdateReview(context context.Context, actor Actor, id int64, input UpdateInput) (*Review, error) {
	validator := &validate.Validator{}
	validator.Range(FieldRating, input.Rating, 0, 10)
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 255)
	validator.Required(FieldContent, input.Content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	review, err := service.repo.GetReview(context, id)
	if err != nil {
		return nil, err
	}

	if !actor.canModify(review.IDUser) {
		return nil, apperr.Forbidden("You can only edit your own reviews")
	}

	review.Note = input.Rating
	review.Titre = input.Title
	review.Contenu = input.Content

	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	if err := service.repo.RecomputeRating(context, review.MediaType(), review.MediaID()); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", id), slog.Int64("actor_id", actor.ID))
	return review, nil
}

// DeleteReview archives a critique (statut=0) and recomputes the fiche
// aggregates without it.
func (service *Service) DeleteReview(context context.Context, actor Actor, id int64) error {
	review, err := service.repo.GetReview(context, id)
	if err != nil {
		return err
	}

	if !actor.canModify(review.IDUser) {
		return apperr.Forbidden("You can only delete your own reviews")
	}

	if err := service.repo.DeleteReview(context, id); err != nil {
		return err
	}

	if err := service.repo.RecomputeRating(context, review.MediaType(), review.MediaID()); err != nil {
		return err
	}

	service.logger.Warn("review_deleted", slog.Int64("review_id", id), slog.Int64("actor_id", actor.ID))
	return nil
}
