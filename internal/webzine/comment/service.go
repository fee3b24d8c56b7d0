// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
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

func (service *Service) ListApprovedComments(context context.Context, articleID int64, limit, offset int) ([]*Comment, int, error) {
	return service.repo.ListApprovedComments(context, articleID, limit, offset)
}

// ListModerationQueue lists comments in a given moderation state for admins.
func (service *Service) ListModerationQueue(context context.Context, moderation int, limit, offset int) ([]*Comment, int, error) {
	if err := validateModeration(moderation); err != nil {
		return nil, 0, err
	}
	return service.repo.ListCommentsByModeration(context, moderation, limit, offset)
}

// CreateComment posts a comment under a published article.
//
// # Flow
//  1. Validate the payload; anonymous posters must provide a display name.
//  2. Run the spam heuristic; a match rejects the comment outright.
//  3. Store with moderation 0 (anonymous, awaiting approval) or 1 (authenticated).
//  4. Recompute the article's approved-comment count.
func (service *Service) CreateComment(context context.Context, articleID int64, userID *int64, userName string, input CreateInput) (*Comment, error) {
	authorName := input.AuteurNom
	if userID != nil {
		authorName = userName
	}

	validator := &validate.Validator{}
	validator.Required(FieldAuteurNom, authorName).MaxLen(FieldAuteurNom, authorName, 100)
	validator.Required(FieldContenu, input.Contenu).MaxLen(FieldContenu, input.Contenu, 5000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	published, err := service.repo.ArticlePublished(context, articleID)
	if err != nil {
		return nil, err
	}
	if !published {
		return nil, apperr.NotFound("article")
	}

	if reason := SpamReason(input.Contenu); reason != "" {
		service.logger.Warn("comment_rejected_spam",
			slog.Int64("article_id", articleID),
			slog.String("reason", reason),
		)
		return nil, apperr.ValidationError("Your comment was flagged as spam")
	}

	moderation := ModerationPending
	if userID != nil {
		moderation = ModerationApproved
	}

	commentRow := &Comment{
		IDArticle:  articleID,
		IDUser:     userID,
		AuteurNom:  authorName,
		Contenu:    input.Contenu,
		Moderation: moderation,
	}

	if err := service.repo.CreateComment(context, commentRow); err != nil {
		return nil, err
	}

	if err := service.repo.RecomputeCommentCount(context, articleID); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", commentRow.ID),
		slog.Int64("article_id", articleID),
		slog.Int("moderation", moderation),
	)
	return commentRow, nil
}

// Moderate transitions a comment to any of the three states and recomputes the
// parent counter. Re-applying the same state is harmless.
func (service *Service) Moderate(context context.Context, id int64, moderation int) (*Comment, error) {
	if err := validateModeration(moderation); err != nil {
		return nil, err
	}

	commentRow, err := service.repo.GetComment(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.repo.SetModeration(context, id, moderation); err != nil {
		return nil, err
	}

	if err := service.repo.RecomputeCommentCount(context, commentRow.IDArticle); err != nil {
		return nil, err
	}

	commentRow.Moderation = moderation
	service.logger.Info("comment_moderated",
		slog.Int64("comment_id", id),
		slog.Int("moderation", moderation),
	)
	return commentRow, nil
}

func (service *Service) DeleteComment(context context.Context, id int64) error {
	commentRow, err := service.repo.GetComment(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteComment(context, id); err != nil {
		return err
	}

	if err := service.repo.RecomputeCommentCount(context, commentRow.IDArticle); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted", slog.Int64("comment_id", id))
	return nil
}

func validateModeration(moderation int) error {
	validator := &validate.Validator{}
	validator.Custom(FieldModeration,
		moderation != ModerationRejected && moderation != ModerationPending && moderation != ModerationApproved,
		"Must be -1 (rejected), 0 (pending) or 1 (approved)")
	return validator.Err()
}
