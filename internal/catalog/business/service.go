// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package business

import (
	"context"
	"log/slog"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
	"github.com/mlebrun/otaclub/internal/platform/validate"
)

// CachePrefix namespaces this directory's entries in the response cache.
const CachePrefix = "businesses"

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

func (service *Service) ListBusinesses(context context.Context, filter Filter, limit, offset int) ([]*Business, int, error) {
	return service.repo.ListBusinesses(context, filter, limit, offset)
}

func (service *Service) GetBusiness(context context.Context, id int64) (*Business, error) {
	return service.repo.GetBusiness(context, id)
}

func (service *Service) CreateBusiness(context context.Context, business *Business) error {
	if err := validateBusiness(business); err != nil {
		return err
	}

	// Denomination uniqueness is a business rule, not a schema constraint:
	// legacy data contains case variants that must be treated as duplicates.
	if err := service.checkDenomination(context, business.Denomination, 0); err != nil {
		return err
	}

	if err := service.repo.CreateBusiness(context, business); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("business_created", slog.Int64("business_id", business.ID), slog.String("denomination", business.Denomination))
	return nil
}

func (service *Service) UpdateBusiness(context context.Context, id int64, business *Business) error {
	business.ID = id

	if err := validateBusiness(business); err != nil {
		return err
	}

	if err := service.checkDenomination(context, business.Denomination, id); err != nil {
		return err
	}

	if err := service.repo.UpdateBusiness(context, business); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Info("business_updated", slog.Int64("business_id", id))
	return nil
}

// DeleteBusiness removes the entity permanently. There is no archive state
// for businesses.
func (service *Service) DeleteBusiness(context context.Context, id int64) error {
	if err := service.repo.DeleteBusiness(context, id); err != nil {
		return err
	}

	service.cache.InvalidatePrefix(context, CachePrefix)
	service.logger.Warn("business_deleted", slog.Int64("business_id", id))
	return nil
}

func (service *Service) checkDenomination(context context.Context, denomination string, excludeID int64) error {
	exists, err := service.repo.ExistsByDenomination(context, denomination, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("A business with this denomination already exists")
	}
	return nil
}

func validateBusiness(business *Business) error {
	validator := &validate.Validator{}

	validator.Required(FieldDenomination, business.Denomination).MaxLen(FieldDenomination, business.Denomination, 255)

	if business.Type != nil {
		validator.MaxLen(FieldType, *business.Type, 100)
	}
	if business.Origine != nil {
		validator.MaxLen(FieldOrigine, *business.Origine, 100)
	}

	return validator.Err()
}
