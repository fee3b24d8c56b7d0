// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package business

import "context"

type Repository interface {
	ListBusinesses(context context.Context, f Filter, limit, offset int) ([]*Business, int, error)
	GetBusiness(context context.Context, id int64) (*Business, error)
	CreateBusiness(context context.Context, b *Business) error
	UpdateBusiness(context context.Context, b *Business) error
	DeleteBusiness(context context.Context, id int64) error
	ExistsByDenomination(context context.Context, denomination string, excludeID int64) (bool, error)
}
