// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package review

import "context"

type Repository interface {
	ListReviews(context context.Context, f Filter, limit, offset int) ([]*Review, int, error)
	GetReview(context context.Context, id int64) (*Review, error)
	CreateReview(context context.Context, r *Review) error
	UpdateReview(context context.Context, r *Review) error
	DeleteReview(context context.Context, id int64) error
	HasActiveReview(context context.Context, userID int64, mediaType string, mediaID int64) (bool, error)
	MediaExists(context context.Context, mediaType string, mediaID int64) (bool, error)
	RecomputeRating(context context.Context, mediaType string, mediaID int64) error
}
