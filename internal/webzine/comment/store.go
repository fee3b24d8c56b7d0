// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package comment

import "context"

type Repository interface {
	ListApprovedComments(context context.Context, articleID int64, limit, offset int) ([]*Comment, int, error)
	ListCommentsByModeration(context context.Context, moderation int, limit, offset int) ([]*Comment, int, error)
	GetComment(context context.Context, id int64) (*Comment, error)
	CreateComment(context context.Context, c *Comment) error
	SetModeration(context context.Context, id int64, moderation int) error
	DeleteComment(context context.Context, id int64) error
	RecomputeCommentCount(context context.Context, articleID int64) error
	ArticlePublished(context context.Context, articleID int64) (bool, error)
}
