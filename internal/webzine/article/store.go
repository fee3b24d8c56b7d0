// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package article

import "context"

type Repository interface {
	ListArticles(context context.Context, f Filter, limit, offset int) ([]*Article, int, error)
	GetArticle(context context.Context, id int64) (*Article, error)
	GetArticleByNiceURL(context context.Context, niceURL string) (*Article, error)
	CreateArticle(context context.Context, a *Article) error
	UpdateArticle(context context.Context, a *Article) error
	DeleteArticle(context context.Context, id int64) error
	IncrementClicks(context context.Context, id int64) error
}
