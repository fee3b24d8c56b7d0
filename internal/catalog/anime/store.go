// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package anime

import "context"

type Repository interface {
	ListAnimes(context context.Context, f Filter, limit, offset int) ([]*Anime, int, error)
	GetAnime(context context.Context, id int64) (*Anime, error)
	GetAnimeByNiceURL(context context.Context, niceURL string) (*Anime, error)
	CreateAnime(context context.Context, a *Anime) error
	UpdateAnime(context context.Context, a *Anime) error
	DeleteAnime(context context.Context, id int64) error
	SetImage(context context.Context, id int64, filename string) error
}
