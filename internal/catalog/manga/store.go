// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package manga

import "context"

type Repository interface {
	ListMangas(context context.Context, f Filter, limit, offset int) ([]*Manga, int, error)
	GetManga(context context.Context, id int64) (*Manga, error)
	GetMangaByNiceURL(context context.Context, niceURL string) (*Manga, error)
	CreateManga(context context.Context, m *Manga) error
	UpdateManga(context context.Context, m *Manga) error
	DeleteManga(context context.Context, id int64) error
	SetImage(context context.Context, id int64, filename string) error
}
