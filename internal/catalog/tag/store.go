// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package tag

import "context"

type Repository interface {
	ListTags(context context.Context, f Filter, limit, offset int) ([]*Tag, int, error)
	GetTag(context context.Context, id int64) (*Tag, error)
	CreateTag(context context.Context, t *Tag) error
	UpdateTag(context context.Context, t *Tag) error
	DeleteTag(context context.Context, id int64) error
	ListTagsForFiche(context context.Context, ficheID int64, ficheType string) ([]*Tag, error)
	Attach(context context.Context, link Link) error
	Detach(context context.Context, link Link) error
}
