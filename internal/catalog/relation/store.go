// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package relation

import "context"

type Repository interface {
	ListRelations(context context.Context, ficheOrigine string) ([]*Relation, error)
	CreateRelation(context context.Context, ficheOrigine string, idFicheCible int64, typeCible string) error
	DeleteRelation(context context.Context, ficheOrigine string, idFicheCible int64, typeCible string) error
}
