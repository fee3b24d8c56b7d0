// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package auth

import "context"

type Repository interface {
	GetByID(context context.Context, id int64) (*Member, error)
	GetByUsername(context context.Context, username string) (*Member, error)
	UsernameExists(context context.Context, username string) (bool, error)
	EmailExists(context context.Context, email string) (bool, error)
	Create(context context.Context, m *Member) error
	UpdatePasswordHash(context context.Context, id int64, hash string) error
}
