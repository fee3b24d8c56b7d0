// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlebrun/otaclub/internal/platform/database/schema"
	"github.com/mlebrun/otaclub/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func memberColumns() string {
	return strings.Join([]string{
		schema.SMFMembers.IDMember, schema.SMFMembers.MemberName, schema.SMFMembers.EmailAddress,
		schema.SMFMembers.Passwd, schema.SMFMembers.PasswordSalt, schema.SMFMembers.IDGroup,
		schema.SMFMembers.DateRegistered, schema.SMFMembers.Posts,
	}, ", ")
}

func scanMember(row interface{ Scan(...any) error }) (*Member, error) {
	m := &Member{}
	err := row.Scan(
		&m.IDMember, &m.MemberName, &m.EmailAddress, &m.Passwd, &m.PasswordSalt,
		&m.IDGroup, &m.DateRegistered, &m.Posts,
	)
	if err == nil {
		m.ComputeIsAdmin()
	}
	return m, err
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		memberColumns(), schema.SMFMembers.Table, schema.SMFMembers.IDMember)

	m, err := scanMember(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "member")
	}
	return m, nil
}

func (repository *PostgresRepository) GetByUsername(context context.Context, username string) (*Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`,
		memberColumns(), schema.SMFMembers.Table, schema.SMFMembers.MemberName)

	m, err := scanMember(repository.db.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "member")
	}
	return m, nil
}

func (repository *PostgresRepository) UsernameExists(context context.Context, username string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE lower(%s) = lower($1))`,
		schema.SMFMembers.Table, schema.SMFMembers.MemberName)

	var exists bool
	if err := repository.db.QueryRow(context, query, username).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "member")
	}
	return exists, nil
}

func (repository *PostgresRepository) EmailExists(context context.Context, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE lower(%s) = lower($1))`,
		schema.SMFMembers.Table, schema.SMFMembers.EmailAddress)

	var exists bool
	if err := repository.db.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "member")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, m *Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, '', $4, EXTRACT(EPOCH FROM NOW())::bigint, 0)
		RETURNING %s, %s
	`,
		schema.SMFMembers.Table,
		schema.SMFMembers.MemberName, schema.SMFMembers.EmailAddress, schema.SMFMembers.Passwd,
		schema.SMFMembers.PasswordSalt, schema.SMFMembers.IDGroup,
		schema.SMFMembers.DateRegistered, schema.SMFMembers.Posts,
		schema.SMFMembers.IDMember, schema.SMFMembers.DateRegistered,
	)

	err := repository.db.QueryRow(context, query, m.MemberName, m.EmailAddress, m.Passwd, m.IDGroup).
		Scan(&m.IDMember, &m.DateRegistered)
	return dberr.Wrap(err, "member")
}

// UpdatePasswordHash swaps a legacy SMF digest for a bcrypt hash and clears
// the now-useless salt.
func (repository *PostgresRepository) UpdatePasswordHash(context context.Context, id int64, hash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = '' WHERE %s = $1`,
		schema.SMFMembers.Table, schema.SMFMembers.Passwd, schema.SMFMembers.PasswordSalt, schema.SMFMembers.IDMember)

	_, err := repository.db.Exec(context, query, id, hash)
	return dberr.Wrap(err, "member")
}
