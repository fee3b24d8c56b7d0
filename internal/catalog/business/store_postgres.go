// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package business

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
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

var sortable = map[string]string{
	"denomination": schema.Business.Denomination,
	"type":         schema.Business.Type,
	"origine":      schema.Business.Origine,
	"id":           schema.Business.ID,
}

// buildPredicate converts a Filter into one WHERE fragment plus its arguments,
// shared between the data query and the COUNT query.
func buildPredicate(f Filter) (string, []any) {
	clauses := []string{schema.Business.Statut + " = 1"}
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", schema.Business.Denomination, len(args)))
	}

	if f.Type != "" {
		args = append(args, f.Type)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.Business.Type, len(args)))
	}

	if f.Origine != "" {
		args = append(args, f.Origine)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.Business.Origine, len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func orderBy(f Filter) string {
	column, ok := sortable[f.Sort]
	if !ok {
		column = schema.Business.Denomination
	}

	direction := "ASC"
	if strings.EqualFold(f.Direction, "desc") {
		direction = "DESC"
	}

	return column + " " + direction
}

func businessColumns() string {
	return strings.Join([]string{
		schema.Business.ID, schema.Business.Denomination, schema.Business.Type,
		schema.Business.Origine, schema.Business.SiteOfficiel, schema.Business.Image, schema.Business.Statut,
	}, ", ")
}

func scanBusiness(row interface{ Scan(...any) error }) (*Business, error) {
	b := &Business{}
	err := row.Scan(&b.ID, &b.Denomination, &b.Type, &b.Origine, &b.SiteOfficiel, &b.Image, &b.Statut)
	return b, err
}

func (repository *PostgresRepository) ListBusinesses(context context.Context, f Filter, limit, offset int) ([]*Business, int, error) {
	predicate, args := buildPredicate(f)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.Business.Table, predicate)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_businesses")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, businessColumns(), schema.Business.Table, predicate, orderBy(f), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_businesses")
	}
	defer rows.Close()

	var businesses []*Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_business")
		}
		businesses = append(businesses, b)
	}

	return businesses, total, nil
}

func (repository *PostgresRepository) GetBusiness(context context.Context, id int64) (*Business, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = 1
	`, businessColumns(), schema.Business.Table, schema.Business.ID, schema.Business.Statut)

	b, err := scanBusiness(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "business")
	}
	return b, nil
}

func (repository *PostgresRepository) CreateBusiness(context context.Context, b *Business) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING %s
	`,
		schema.Business.Table, schema.Business.Denomination, schema.Business.Type,
		schema.Business.Origine, schema.Business.SiteOfficiel, schema.Business.Image, schema.Business.Statut,
		schema.Business.ID,
	)

	err := repository.db.QueryRow(context, query,
		b.Denomination, b.Type, b.Origine, b.SiteOfficiel, b.Image,
	).Scan(&b.ID)
	if err != nil {
		return dberr.Wrap(err, "business")
	}

	b.Statut = 1
	return nil
}

func (repository *PostgresRepository) UpdateBusiness(context context.Context, b *Business) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Business.Table,
		schema.Business.Denomination, schema.Business.Type, schema.Business.Origine,
		schema.Business.SiteOfficiel, schema.Business.Image,
		schema.Business.ID,
		schema.Business.ID,
	)

	err := repository.db.QueryRow(context, query,
		b.ID, b.Denomination, b.Type, b.Origine, b.SiteOfficiel, b.Image,
	).Scan(&b.ID)
	return dberr.Wrap(err, "business")
}

// DeleteBusiness removes the row permanently.
func (repository *PostgresRepository) DeleteBusiness(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Business.Table, schema.Business.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "business")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "business")
	}
	return nil
}

func (repository *PostgresRepository) ExistsByDenomination(context context.Context, denomination string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE lower(%s) = lower($1) AND %s <> $2)`,
		schema.Business.Table, schema.Business.Denomination, schema.Business.ID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, denomination, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "business")
	}
	return exists, nil
}
