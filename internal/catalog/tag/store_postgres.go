// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlebrun/otaclub/internal/platform/database/schema"
	"github.com/mlebrun/otaclub/internal/platform/dberr"
	"github.com/mlebrun/otaclub/pkg/slice"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// buildPredicate converts a Filter into one WHERE fragment plus its arguments,
// shared between the data query and the COUNT query.
func buildPredicate(f Filter) (string, []any) {
	clauses := []string{"TRUE"}
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", schema.Tags.Nom, len(args)))
	}

	if len(f.Categories) > 0 {
		args = append(args, f.Categories)
		clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", schema.Tags.Categorie, len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func tagColumns() string {
	return strings.Join([]string{
		schema.Tags.ID, schema.Tags.Nom, schema.Tags.Categorie, schema.Tags.NiceURL,
	}, ", ")
}

func scanTag(row interface{ Scan(...any) error }) (*Tag, error) {
	t := &Tag{}
	err := row.Scan(&t.ID, &t.Nom, &t.Categorie, &t.NiceURL)
	return t, err
}

func (repository *PostgresRepository) ListTags(context context.Context, f Filter, limit, offset int) ([]*Tag, int, error) {
	predicate, args := buildPredicate(f)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.Tags.Table, predicate)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tags")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d
	`, tagColumns(), schema.Tags.Table, predicate, schema.Tags.Nom, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, total, nil
}

func (repository *PostgresRepository) GetTag(context context.Context, id int64) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, tagColumns(), schema.Tags.Table, schema.Tags.ID)

	t, err := scanTag(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "tag")
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTag(context context.Context, t *Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, schema.Tags.Table, schema.Tags.Nom, schema.Tags.Categorie, schema.Tags.NiceURL, schema.Tags.ID)

	err := repository.db.QueryRow(context, query, t.Nom, t.Categorie, t.NiceURL).Scan(&t.ID)
	return dberr.Wrap(err, "tag")
}

func (repository *PostgresRepository) UpdateTag(context context.Context, t *Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1
		RETURNING %s
	`, schema.Tags.Table, schema.Tags.Nom, schema.Tags.Categorie, schema.Tags.NiceURL, schema.Tags.ID, schema.Tags.ID)

	err := repository.db.QueryRow(context, query, t.ID, t.Nom, t.Categorie, t.NiceURL).Scan(&t.ID)
	return dberr.Wrap(err, "tag")
}

func (repository *PostgresRepository) DeleteTag(context context.Context, id int64) error {
	// Links go first so no orphan rows survive the tag.
	linkQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.TagLinks.Table, schema.TagLinks.TagID)
	if _, err := repository.db.Exec(context, linkQuery, id); err != nil {
		return dberr.Wrap(err, "tag")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Tags.Table, schema.Tags.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "tag")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "tag")
	}
	return nil
}

func (repository *PostgresRepository) ListTagsForFiche(context context.Context, ficheID int64, ficheType string) ([]*Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s t
		JOIN %s l ON l.%s = t.%s
		WHERE l.%s = $1 AND l.%s = $2
		ORDER BY t.%s ASC
	`,
		prefixColumns("t", tagColumns()),
		schema.Tags.Table, schema.TagLinks.Table, schema.TagLinks.TagID, schema.Tags.ID,
		schema.TagLinks.FicheID, schema.TagLinks.Type, schema.Tags.Nom,
	)

	rows, err := repository.db.Query(context, query, ficheID, ficheType)
	if err != nil {
		return nil, dberr.Wrap(err, "fiche_tags")
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, nil
}

func (repository *PostgresRepository) Attach(context context.Context, link Link) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, schema.TagLinks.Table, schema.TagLinks.TagID, schema.TagLinks.FicheID, schema.TagLinks.Type)

	_, err := repository.db.Exec(context, query, link.TagID, link.FicheID, link.Type)
	return dberr.Wrap(err, "tag_link")
}

func (repository *PostgresRepository) Detach(context context.Context, link Link) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		schema.TagLinks.Table, schema.TagLinks.TagID, schema.TagLinks.FicheID, schema.TagLinks.Type,
	)

	cmd, err := repository.db.Exec(context, query, link.TagID, link.FicheID, link.Type)
	if err != nil {
		return dberr.Wrap(err, "tag_link")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "tag_link")
	}
	return nil
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	qualified := slice.Map(strings.Split(columns, ", "), func(column string) string {
		return alias + "." + column
	})
	return strings.Join(qualified, ", ")
}
