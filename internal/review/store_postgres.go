// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package review

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

// mediaColumn resolves which critique foreign key a media type uses.
func mediaColumn(mediaType string) string {
	if mediaType == MediaTypeAnime {
		return schema.Critiques.IDAnime
	}
	return schema.Critiques.IDManga
}

// buildPredicate converts a Filter into one WHERE fragment plus its arguments,
// shared between the data query and the COUNT query.
func buildPredicate(f Filter) (string, []any) {
	clauses := []string{schema.Critiques.Statut + " = 1"}
	args := []any{}

	if f.UserID > 0 {
		args = append(args, f.UserID)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.Critiques.IDUser, len(args)))
	}

	if f.MediaType != "" && f.MediaID > 0 {
		args = append(args, f.MediaID)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", mediaColumn(f.MediaType), len(args)))
	} else if f.MediaType != "" {
		clauses = append(clauses, fmt.Sprintf("%s IS NOT NULL", mediaColumn(f.MediaType)))
	}

	return strings.Join(clauses, " AND "), args
}

func reviewColumns() string {
	return strings.Join([]string{
		schema.Critiques.ID, schema.Critiques.IDUser, schema.Critiques.IDAnime, schema.Critiques.IDManga,
		schema.Critiques.Note, schema.Critiques.Titre, schema.Critiques.Contenu,
		schema.Critiques.DateCreation, schema.Critiques.Statut,
	}, ", ")
}

func scanReview(row interface{ Scan(...any) error }) (*Review, error) {
	r := &Review{}
	err := row.Scan(
		&r.ID, &r.IDUser, &r.IDAnime, &r.IDManga, &r.Note, &r.Titre, &r.Contenu,
		&r.DateCreation, &r.Statut,
	)
	return r, err
}

func (repository *PostgresRepository) ListReviews(context context.Context, f Filter, limit, offset int) ([]*Review, int, error) {
	predicate, args := buildPredicate(f)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.Critiques.Table, predicate)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d
	`, reviewColumns(), schema.Critiques.Table, predicate, schema.Critiques.DateCreation, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetReview(context context.Context, id int64) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = 1
	`, reviewColumns(), schema.Critiques.Table, schema.Critiques.ID, schema.Critiques.Statut)

	r, err := scanReview(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "review")
	}
	return r, nil
}

func (repository *PostgresRepository) CreateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, EXTRACT(EPOCH FROM NOW())::bigint, 1)
		RETURNING %s, %s
	`,
		schema.Critiques.Table,
		schema.Critiques.IDUser, schema.Critiques.IDAnime, schema.Critiques.IDManga,
		schema.Critiques.Note, schema.Critiques.Titre, schema.Critiques.Contenu,
		schema.Critiques.DateCreation, schema.Critiques.Statut,
		schema.Critiques.ID, schema.Critiques.DateCreation,
	)

	err := repository.db.QueryRow(context, query,
		r.IDUser, r.IDAnime, r.IDManga, r.Note, r.Titre, r.Contenu,
	).Scan(&r.ID, &r.DateCreation)
	if err != nil {
		return dberr.Wrap(err, "review")
	}

	r.Statut = 1
	return nil
}

func (repository *PostgresRepository) UpdateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1 AND %s = 1
		RETURNING %s
	`,
		schema.Critiques.Table,
		schema.Critiques.Note, schema.Critiques.Titre, schema.Critiques.Contenu,
		schema.Critiques.ID, schema.Critiques.Statut,
		schema.Critiques.ID,
	)

	err := repository.db.QueryRow(context, query, r.ID, r.Note, r.Titre, r.Contenu).Scan(&r.ID)
	return dberr.Wrap(err, "review")
}

// DeleteReview flips statut to 0; the partial unique index ignores archived
// rows, so the member can post a fresh critique afterwards.
func (repository *PostgresRepository) DeleteReview(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = 0 WHERE %s = $1 AND %s = 1`,
		schema.Critiques.Table, schema.Critiques.Statut, schema.Critiques.ID, schema.Critiques.Statut,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "review")
	}
	return nil
}

func (repository *PostgresRepository) HasActiveReview(context context.Context, userID int64, mediaType string, mediaID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s = 1)`,
		schema.Critiques.Table, schema.Critiques.IDUser, mediaColumn(mediaType), schema.Critiques.Statut,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, userID, mediaID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review")
	}
	return exists, nil
}

func (repository *PostgresRepository) MediaExists(context context.Context, mediaType string, mediaID int64) (bool, error) {
	table := schema.Animes.Table
	idColumn, statutColumn := schema.Animes.ID, schema.Animes.Statut
	if mediaType == MediaTypeManga {
		table = schema.Mangas.Table
		idColumn, statutColumn = schema.Mangas.ID, schema.Mangas.Statut
	}

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = 1)`, table, idColumn, statutColumn)

	var exists bool
	if err := repository.db.QueryRow(context, query, mediaID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, mediaType)
	}
	return exists, nil
}

// RecomputeRating rebuilds moyenne_notes and nb_reviews from the active
// critiques in one statement. Running it any number of times yields the same
// values, so every mutation path can call it unconditionally.
func (repository *PostgresRepository) RecomputeRating(context context.Context, mediaType string, mediaID int64) error {
	table := schema.Animes.Table
	idColumn := schema.Animes.ID
	moyenne, nbReviews := schema.Animes.MoyenneNotes, schema.Animes.NbReviews
	if mediaType == MediaTypeManga {
		table = schema.Mangas.Table
		idColumn = schema.Mangas.ID
		moyenne, nbReviews = schema.Mangas.MoyenneNotes, schema.Mangas.NbReviews
	}
	critiqueFK := mediaColumn(mediaType)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE((SELECT ROUND(AVG(%s)::numeric, 2) FROM %s WHERE %s = $1 AND %s = 1), 0),
		    %s = (SELECT count(*) FROM %s WHERE %s = $1 AND %s = 1)
		WHERE %s = $1
	`,
		table,
		moyenne, schema.Critiques.Note, schema.Critiques.Table, critiqueFK, schema.Critiques.Statut,
		nbReviews, schema.Critiques.Table, critiqueFK, schema.Critiques.Statut,
		idColumn,
	)

	_, err := repository.db.Exec(context, query, mediaID)
	return dberr.Wrap(err, mediaType)
}
