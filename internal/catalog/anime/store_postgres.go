// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package anime

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

// sortable maps client sort names to the columns ORDER BY may interpolate.
// Unknown names fall back to titre.
var sortable = map[string]string{
	"titre":         schema.Animes.Titre,
	"annee":         schema.Animes.Annee,
	"moyenne_notes": schema.Animes.MoyenneNotes,
	"nb_reviews":    schema.Animes.NbReviews,
	"id":            schema.Animes.ID,
}

// buildPredicate converts a Filter into one WHERE fragment plus its arguments.
// The data query and the COUNT query both consume this exact output, so the
// two can never disagree on which rows a filter matches.
func buildPredicate(f Filter) (string, []any) {
	clauses := []string{schema.Animes.Statut + " = 1"}
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)",
			schema.Animes.Titre, len(args), schema.Animes.TitreOrig, len(args)))
	}

	if f.Year > 0 {
		args = append(args, f.Year)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.Animes.Annee, len(args)))
	}

	if f.Studio != "" {
		args = append(args, "%"+f.Studio+"%")
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", schema.Animes.Studio, len(args)))
	}

	if f.TagID > 0 {
		args = append(args, f.TagID)
		clauses = append(clauses, fmt.Sprintf("%s IN (SELECT %s FROM %s WHERE %s = $%d AND %s = 'anime')",
			schema.Animes.ID, schema.TagLinks.FicheID, schema.TagLinks.Table,
			schema.TagLinks.TagID, len(args), schema.TagLinks.Type))
	}

	return strings.Join(clauses, " AND "), args
}

// orderBy resolves the validated ORDER BY clause from the filter.
func orderBy(f Filter) string {
	column, ok := sortable[f.Sort]
	if !ok {
		column = schema.Animes.Titre
	}

	direction := "ASC"
	if strings.EqualFold(f.Direction, "desc") {
		direction = "DESC"
	}

	return column + " " + direction
}

func animeColumns() string {
	return strings.Join([]string{
		schema.Animes.ID, schema.Animes.NiceURL, schema.Animes.Titre, schema.Animes.TitreOrig,
		schema.Animes.Annee, schema.Animes.NbEp, schema.Animes.Studio, schema.Animes.Synopsis,
		schema.Animes.Image, schema.Animes.Statut, schema.Animes.MoyenneNotes, schema.Animes.NbReviews,
	}, ", ")
}

func scanAnime(row interface{ Scan(...any) error }) (*Anime, error) {
	a := &Anime{}
	err := row.Scan(
		&a.ID, &a.NiceURL, &a.Titre, &a.TitreOrig, &a.Annee, &a.NbEp,
		&a.Studio, &a.Synopsis, &a.Image, &a.Statut, &a.MoyenneNotes, &a.NbReviews,
	)
	return a, err
}

func (repository *PostgresRepository) ListAnimes(context context.Context, f Filter, limit, offset int) ([]*Anime, int, error) {
	predicate, args := buildPredicate(f)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.Animes.Table, predicate)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_animes")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, animeColumns(), schema.Animes.Table, predicate, orderBy(f), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_animes")
	}
	defer rows.Close()

	var animes []*Anime
	for rows.Next() {
		a, err := scanAnime(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_anime")
		}
		animes = append(animes, a)
	}

	return animes, total, nil
}

func (repository *PostgresRepository) GetAnime(context context.Context, id int64) (*Anime, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = 1
	`, animeColumns(), schema.Animes.Table, schema.Animes.ID, schema.Animes.Statut)

	a, err := scanAnime(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "anime")
	}
	return a, nil
}

func (repository *PostgresRepository) GetAnimeByNiceURL(context context.Context, niceURL string) (*Anime, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = 1
	`, animeColumns(), schema.Animes.Table, schema.Animes.NiceURL, schema.Animes.Statut)

	a, err := scanAnime(repository.db.QueryRow(context, query, niceURL))
	if err != nil {
		return nil, dberr.Wrap(err, "anime")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateAnime(context context.Context, a *Anime) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		RETURNING %s
	`,
		schema.Animes.Table, schema.Animes.NiceURL, schema.Animes.Titre, schema.Animes.TitreOrig,
		schema.Animes.Annee, schema.Animes.NbEp, schema.Animes.Studio, schema.Animes.Synopsis,
		schema.Animes.Image, schema.Animes.Statut,
		schema.Animes.ID,
	)

	err := repository.db.QueryRow(context, query,
		a.NiceURL, a.Titre, a.TitreOrig, a.Annee, a.NbEp, a.Studio, a.Synopsis, a.Image,
	).Scan(&a.ID)
	if err != nil {
		return dberr.Wrap(err, "anime")
	}

	a.Statut = 1
	return nil
}

func (repository *PostgresRepository) UpdateAnime(context context.Context, a *Anime) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1 AND %s = 1
		RETURNING %s
	`,
		schema.Animes.Table,
		schema.Animes.NiceURL, schema.Animes.Titre, schema.Animes.TitreOrig, schema.Animes.Annee,
		schema.Animes.NbEp, schema.Animes.Studio, schema.Animes.Synopsis,
		schema.Animes.ID, schema.Animes.Statut,
		schema.Animes.ID,
	)

	err := repository.db.QueryRow(context, query,
		a.ID, a.NiceURL, a.Titre, a.TitreOrig, a.Annee, a.NbEp, a.Studio, a.Synopsis,
	).Scan(&a.ID)
	return dberr.Wrap(err, "anime")
}

// DeleteAnime flips statut to 0. The row and its critiques stay in place so
// the fiche can be restored without losing history.
func (repository *PostgresRepository) DeleteAnime(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = 0 WHERE %s = $1 AND %s = 1`,
		schema.Animes.Table, schema.Animes.Statut, schema.Animes.ID, schema.Animes.Statut,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "anime")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "anime")
	}
	return nil
}

func (repository *PostgresRepository) SetImage(context context.Context, id int64, filename string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 AND %s = 1 RETURNING %s`,
		schema.Animes.Table, schema.Animes.Image, schema.Animes.ID, schema.Animes.Statut, schema.Animes.ID,
	)

	var returned int64
	err := repository.db.QueryRow(context, query, id, filename).Scan(&returned)
	return dberr.Wrap(err, "anime")
}
