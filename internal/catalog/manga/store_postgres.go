// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package manga

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
	"titre":         schema.Mangas.Titre,
	"annee":         schema.Mangas.Annee,
	"moyenne_notes": schema.Mangas.MoyenneNotes,
	"nb_reviews":    schema.Mangas.NbReviews,
	"id":            schema.Mangas.ID,
}

// buildPredicate converts a Filter into one WHERE fragment plus its arguments,
// shared between the data query and the COUNT query.
func buildPredicate(f Filter) (string, []any) {
	clauses := []string{schema.Mangas.Statut + " = 1"}
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)",
			schema.Mangas.Titre, len(args), schema.Mangas.TitreOrig, len(args)))
	}

	if f.Year > 0 {
		args = append(args, f.Year)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", schema.Mangas.Annee, len(args)))
	}

	if f.Auteur != "" {
		args = append(args, "%"+f.Auteur+"%")
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", schema.Mangas.Auteur, len(args)))
	}

	if f.TagID > 0 {
		args = append(args, f.TagID)
		clauses = append(clauses, fmt.Sprintf("%s IN (SELECT %s FROM %s WHERE %s = $%d AND %s = 'manga')",
			schema.Mangas.ID, schema.TagLinks.FicheID, schema.TagLinks.Table,
			schema.TagLinks.TagID, len(args), schema.TagLinks.Type))
	}

	return strings.Join(clauses, " AND "), args
}

func orderBy(f Filter) string {
	column, ok := sortable[f.Sort]
	if !ok {
		column = schema.Mangas.Titre
	}

	direction := "ASC"
	if strings.EqualFold(f.Direction, "desc") {
		direction = "DESC"
	}

	return column + " " + direction
}

func mangaColumns() string {
	return strings.Join([]string{
		schema.Mangas.ID, schema.Mangas.NiceURL, schema.Mangas.Titre, schema.Mangas.TitreOrig,
		schema.Mangas.Annee, schema.Mangas.NbVolumes, schema.Mangas.Auteur, schema.Mangas.StatutPublication,
		schema.Mangas.Synopsis, schema.Mangas.Image, schema.Mangas.Statut,
		schema.Mangas.MoyenneNotes, schema.Mangas.NbReviews,
	}, ", ")
}

func scanManga(row interface{ Scan(...any) error }) (*Manga, error) {
	m := &Manga{}
	err := row.Scan(
		&m.ID, &m.NiceURL, &m.Titre, &m.TitreOrig, &m.Annee, &m.NbVolumes, &m.Auteur,
		&m.StatutPublication, &m.Synopsis, &m.Image, &m.Statut, &m.MoyenneNotes, &m.NbReviews,
	)
	return m, err
}

func (repository *PostgresRepository) ListMangas(context context.Context, f Filter, limit, offset int) ([]*Manga, int, error) {
	predicate, args := buildPredicate(f)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.Mangas.Table, predicate)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_mangas")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, mangaColumns(), schema.Mangas.Table, predicate, orderBy(f), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_mangas")
	}
	defer rows.Close()

	var mangas []*Manga
	for rows.Next() {
		m, err := scanManga(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_manga")
		}
		mangas = append(mangas, m)
	}

	return mangas, total, nil
}

func (repository *PostgresRepository) GetManga(context context.Context, id int64) (*Manga, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = 1
	`, mangaColumns(), schema.Mangas.Table, schema.Mangas.ID, schema.Mangas.Statut)

	m, err := scanManga(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "manga")
	}
	return m, nil
}

func (repository *PostgresRepository) GetMangaByNiceURL(context context.Context, niceURL string) (*Manga, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = 1
	`, mangaColumns(), schema.Mangas.Table, schema.Mangas.NiceURL, schema.Mangas.Statut)

	m, err := scanManga(repository.db.QueryRow(context, query, niceURL))
	if err != nil {
		return nil, dberr.Wrap(err, "manga")
	}
	return m, nil
}

func (repository *PostgresRepository) CreateManga(context context.Context, m *Manga) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		RETURNING %s
	`,
		schema.Mangas.Table, schema.Mangas.NiceURL, schema.Mangas.Titre, schema.Mangas.TitreOrig,
		schema.Mangas.Annee, schema.Mangas.NbVolumes, schema.Mangas.Auteur, schema.Mangas.StatutPublication,
		schema.Mangas.Synopsis, schema.Mangas.Image, schema.Mangas.Statut,
		schema.Mangas.ID,
	)

	err := repository.db.QueryRow(context, query,
		m.NiceURL, m.Titre, m.TitreOrig, m.Annee, m.NbVolumes, m.Auteur, m.StatutPublication, m.Synopsis, m.Image,
	).Scan(&m.ID)
	if err != nil {
		return dberr.Wrap(err, "manga")
	}

	m.Statut = 1
	return nil
}

func (repository *PostgresRepository) UpdateManga(context context.Context, m *Manga) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1 AND %s = 1
		RETURNING %s
	`,
		schema.Mangas.Table,
		schema.Mangas.NiceURL, schema.Mangas.Titre, schema.Mangas.TitreOrig, schema.Mangas.Annee,
		schema.Mangas.NbVolumes, schema.Mangas.Auteur, schema.Mangas.StatutPublication, schema.Mangas.Synopsis,
		schema.Mangas.ID, schema.Mangas.Statut,
		schema.Mangas.ID,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.NiceURL, m.Titre, m.TitreOrig, m.Annee, m.NbVolumes, m.Auteur, m.StatutPublication, m.Synopsis,
	).Scan(&m.ID)
	return dberr.Wrap(err, "manga")
}

// DeleteManga flips statut to 0, keeping the row and its critiques.
func (repository *PostgresRepository) DeleteManga(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = 0 WHERE %s = $1 AND %s = 1`,
		schema.Mangas.Table, schema.Mangas.Statut, schema.Mangas.ID, schema.Mangas.Statut,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "manga")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "manga")
	}
	return nil
}

func (repository *PostgresRepository) SetImage(context context.Context, id int64, filename string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 AND %s = 1 RETURNING %s`,
		schema.Mangas.Table, schema.Mangas.Image, schema.Mangas.ID, schema.Mangas.Statut, schema.Mangas.ID,
	)

	var returned int64
	err := repository.db.QueryRow(context, query, id, filename).Scan(&returned)
	return dberr.Wrap(err, "manga")
}
