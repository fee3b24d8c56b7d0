// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package relation

import (
	"context"
	"fmt"

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

// ListRelations hydrates each link with the target fiche's title, nice URL and
// image. Links pointing at archived or missing targets are dropped.
func (repository *PostgresRepository) ListRelations(context context.Context, ficheOrigine string) ([]*Relation, error) {
	query := fmt.Sprintf(`
		SELECT f.%s, f.%s, f.%s,
		       COALESCE(a.%s, m.%s) AS titre,
		       COALESCE(a.%s, m.%s) AS nice_url,
		       COALESCE(a.%s, m.%s) AS image
		FROM %s f
		LEFT JOIN %s a ON f.%s = 'anime' AND a.%s = f.%s AND a.%s = 1
		LEFT JOIN %s m ON f.%s = 'manga' AND m.%s = f.%s AND m.%s = 1
		WHERE f.%s = $1 AND COALESCE(a.%s, m.%s) IS NOT NULL
		ORDER BY titre ASC
	`,
		schema.FicheToFiche.FicheOrigine, schema.FicheToFiche.IDFicheCible, schema.FicheToFiche.TypeCible,
		schema.Animes.Titre, schema.Mangas.Titre,
		schema.Animes.NiceURL, schema.Mangas.NiceURL,
		schema.Animes.Image, schema.Mangas.Image,
		schema.FicheToFiche.Table,
		schema.Animes.Table, schema.FicheToFiche.TypeCible, schema.Animes.ID, schema.FicheToFiche.IDFicheCible, schema.Animes.Statut,
		schema.Mangas.Table, schema.FicheToFiche.TypeCible, schema.Mangas.ID, schema.FicheToFiche.IDFicheCible, schema.Mangas.Statut,
		schema.FicheToFiche.FicheOrigine, schema.Animes.ID, schema.Mangas.ID,
	)

	rows, err := repository.db.Query(context, query, ficheOrigine)
	if err != nil {
		return nil, dberr.Wrap(err, "relations")
	}
	defer rows.Close()

	var relations []*Relation
	for rows.Next() {
		r := &Relation{}
		if err := rows.Scan(&r.FicheOrigine, &r.IDFicheCible, &r.TypeCible, &r.Titre, &r.NiceURL, &r.Image); err != nil {
			return nil, dberr.Wrap(err, "scan_relation")
		}
		relations = append(relations, r)
	}

	return relations, nil
}

func (repository *PostgresRepository) CreateRelation(context context.Context, ficheOrigine string, idFicheCible int64, typeCible string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, schema.FicheToFiche.Table, schema.FicheToFiche.FicheOrigine, schema.FicheToFiche.IDFicheCible, schema.FicheToFiche.TypeCible)

	_, err := repository.db.Exec(context, query, ficheOrigine, idFicheCible, typeCible)
	return dberr.Wrap(err, "relation")
}

func (repository *PostgresRepository) DeleteRelation(context context.Context, ficheOrigine string, idFicheCible int64, typeCible string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		schema.FicheToFiche.Table, schema.FicheToFiche.FicheOrigine, schema.FicheToFiche.IDFicheCible, schema.FicheToFiche.TypeCible,
	)

	cmd, err := repository.db.Exec(context, query, ficheOrigine, idFicheCible, typeCible)
	if err != nil {
		return dberr.Wrap(err, "relation")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "relation")
	}
	return nil
}
