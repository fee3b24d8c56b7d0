// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package article

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

// buildPredicate converts a Filter into one WHERE fragment plus its arguments,
// shared between the data query and the COUNT query. Listings only ever show
// published articles; drafts and archives are reached by id through the admin
// surface.
func buildPredicate(f Filter) (string, []any) {
	clauses := []string{fmt.Sprintf("a.%s = %d", schema.WZArticles.Statut, StatusPublished)}
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		clauses = append(clauses, fmt.Sprintf("a.%s ILIKE $%d", schema.WZArticles.Titre, len(args)))
	}

	if f.OnIndexOnly {
		clauses = append(clauses, fmt.Sprintf("a.%s = TRUE", schema.WZArticles.OnIndex))
	}

	return strings.Join(clauses, " AND "), args
}

func articleColumns() string {
	columns := []string{
		schema.WZArticles.ID, schema.WZArticles.Titre, schema.WZArticles.NiceURL, schema.WZArticles.Contenu,
		schema.WZArticles.Auteur, schema.WZArticles.Statut, schema.WZArticles.OnIndex,
		schema.WZArticles.NbCom, schema.WZArticles.NbClics, schema.WZArticles.DatePublication,
	}
	for i, c := range columns {
		columns[i] = "a." + c
	}
	return strings.Join(columns, ", ") + ", m." + schema.SMFMembers.MemberName
}

func articleJoin() string {
	return fmt.Sprintf("%s a LEFT JOIN %s m ON m.%s = a.%s",
		schema.WZArticles.Table, schema.SMFMembers.Table, schema.SMFMembers.IDMember, schema.WZArticles.Auteur,
	)
}

func scanArticle(row interface{ Scan(...any) error }) (*Article, error) {
	a := &Article{}
	err := row.Scan(
		&a.ID, &a.Titre, &a.NiceURL, &a.Contenu, &a.Auteur, &a.Statut, &a.OnIndex,
		&a.NbCom, &a.NbClics, &a.DatePublication, &a.AuteurNom,
	)
	return a, err
}

func (repository *PostgresRepository) ListArticles(context context.Context, f Filter, limit, offset int) ([]*Article, int, error) {
	predicate, args := buildPredicate(f)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, articleJoin(), predicate)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_articles")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY a.%s DESC NULLS LAST
		LIMIT $%d OFFSET $%d
	`, articleColumns(), articleJoin(), predicate, schema.WZArticles.DatePublication, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles")
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_article")
		}
		articles = append(articles, a)
	}

	return articles, total, nil
}

// GetArticle returns the row regardless of statut; publication visibility is a
// service concern because admins read drafts through the same path.
func (repository *PostgresRepository) GetArticle(context context.Context, id int64) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE a.%s = $1`, articleColumns(), articleJoin(), schema.WZArticles.ID)

	a, err := scanArticle(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "article")
	}
	return a, nil
}

func (repository *PostgresRepository) GetArticleByNiceURL(context context.Context, niceURL string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE a.%s = $1`, articleColumns(), articleJoin(), schema.WZArticles.NiceURL)

	a, err := scanArticle(repository.db.QueryRow(context, query, niceURL))
	if err != nil {
		return nil, dberr.Wrap(err, "article")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateArticle(context context.Context, a *Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`,
		schema.WZArticles.Table,
		schema.WZArticles.Titre, schema.WZArticles.NiceURL, schema.WZArticles.Contenu,
		schema.WZArticles.Auteur, schema.WZArticles.Statut, schema.WZArticles.OnIndex,
		schema.WZArticles.DatePublication,
		schema.WZArticles.ID,
	)

	err := repository.db.QueryRow(context, query,
		a.Titre, a.NiceURL, a.Contenu, a.Auteur, a.Statut, a.OnIndex, a.DatePublication,
	).Scan(&a.ID)
	return dberr.Wrap(err, "article")
}

func (repository *PostgresRepository) UpdateArticle(context context.Context, a *Article) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1
		RETURNING %s
	`,
		schema.WZArticles.Table,
		schema.WZArticles.Titre, schema.WZArticles.NiceURL, schema.WZArticles.Contenu,
		schema.WZArticles.Statut, schema.WZArticles.OnIndex, schema.WZArticles.DatePublication,
		schema.WZArticles.ID,
		schema.WZArticles.ID,
	)

	err := repository.db.QueryRow(context, query,
		a.ID, a.Titre, a.NiceURL, a.Contenu, a.Statut, a.OnIndex, a.DatePublication,
	).Scan(&a.ID)
	return dberr.Wrap(err, "article")
}

func (repository *PostgresRepository) DeleteArticle(context context.Context, id int64) error {
	// Comments go with their article.
	commentQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.WZComments.Table, schema.WZComments.IDArticle)
	if _, err := repository.db.Exec(context, commentQuery, id); err != nil {
		return dberr.Wrap(err, "article")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.WZArticles.Table, schema.WZArticles.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "article")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "article")
	}
	return nil
}

func (repository *PostgresRepository) IncrementClicks(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.WZArticles.Table, schema.WZArticles.NbClics, schema.WZArticles.NbClics, schema.WZArticles.ID,
	)

	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "article")
}
