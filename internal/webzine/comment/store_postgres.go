// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package comment

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

func commentColumns() string {
	return strings.Join([]string{
		schema.WZComments.ID, schema.WZComments.IDArticle, schema.WZComments.IDUser,
		schema.WZComments.AuteurNom, schema.WZComments.Contenu,
		schema.WZComments.DateCreation, schema.WZComments.Moderation,
	}, ", ")
}

func scanComment(row interface{ Scan(...any) error }) (*Comment, error) {
	c := &Comment{}
	err := row.Scan(&c.ID, &c.IDArticle, &c.IDUser, &c.AuteurNom, &c.Contenu, &c.DateCreation, &c.Moderation)
	return c, err
}

func (repository *PostgresRepository) listComments(context context.Context, predicate string, predicateArgs []any, limit, offset int) ([]*Comment, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.WZComments.Table, predicate)

	var total int
	if err := repository.db.QueryRow(context, countQuery, predicateArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d
	`, commentColumns(), schema.WZComments.Table, predicate, schema.WZComments.DateCreation,
		len(predicateArgs)+1, len(predicateArgs)+2)
	args := append(predicateArgs, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) ListApprovedComments(context context.Context, articleID int64, limit, offset int) ([]*Comment, int, error) {
	predicate := fmt.Sprintf("%s = $1 AND %s = %d", schema.WZComments.IDArticle, schema.WZComments.Moderation, ModerationApproved)
	return repository.listComments(context, predicate, []any{articleID}, limit, offset)
}

// ListCommentsByModeration feeds the admin moderation queue.
func (repository *PostgresRepository) ListCommentsByModeration(context context.Context, moderation int, limit, offset int) ([]*Comment, int, error) {
	predicate := fmt.Sprintf("%s = $1", schema.WZComments.Moderation)
	return repository.listComments(context, predicate, []any{moderation}, limit, offset)
}

func (repository *PostgresRepository) GetComment(context context.Context, id int64) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, commentColumns(), schema.WZComments.Table, schema.WZComments.ID)

	c, err := scanComment(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "comment")
	}
	return c, nil
}

func (repository *PostgresRepository) CreateComment(context context.Context, c *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, EXTRACT(EPOCH FROM NOW())::bigint, $5)
		RETURNING %s, %s
	`,
		schema.WZComments.Table,
		schema.WZComments.IDArticle, schema.WZComments.IDUser, schema.WZComments.AuteurNom,
		schema.WZComments.Contenu, schema.WZComments.DateCreation, schema.WZComments.Moderation,
		schema.WZComments.ID, schema.WZComments.DateCreation,
	)

	err := repository.db.QueryRow(context, query,
		c.IDArticle, c.IDUser, c.AuteurNom, c.Contenu, c.Moderation,
	).Scan(&c.ID, &c.DateCreation)
	return dberr.Wrap(err, "comment")
}

func (repository *PostgresRepository) SetModeration(context context.Context, id int64, moderation int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.WZComments.Table, schema.WZComments.Moderation, schema.WZComments.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, moderation)
	if err != nil {
		return dberr.Wrap(err, "comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "comment")
	}
	return nil
}

func (repository *PostgresRepository) DeleteComment(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.WZComments.Table, schema.WZComments.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "comment")
	}
	return nil
}

// RecomputeCommentCount rebuilds nb_com as the count of approved comments.
// Idempotent by construction: the count is derived, never incremented.
func (repository *PostgresRepository) RecomputeCommentCount(context context.Context, articleID int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = (SELECT count(*) FROM %s WHERE %s = $1 AND %s = %d)
		WHERE %s = $1
	`,
		schema.WZArticles.Table, schema.WZArticles.NbCom,
		schema.WZComments.Table, schema.WZComments.IDArticle, schema.WZComments.Moderation, ModerationApproved,
		schema.WZArticles.ID,
	)

	_, err := repository.db.Exec(context, query, articleID)
	return dberr.Wrap(err, "article")
}

func (repository *PostgresRepository) ArticlePublished(context context.Context, articleID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = 1)`,
		schema.WZArticles.Table, schema.WZArticles.ID, schema.WZArticles.Statut,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, articleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "article")
	}
	return exists, nil
}
