// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

/*
Package comment implements reader comments under webzine articles.

Anyone may comment, including anonymous visitors. Submissions pass a fixed
spam heuristic first; surviving comments enter moderation: anonymous ones
wait for approval (0), authenticated ones are approved immediately (1).
Every moderation transition recomputes the parent article's nb_com as the
count of approved comments, which makes the counter immune to replayed or
out-of-order transitions.
*/
package comment

// Moderation states.
const (
	ModerationRejected = -1
	ModerationPending  = 0
	ModerationApproved = 1
)

// Comment is one reader reaction under an article.
type Comment struct {
	ID           int64  `json:"id"`
	IDArticle    int64  `json:"id_article"`
	IDUser       *int64 `json:"id_user,omitempty"`
	AuteurNom    string `json:"auteur_nom"`
	Contenu      string `json:"contenu"`
	DateCreation int64  `json:"date_creation"`
	Moderation   int    `json:"moderation"`
}

// CreateInput is the public payload for posting a comment.
type CreateInput struct {
	AuteurNom string `json:"auteur_nom"`
	Contenu   string `json:"contenu"`
}

// Global field names for validation
const (
	FieldAuteurNom  = "auteur_nom"
	FieldContenu    = "contenu"
	FieldModeration = "moderation"
)
