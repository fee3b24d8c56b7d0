// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

/*
Package review implements member critiques of animes and mangas.

Two rules shape everything here:

  - One active critique per (member, fiche). A service pre-check returns the
    friendly 409; a partial unique index in the database closes the race the
    pre-check cannot.
  - The fiche's moyenne_notes / nb_reviews aggregates are recomputed from
    scratch after every mutation. The recompute is a single UPDATE driven by
    AVG/COUNT subqueries, so replaying it never drifts the aggregates.
*/
package review

// Media types a critique can target.
const (
	MediaTypeAnime = "anime"
	MediaTypeManga = "manga"
)

// Review is one member critique of a fiche. Exactly one of IDAnime/IDManga is
// set, matching the legacy two-column layout.
type Review struct {
	ID           int64  `json:"id"`
	IDUser       int64  `json:"id_user"`
	IDAnime      *int64 `json:"id_anime,omitempty"`
	IDManga      *int64 `json:"id_manga,omitempty"`
	Note         int    `json:"note"`
	Titre        string `json:"titre"`
	Contenu      string `json:"contenu"`
	DateCreation int64  `json:"date_creation"`
	Statut       int    `json:"statut"`
}

// MediaType derives the target type from whichever foreign key is set.
func (r *Review) MediaType() string {
	if r.IDAnime != nil {
		return MediaTypeAnime
	}
	return MediaTypeManga
}

// MediaID returns the target fiche id.
func (r *Review) MediaID() int64 {
	if r.IDAnime != nil {
		return *r.IDAnime
	}
	if r.IDManga != nil {
		return *r.IDManga
	}
	return 0
}

// Actor identifies the requesting member for ownership checks.
type Actor struct {
	ID      int64
	IsAdmin bool
}

// canModify implements the owner-or-admin rule.
func (a Actor) canModify(ownerID int64) bool {
	return a.IsAdmin || a.ID == ownerID
}

// CreateInput is the public payload for posting a critique.
type CreateInput struct {
	MediaID   int64  `json:"media_id"`
	MediaType string `json:"media_type"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// UpdateInput is the payload for editing an existing critique. The target
// fiche can never change.
type UpdateInput struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Filter holds the parameters for a paginated critique listing.
type Filter struct {
	UserID    int64
	MediaType string
	MediaID   int64
}

// Global field names for validation
const (
	FieldMediaID   = "media_id"
	FieldMediaType = "media_type"
	FieldRating    = "rating"
	FieldTitle     = "title"
	FieldContent   = "content"
)
