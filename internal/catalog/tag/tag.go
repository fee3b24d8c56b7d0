// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

// Package tag implements thematic tags and their typed links to fiches.
package tag

// Fiche types accepted by the tag link table.
const (
	FicheTypeAnime = "anime"
	FicheTypeManga = "manga"
)

// Tag represents one thematic label (genre, theme, public...).
type Tag struct {
	ID        int64   `json:"id"`
	Nom       string  `json:"nom"`
	Categorie *string `json:"categorie"`
	NiceURL   string  `json:"nice_url"`
}

// Link attaches a tag to a fiche. Type discriminates the target table.
type Link struct {
	TagID   int64  `json:"tag_id"`
	FicheID int64  `json:"fiche_id"`
	Type    string `json:"type"`
}

// Filter holds the parameters for a tag listing. Categories accepts several
// values at once (`?categorie=genre,theme`).
type Filter struct {
	Search     string
	Categories []string
}

// Global field names for validation
const (
	FieldNom       = "nom"
	FieldCategorie = "categorie"
	FieldFicheID   = "fiche_id"
	FieldType      = "type"
)
