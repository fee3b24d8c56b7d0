// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

// Package article implements the webzine: editorial articles with a
// draft/published/archived lifecycle, front-page placement and click counts.
package article

// Article lifecycle states.
const (
	StatusArchived  = -1
	StatusDraft     = 0
	StatusPublished = 1
)

// Article is one webzine piece. NbCom counts approved comments only and is
// maintained by the comment service.
type Article struct {
	ID              int64   `json:"id"`
	Titre           string  `json:"titre"`
	NiceURL         string  `json:"nice_url"`
	Contenu         string  `json:"contenu"`
	Auteur          int64   `json:"auteur"`
	Statut          int     `json:"statut"`
	OnIndex         bool    `json:"onindex"`
	NbCom           int     `json:"nb_com"`
	NbClics         int     `json:"nb_clics"`
	DatePublication *int64  `json:"date_publication"`
	AuteurNom       *string `json:"auteur_nom,omitempty"`
}

// Filter holds the parameters for a paginated article listing.
type Filter struct {
	Search      string
	OnIndexOnly bool
}

// Global field names for validation
const (
	FieldTitre   = "titre"
	FieldContenu = "contenu"
	FieldStatut  = "statut"
)
