// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

// Package anime implements the anime catalogue: paginated public browsing,
// admin CRUD with soft deletion, and screenshot uploads.
package anime

// Anime represents one fiche in the anime catalogue.
//
// MoyenneNotes and NbReviews are denormalized aggregates maintained by the
// review service; they are never written directly through this package.
type Anime struct {
	ID           int64   `json:"id"`
	NiceURL      string  `json:"nice_url"`
	Titre        string  `json:"titre"`
	TitreOrig    *string `json:"titre_orig"`
	Annee        *int    `json:"annee"`
	NbEp         *int    `json:"nb_ep"`
	Studio       *string `json:"studio"`
	Synopsis     *string `json:"synopsis"`
	Image        *string `json:"image"`
	Statut       int     `json:"statut"`
	MoyenneNotes float64 `json:"moyenne_notes"`
	NbReviews    int     `json:"nb_reviews"`
}

// Filter holds the parameters for a paginated anime search.
type Filter struct {
	Search    string // ILIKE against titre and titre_orig
	Year      int
	Studio    string
	TagID     int64
	Sort      string
	Direction string
}

// Global field names for validation
const (
	FieldTitre     = "titre"
	FieldTitreOrig = "titre_orig"
	FieldAnnee     = "annee"
	FieldNbEp      = "nb_ep"
	FieldStudio    = "studio"
	FieldSynopsis  = "synopsis"
)
