// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

// Package manga implements the manga catalogue. It mirrors the anime surface
// with an author instead of a studio and a publication status lifecycle.
package manga

// Publication statuses carried over from the legacy database, French labels
// included. Values are stored verbatim.
const (
	PublicationOngoing   = "En cours"
	PublicationFinished  = "Terminé"
	PublicationSuspended = "Suspendu"
	PublicationAbandoned = "Abandonné"
)

// PublicationStatuses is the closed set accepted on create/update.
var PublicationStatuses = []string{
	PublicationOngoing, PublicationFinished, PublicationSuspended, PublicationAbandoned,
}

// Manga represents one fiche in the manga catalogue.
type Manga struct {
	ID                int64   `json:"id"`
	NiceURL           string  `json:"nice_url"`
	Titre             string  `json:"titre"`
	TitreOrig         *string `json:"titre_orig"`
	Annee             *int    `json:"annee"`
	NbVolumes         *int    `json:"nb_volumes"`
	Auteur            *string `json:"auteur"`
	StatutPublication string  `json:"statut_publication"`
	Synopsis          *string `json:"synopsis"`
	Image             *string `json:"image"`
	Statut            int     `json:"statut"`
	MoyenneNotes      float64 `json:"moyenne_notes"`
	NbReviews         int     `json:"nb_reviews"`
}

// Filter holds the parameters for a paginated manga search.
type Filter struct {
	Search    string // ILIKE against titre and titre_orig
	Year      int
	Auteur    string
	TagID     int64
	Sort      string
	Direction string
}

// Global field names for validation
const (
	FieldTitre             = "titre"
	FieldTitreOrig         = "titre_orig"
	FieldAnnee             = "annee"
	FieldNbVolumes         = "nb_volumes"
	FieldAuteur            = "auteur"
	FieldStatutPublication = "statut_publication"
)
