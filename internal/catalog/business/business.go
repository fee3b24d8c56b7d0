// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

// Package business implements the directory of studios, publishers and other
// industry entities. Unlike fiches, business rows are hard-deleted: they carry
// no review history worth preserving.
package business

// Business represents one industry entity (studio, éditeur, distributeur...).
type Business struct {
	ID           int64   `json:"id"`
	Denomination string  `json:"denomination"`
	Type         *string `json:"type"`
	Origine      *string `json:"origine"`
	SiteOfficiel *string `json:"site_officiel"`
	Image        *string `json:"image"`
	Statut       int     `json:"statut"`
}

// Filter holds the parameters for a paginated business search.
type Filter struct {
	Search    string // ILIKE against denomination
	Type      string
	Origine   string
	Sort      string
	Direction string
}

// Global field names for validation
const (
	FieldDenomination = "denomination"
	FieldType         = "type"
	FieldOrigine      = "origine"
	FieldSiteOfficiel = "site_officiel"
)
