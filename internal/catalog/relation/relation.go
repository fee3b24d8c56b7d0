// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

/*
Package relation implements related-content links between fiches.

A link starts from a string key combining type and id ("anime123", "manga45")
and points at a target fiche. The legacy schema stored the origin as that
concatenated key; the format is kept for data compatibility.
*/
package relation

import (
	"fmt"
	"regexp"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
)

// Target fiche types.
const (
	TypeAnime = "anime"
	TypeManga = "manga"
)

// ficheKeyRegex matches the legacy origin key format.
var ficheKeyRegex = regexp.MustCompile(`^(anime|manga)([1-9][0-9]*)$`)

// Relation is one hydrated related-content entry.
type Relation struct {
	FicheOrigine string  `json:"fiche_origine"`
	IDFicheCible int64   `json:"id_fiche_cible"`
	TypeCible    string  `json:"type_cible"`
	Titre        string  `json:"titre"`
	NiceURL      string  `json:"nice_url"`
	Image        *string `json:"image"`
}

// FicheKey builds the origin key for a fiche.
func FicheKey(ficheType string, id int64) string {
	return fmt.Sprintf("%s%d", ficheType, id)
}

// ParseFicheKey validates a key like "anime123" and splits it into its parts.
func ParseFicheKey(key string) (string, error) {
	if !ficheKeyRegex.MatchString(key) {
		return "", apperr.ValidationError("Invalid fiche key: expected anime<id> or manga<id>")
	}
	return key, nil
}
