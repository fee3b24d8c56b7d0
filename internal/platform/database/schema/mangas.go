package schema

// MangasTable represents the 'mangas' table
type MangasTable struct {
	Table             string
	ID                string
	NiceURL           string
	Titre             string
	TitreOrig         string
	Annee             string
	NbVolumes         string
	Auteur            string
	StatutPublication string
	Synopsis          string
	Image             string
	Statut            string
	MoyenneNotes      string
	NbReviews         string
}

// Mangas is the schema definition for mangas
var Mangas = MangasTable{
	Table:             "mangas",
	ID:                "id",
	NiceURL:           "nice_url",
	Titre:             "titre",
	TitreOrig:         "titre_orig",
	Annee:             "annee",
	NbVolumes:         "nb_volumes",
	Auteur:            "auteur",
	StatutPublication: "statut_publication",
	Synopsis:          "synopsis",
	Image:             "image",
	Statut:            "statut",
	MoyenneNotes:      "moyenne_notes",
	NbReviews:         "nb_reviews",
}
