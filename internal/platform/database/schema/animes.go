package schema

// AnimesTable represents the 'animes' table
type AnimesTable struct {
	Table        string
	ID           string
	NiceURL      string
	Titre        string
	TitreOrig    string
	Annee        string
	NbEp         string
	Studio       string
	Synopsis     string
	Image        string
	Statut       string
	MoyenneNotes string
	NbReviews    string
}

// Animes is the schema definition for animes
var Animes = AnimesTable{
	Table:        "animes",
	ID:           "id",
	NiceURL:      "nice_url",
	Titre:        "titre",
	TitreOrig:    "titre_orig",
	Annee:        "annee",
	NbEp:         "nb_ep",
	Studio:       "studio",
	Synopsis:     "synopsis",
	Image:        "image",
	Statut:       "statut",
	MoyenneNotes: "moyenne_notes",
	NbReviews:    "nb_reviews",
}
