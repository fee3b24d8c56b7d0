package schema

// CritiquesTable represents the 'critiques' table
type CritiquesTable struct {
	Table        string
	ID           string
	IDUser       string
	IDAnime      string
	IDManga      string
	Note         string
	Titre        string
	Contenu      string
	DateCreation string
	Statut       string
}

// Critiques is the schema definition for critiques
var Critiques = CritiquesTable{
	Table:        "critiques",
	ID:           "id",
	IDUser:       "id_user",
	IDAnime:      "id_anime",
	IDManga:      "id_manga",
	Note:         "note",
	Titre:        "titre",
	Contenu:      "contenu",
	DateCreation: "date_creation",
	Statut:       "statut",
}
