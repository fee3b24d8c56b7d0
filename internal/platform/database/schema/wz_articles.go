package schema

// WZArticlesTable represents the 'wz_articles' table
type WZArticlesTable struct {
	Table           string
	ID              string
	Titre           string
	NiceURL         string
	Contenu         string
	Auteur          string
	Statut          string
	OnIndex         string
	NbCom           string
	NbClics         string
	DatePublication string
}

// WZArticles is the schema definition for wz_articles
var WZArticles = WZArticlesTable{
	Table:           "wz_articles",
	ID:              "id",
	Titre:           "titre",
	NiceURL:         "nice_url",
	Contenu:         "contenu",
	Auteur:          "auteur",
	Statut:          "statut",
	OnIndex:         "onindex",
	NbCom:           "nb_com",
	NbClics:         "nb_clics",
	DatePublication: "date_publication",
}
