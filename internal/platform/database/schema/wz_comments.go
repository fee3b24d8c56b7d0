package schema

// WZCommentsTable represents the 'wz_comments' table
type WZCommentsTable struct {
	Table        string
	ID           string
	IDArticle    string
	IDUser       string
	AuteurNom    string
	Contenu      string
	DateCreation string
	Moderation   string
}

// WZComments is the schema definition for wz_comments
var WZComments = WZCommentsTable{
	Table:        "wz_comments",
	ID:           "id",
	IDArticle:    "id_article",
	IDUser:       "id_user",
	AuteurNom:    "auteur_nom",
	Contenu:      "contenu",
	DateCreation: "date_creation",
	Moderation:   "moderation",
}
