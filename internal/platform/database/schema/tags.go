package schema

// TagsTable represents the 'tags' table
type TagsTable struct {
	Table     string
	ID        string
	Nom       string
	Categorie string
	NiceURL   string
}

// Tags is the schema definition for tags
var Tags = TagsTable{
	Table:     "tags",
	ID:        "id",
	Nom:       "nom",
	Categorie: "categorie",
	NiceURL:   "nice_url",
}
