package schema

// TagLinksTable represents the 'tag_links' table
type TagLinksTable struct {
	Table   string
	TagID   string
	FicheID string
	Type    string
}

// TagLinks is the schema definition for tag_links
var TagLinks = TagLinksTable{
	Table:   "tag_links",
	TagID:   "tag_id",
	FicheID: "fiche_id",
	Type:    "type",
}
