package schema

// BusinessTable represents the 'business' table
type BusinessTable struct {
	Table        string
	ID           string
	Denomination string
	Type         string
	Origine      string
	SiteOfficiel string
	Image        string
	Statut       string
}

// Business is the schema definition for business
var Business = BusinessTable{
	Table:        "business",
	ID:           "id",
	Denomination: "denomination",
	Type:         "type",
	Origine:      "origine",
	SiteOfficiel: "site_officiel",
	Image:        "image",
	Statut:       "statut",
}
