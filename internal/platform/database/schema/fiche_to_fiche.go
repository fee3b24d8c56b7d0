package schema

// FicheToFicheTable represents the 'fiche_to_fiche' table
type FicheToFicheTable struct {
	Table        string
	FicheOrigine string
	IDFicheCible string
	TypeCible    string
}

// FicheToFiche is the schema definition for fiche_to_fiche
var FicheToFiche = FicheToFicheTable{
	Table:        "fiche_to_fiche",
	FicheOrigine: "fiche_origine",
	IDFicheCible: "id_fiche_cible",
	TypeCible:    "type_cible",
}
