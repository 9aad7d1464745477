package models

// Product est un enregistrement du catalogue statique, immuable après chargement.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Images      []string `json:"images"`
}
