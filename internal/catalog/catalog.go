package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"luxe_back_end/internal/models"
)

// ErrCatalogUnavailable signale un catalogue illisible : fichier absent, JSON
// invalide ou enregistrement incohérent. Pas de retry, l'appelant remonte l'erreur.
var ErrCatalogUnavailable = errors.New("catalogue indisponible")

// Store charge le catalogue produits depuis un fichier JSON statique.
// Lecture seule : le premier chargement réussi est conservé en mémoire.
type Store struct {
	path     string
	products []models.Product
	byID     map[string]models.Product
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load lit et valide le catalogue. Idempotent : les appels suivants renvoient
// la liste déjà chargée.
func (s *Store) Load() ([]models.Product, error) {
	if s.products != nil {
		return s.products, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: JSON invalide: %v", ErrCatalogUnavailable, err)
	}

	for i := range products {
		if err := validate(&products[i]); err != nil {
			return nil, fmt.Errorf("%w: produit %q: %v", ErrCatalogUnavailable, products[i].ID, err)
		}
		normalizeImages(&products[i])
	}

	s.products = products
	s.byID = make(map[string]models.Product, len(products))
	for _, p := range products {
		s.byID[p.ID] = p
	}
	return s.products, nil
}

// validate rejette les enregistrements incohérents dès le chargement plutôt que
// de faire confiance à la forme du JSON à chaque point d'appel.
func validate(p *models.Product) error {
	if p.ID == "" {
		return errors.New("id manquant")
	}
	if p.Price < 0 {
		return fmt.Errorf("prix négatif (%v)", p.Price)
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock négatif (%d)", p.Stock)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("note hors bornes (%v)", p.Rating)
	}
	if p.ReviewCount < 0 {
		return fmt.Errorf("nombre d'avis négatif (%d)", p.ReviewCount)
	}
	return nil
}

// normalizeImages ne garde la première image que si elle est locale ou inline,
// sinon on retombe sur le visuel de la catégorie.
func normalizeImages(p *models.Product) {
	if len(p.Images) > 0 {
		first := strings.TrimSpace(p.Images[0])
		if strings.HasPrefix(first, "/images/") || strings.HasPrefix(first, "data:image/") {
			p.Images = []string{first}
			return
		}
	}
	p.Images = []string{categoryImage(p.Category)}
}

func categoryImage(category string) string {
	key := strings.TrimSpace(strings.ToLower(category))
	if key == "" {
		key = "product"
	}
	key = strings.Join(strings.Fields(key), "_")
	return "/images/" + key + "_0.svg"
}

// FindByID renvoie le produit demandé, ou false s'il n'existe pas (jamais d'erreur).
func (s *Store) FindByID(id string) (*models.Product, bool) {
	if _, err := s.Load(); err != nil {
		return nil, false
	}
	p, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

// ListCategories projette les libellés de catégorie distincts et non vides,
// triés pour un résultat déterministe.
func (s *Store) ListCategories() ([]string, error) {
	products, err := s.Load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// Search filtre le catalogue en mémoire : catégorie exacte, recherche
// insensible à la casse sur nom et description, bornes de prix inclusives.
func (s *Store) Search(category, query string, minPrice, maxPrice float64) ([]models.Product, error) {
	products, err := s.Load()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	results := []models.Product{}
	for _, p := range products {
		if category != "" && category != "All" && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if p.Price < minPrice {
			continue
		}
		if maxPrice > 0 && p.Price > maxPrice {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}
