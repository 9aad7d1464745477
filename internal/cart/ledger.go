package cart

import (
	"context"
	"encoding/json"
	"errors"

	"luxe_back_end/internal/models"
	"luxe_back_end/internal/storage"
)

// ErrInvalidQuantity : quantité non positive refusée, aucune mutation effectuée.
var ErrInvalidQuantity = errors.New("quantité invalide")

// ErrLineNotFound : SetQuantity réécrit une ligne existante, il ne crée pas
// de ligne — produit absent du panier, aucune mutation effectuée.
var ErrLineNotFound = errors.New("ligne absente du panier")

// Ledger gère le panier d'un utilisateur : un blob JSON par utilisateur sous la
// clé cart:<userID>, relu et réécrit en entier à chaque opération. Le ledger ne
// connaît pas le stock : le plafond est fourni par l'appelant.
type Ledger struct {
	store storage.Store
}

func NewLedger(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Items renvoie les lignes du panier dans leur ordre d'insertion.
// Un blob absent ou corrompu vaut panier vide.
func (l *Ledger) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := l.store.Get(ctx, cartKey(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.CartItem{}, nil
		}
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return []models.CartItem{}, nil
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

func (l *Ledger) save(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, cartKey(userID), string(data))
}

// AddOrIncrement ajoute quantity à la ligne du produit, plafonné à maxAllowed
// (typiquement le stock courant). Crée la ligne si elle n'existe pas.
func (l *Ledger) AddOrIncrement(ctx context.Context, userID, productID string, quantity, maxAllowed int) ([]models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	items, err := l.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = clamp(items[i].Quantity+quantity, maxAllowed)
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ProductID: productID,
			Quantity:  clamp(quantity, maxAllowed),
		})
	}

	if err := l.save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetQuantity remplace la quantité d'une ligne, plafonnée à maxAllowed.
// Même règle de plafonnement que AddOrIncrement : une seule politique partout.
func (l *Ledger) SetQuantity(ctx context.Context, userID, productID string, quantity, maxAllowed int) ([]models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	items, err := l.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = clamp(quantity, maxAllowed)
			found = true
			break
		}
	}
	if !found {
		return nil, ErrLineNotFound
	}

	if err := l.save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove supprime la ligne du produit ; sans effet si elle n'existe pas.
func (l *Ledger) Remove(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	items, err := l.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := []models.CartItem{}
	for _, item := range items {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}

	if err := l.save(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Total calcule Σ prix × quantité. Un produit sans prix (référence périmée vers
// un produit supprimé) contribue pour 0.
func (l *Ledger) Total(ctx context.Context, userID string, priceLookup func(productID string) (float64, bool)) (float64, error) {
	items, err := l.Items(ctx, userID)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, item := range items {
		if price, ok := priceLookup(item.ProductID); ok {
			total += price * float64(item.Quantity)
		}
	}
	return total, nil
}

// Clear vide le panier. Appelé uniquement à la finalisation d'une commande.
func (l *Ledger) Clear(ctx context.Context, userID string) error {
	return l.store.Delete(ctx, cartKey(userID))
}

func clamp(quantity, maxAllowed int) int {
	if maxAllowed < 0 {
		maxAllowed = 0
	}
	if quantity > maxAllowed {
		return maxAllowed
	}
	return quantity
}
