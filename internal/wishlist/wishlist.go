package wishlist

import (
	"context"
	"encoding/json"
	"errors"

	"luxe_back_end/internal/storage"
)

// Set gère la wishlist d'un utilisateur : une liste d'identifiants produit sans
// doublon sous la clé wishlist:<userID>, ordre d'insertion préservé pour l'affichage.
type Set struct {
	store storage.Store
}

func NewSet(store storage.Store) *Set {
	return &Set{store: store}
}

func wishlistKey(userID string) string {
	return "wishlist:" + userID
}

// List renvoie les identifiants dans l'ordre d'ajout.
func (s *Set) List(ctx context.Context, userID string) ([]string, error) {
	data, err := s.store.Get(ctx, wishlistKey(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Toggle bascule l'appartenance du produit et indique la transition effectuée
// (true = ajouté, false = retiré). Deux appels successifs reviennent à l'état initial.
func (s *Set) Toggle(ctx context.Context, userID, productID string) (added bool, err error) {
	ids, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}

	next := []string{}
	removed := false
	for _, id := range ids {
		if id == productID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, productID)
	}

	data, err := json.Marshal(next)
	if err != nil {
		return false, err
	}
	if err := s.store.Set(ctx, wishlistKey(userID), string(data)); err != nil {
		return false, err
	}
	return !removed, nil
}

func (s *Set) Contains(ctx context.Context, userID, productID string) (bool, error) {
	ids, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}
