package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"luxe_back_end/internal/models"
	"luxe_back_end/internal/storage"
)

// ErrInvalidRating : la note doit être un entier entre 1 et 5.
var ErrInvalidRating = errors.New("note invalide (attendu 1 à 5)")

// Book stocke les avis par produit : un tableau JSON sous reviews:<productID>,
// le plus récent en tête.
type Book struct {
	store storage.Store
}

func NewBook(store storage.Store) *Book {
	return &Book{store: store}
}

func reviewsKey(productID string) string {
	return "reviews:" + productID
}

func (b *Book) List(ctx context.Context, productID string) ([]models.Review, error) {
	data, err := b.store.Get(ctx, reviewsKey(productID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.Review{}, nil
		}
		return nil, err
	}

	var list []models.Review
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return []models.Review{}, nil
	}
	if list == nil {
		list = []models.Review{}
	}
	return list, nil
}

// Add crée un avis et l'insère en tête de la liste du produit.
func (b *Book) Add(ctx context.Context, productID, userName string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if userName == "" {
		userName = "Invité"
	}

	review := models.Review{
		ID:        uuid.NewString(),
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}

	list, err := b.List(ctx, productID)
	if err != nil {
		return nil, err
	}
	list = append([]models.Review{review}, list...)

	data, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	if err := b.store.Set(ctx, reviewsKey(productID), string(data)); err != nil {
		return nil, err
	}
	return &review, nil
}
