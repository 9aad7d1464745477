package storage

import (
	"context"
	"errors"
)

// ErrNotFound est renvoyé par Get quand la clé n'existe pas.
var ErrNotFound = errors.New("clé introuvable")

// Store est le port de persistance clé/valeur : les collections (panier, wishlist,
// commandes, avis, utilisateurs) sont des blobs JSON lus et réécrits en entier.
// Injecté partout pour rester testable sans Redis.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
