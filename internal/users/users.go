package users

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"luxe_back_end/internal/models"
	"luxe_back_end/internal/storage"
)

var (
	// ErrEmailTaken : un compte existe déjà pour cet email.
	ErrEmailTaken = errors.New("un compte avec cet email existe déjà")
	// ErrInvalidCredentials : email inconnu ou mot de passe incorrect.
	ErrInvalidCredentials = errors.New("identifiants invalides")
)

const usersKey = "users"

// Registry est l'annuaire local des utilisateurs : une liste JSON sous la clé
// "users". Aucune authentification externe, tout se joue contre cette liste.
type Registry struct {
	store storage.Store
}

func NewRegistry(store storage.Store) *Registry {
	return &Registry{store: store}
}

func (r *Registry) list(ctx context.Context) ([]models.User, error) {
	data, err := r.store.Get(ctx, usersKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.User{}, nil
		}
		return nil, err
	}

	var list []models.User
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return []models.User{}, nil
	}
	return list, nil
}

// Register crée un compte local. Le premier compte peut être promu admin par
// l'appelant via isAdmin (bootstrap du back-office).
func (r *Registry) Register(ctx context.Context, name, email, password string, isAdmin bool) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	list, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		IsAdmin:  isAdmin,
	}
	list = append(list, user)

	data, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, usersKey, string(data)); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate vérifie email + mot de passe contre la liste stockée.
func (r *Registry) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	list, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(list[i].Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return &list[i], nil
	}
	return nil, ErrInvalidCredentials
}

// Count renvoie le nombre de comptes (tableau de bord admin).
func (r *Registry) Count(ctx context.Context) (int, error) {
	list, err := r.list(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}
