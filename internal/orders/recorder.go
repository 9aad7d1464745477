package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"

	"luxe_back_end/internal/cart"
	"luxe_back_end/internal/models"
	"luxe_back_end/internal/storage"
)

// ErrUnresolvedProduct : une ligne du panier référence un produit absent du
// catalogue courant. Politique stricte : la commande entière est refusée,
// ni l'historique ni le panier ne sont touchés.
var ErrUnresolvedProduct = errors.New("produit introuvable dans le catalogue")

// ErrOrderNotFound : commande inconnue pour cet utilisateur.
var ErrOrderNotFound = errors.New("commande introuvable")

// ProductLookup résout nom et prix courants d'un produit du catalogue.
type ProductLookup func(productID string) (name string, price float64, ok bool)

// Recorder enregistre les commandes finalisées : un historique JSON par
// utilisateur sous orders:<userID>, la plus récente en tête.
type Recorder struct {
	store  storage.Store
	ledger *cart.Ledger
}

func NewRecorder(store storage.Store, ledger *cart.Ledger) *Recorder {
	return &Recorder{store: store, ledger: ledger}
}

func ordersKey(userID string) string {
	return "orders:" + userID
}

// PlaceOrder fige nom et prix de chaque ligne, calcule le total, ajoute la
// commande en tête de l'historique puis vide le panier. La résolution se fait
// entièrement avant toute écriture : en cas d'échec, rien n'est modifié.
func (r *Recorder) PlaceOrder(ctx context.Context, userID string, lines []models.CartItem, lookup ProductLookup, shipping models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		name, price, ok := lookup(line.ProductID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedProduct, line.ProductID)
		}
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			Price:       price,
		})
		total += price * float64(line.Quantity)
	}

	order := models.Order{
		ID:              uuid.NewString(),
		Items:           items,
		TotalAmount:     total,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shipping,
		TrackingStatus:  models.StatusOrderPlaced,
		CreatedAt:       time.Now().UTC(),
	}

	history, err := r.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	history = append([]models.Order{order}, history...)

	data, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, ordersKey(userID), string(data)); err != nil {
		return nil, err
	}

	// La commande est enregistrée ; un échec du vidage du panier est toléré.
	if err := r.ledger.Clear(ctx, userID); err != nil {
		log.Printf("⚠️ Échec vidage panier après commande %s: %v", order.ID, err)
	}

	return &order, nil
}

// History renvoie les commandes de l'utilisateur, la plus récente en premier.
// Historique absent ou corrompu vaut historique vide.
func (r *Recorder) History(ctx context.Context, userID string) ([]models.Order, error) {
	data, err := r.store.Get(ctx, ordersKey(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.Order{}, nil
		}
		return nil, err
	}

	var history []models.Order
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return []models.Order{}, nil
	}
	if history == nil {
		history = []models.Order{}
	}
	return history, nil
}

func (r *Recorder) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {
	history, err := r.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range history {
		if history[i].ID == orderID {
			return &history[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// UpdateTrackingStatus fait évoluer le statut de suivi d'une commande. Seul le
// statut bouge, le reste de la commande est immuable.
func (r *Recorder) UpdateTrackingStatus(ctx context.Context, userID, orderID, status string) (*models.Order, error) {
	if !models.ValidTrackingStatus(status) {
		return nil, fmt.Errorf("statut de suivi invalide: %q", status)
	}

	history, err := r.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range history {
		if history[i].ID != orderID {
			continue
		}
		history[i].TrackingStatus = status

		data, err := json.Marshal(history)
		if err != nil {
			return nil, err
		}
		if err := r.store.Set(ctx, ordersKey(userID), string(data)); err != nil {
			return nil, err
		}
		return &history[i], nil
	}
	return nil, ErrOrderNotFound
}

// All agrège les historiques de tous les utilisateurs (tableau de bord admin).
func (r *Recorder) All(ctx context.Context) ([]models.Order, error) {
	keys, err := r.store.Keys(ctx, "orders:")
	if err != nil {
		return nil, err
	}

	var all []models.Order
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			continue
		}
		var history []models.Order
		if err := json.Unmarshal([]byte(data), &history); err != nil {
			continue
		}
		all = append(all, history...)
	}
	return all, nil
}

// UPIPayload construit l'URI de paiement UPI d'une commande, encodée ensuite
// en QR code par le handler.
func UPIPayload(order *models.Order, vpa, payeeName string) string {
	params := url.Values{}
	params.Set("pa", vpa)
	params.Set("pn", payeeName)
	params.Set("am", fmt.Sprintf("%.2f", order.TotalAmount))
	params.Set("cu", "INR")
	params.Set("tn", "Commande "+order.ID)
	return "upi://pay?" + params.Encode()
}
