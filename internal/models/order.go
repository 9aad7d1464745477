package models

import "time"

// Statuts de suivi possibles d'une commande.
const (
	StatusOrderPlaced = "Order Placed"
	StatusShipped     = "Shipped"
	StatusDelivered   = "Delivered"
)

// Moyens de paiement acceptés.
const (
	PaymentCardGateway = "card-gateway"
	PaymentUPI         = "upi"
)

type Order struct {
	ID              string          `json:"id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"total_amount"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	TrackingStatus  string          `json:"tracking_status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem fige le nom et le prix du produit au moment de la commande :
// l'historique ne doit pas bouger si le catalogue change ensuite.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type ShippingAddress struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Phone    string `json:"phone"`
}

// ValidTrackingStatus vérifie qu'un statut appartient à l'énumération.
func ValidTrackingStatus(s string) bool {
	switch s {
	case StatusOrderPlaced, StatusShipped, StatusDelivered:
		return true
	}
	return false
}
