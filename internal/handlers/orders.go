package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"luxe_back_end/internal/models"
	"luxe_back_end/internal/orders"
	"luxe_back_end/internal/utils"
)

// 🟢 POST /api/checkout — finalise la commande à partir du panier courant
func (h *Handler) Checkout(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		PaymentMethod   string                 `json:"payment_method" binding:"required"`
		ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.PaymentMethod != models.PaymentCardGateway && input.PaymentMethod != models.PaymentUPI {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Moyen de paiement non supporté"})
		return
	}

	lines, err := h.Carts.Items(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	order, err := h.Orders.PlaceOrder(c.Request.Context(), userID, lines,
		func(productID string) (string, float64, bool) {
			p, ok := h.Catalog.FindByID(productID)
			if !ok {
				return "", 0, false
			}
			return p.Name, p.Price, true
		},
		input.ShippingAddress, input.PaymentMethod)
	if err != nil {
		if errors.Is(err, orders.ErrUnresolvedProduct) {
			// Panier périmé : un produit a disparu du catalogue, rien n'est écrit.
			c.JSON(http.StatusConflict, gin.H{"error": "Un produit du panier n'existe plus dans le catalogue"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande"})
		return
	}

	if email := c.GetString("email"); email != "" {
		if err := utils.SendOrderConfirmation(email, *order); err != nil {
			log.Printf("⚠️ Échec envoi email confirmation commande %s: %v", order.ID, err)
		}
	}

	log.Printf("✅ Commande %s enregistrée pour user %s (total: %.2f)", order.ID, userID, order.TotalAmount)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande enregistrée avec succès",
		"order":   order,
	})
}

// 🔵 GET /api/orders — historique de l'utilisateur, la plus récente en premier
func (h *Handler) GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	history, err := h.Orders.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": history})
}

// 🔵 GET /api/orders/:id
func (h *Handler) GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := h.Orders.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// 🔵 GET /api/orders/:id/upi-qr — QR code de paiement UPI de la commande
func (h *Handler) GetOrderUPIQR(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := h.Orders.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if order.PaymentMethod != models.PaymentUPI {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette commande n'est pas payée par UPI"})
		return
	}

	vpa := os.Getenv("UPI_VPA")
	if vpa == "" {
		vpa = "store@upi"
	}
	payload := orders.UPIPayload(order, vpa, "Luxe Store")

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
