package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"luxe_back_end/internal/cart"
)

// 🔵 GET /api/cart — lignes du panier + total courant
func (h *Handler) GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := h.Carts.Items(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	total, err := h.Carts.Total(c.Request.Context(), userID, func(productID string) (float64, bool) {
		p, ok := h.Catalog.FindByID(productID)
		if !ok {
			return 0, false
		}
		return p.Price, true
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul total"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// 🟢 POST /api/cart/add
func (h *Handler) AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	product, ok := h.Catalog.FindByID(input.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// Le stock courant du produit sert de plafond à la ligne.
	items, err := h.Carts.AddOrIncrement(c.Request.Context(), userID, input.ProductID, input.Quantity, product.Stock)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   items,
	})
}

// 🟡 PUT /api/cart/:productId — remplace la quantité d'une ligne
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	product, ok := h.Catalog.FindByID(productID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	items, err := h.Carts.SetQuantity(c.Request.Context(), userID, productID, input.Quantity, product.Stock)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
			return
		}
		if errors.Is(err, cart.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit absent du panier"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier mis à jour",
		"items":   items,
	})
}

// ❌ DELETE /api/cart/:productId
func (h *Handler) RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	items, err := h.Carts.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   items,
	})
}

// 🧹 DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.Carts.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
