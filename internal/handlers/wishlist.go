package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"luxe_back_end/internal/models"
)

// 🔵 GET /api/wishlist — identifiants + produits résolus pour l'affichage
func (h *Handler) GetWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	ids, err := h.Wishlists.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture wishlist"})
		return
	}

	// Les produits supprimés du catalogue sont simplement ignorés à l'affichage.
	products := []models.Product{}
	for _, id := range ids {
		if p, ok := h.Catalog.FindByID(id); ok {
			products = append(products, *p)
		}
	}

	c.JSON(http.StatusOK, gin.H{"ids": ids, "items": products})
}

// 🟢 POST /api/wishlist/toggle — bascule l'appartenance et renvoie la transition
func (h *Handler) ToggleWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if _, ok := h.Catalog.FindByID(req.ProductID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	added, err := h.Wishlists.Toggle(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour wishlist"})
		return
	}

	message := "Produit retiré de la wishlist"
	if added {
		message = "Produit ajouté à la wishlist"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"added":      added,
		"product_id": req.ProductID,
	})
}
