package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"luxe_back_end/internal/reviews"
)

// 🔵 GET /api/products/:id/reviews — avis du produit, le plus récent en premier
func (h *Handler) GetReviews(c *gin.Context) {
	productID := c.Param("id")

	if _, ok := h.Catalog.FindByID(productID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	list, err := h.Reviews.List(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": list})
}

// 🟢 POST /api/products/:id/reviews — crée un avis sur un produit
func (h *Handler) CreateReview(c *gin.Context) {
	productID := c.Param("id")

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if _, ok := h.Catalog.FindByID(productID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	review, err := h.Reviews.Add(c.Request.Context(), productID, c.GetString("name"), req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, reviews.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Note invalide"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création avis"})
		return
	}

	log.Printf("⭐ Avis créé pour produit %s (note: %d/5)", productID, review.Rating)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Avis créé avec succès",
		"review":  review,
	})
}
