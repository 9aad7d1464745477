package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"luxe_back_end/internal/orders"
)

// 🔵 GET /api/admin/analytics — agrégats du tableau de bord
func (h *Handler) GetAnalytics(c *gin.Context) {
	allOrders, err := h.Orders.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur agrégation commandes"})
		return
	}

	revenue := 0.0
	for _, o := range allOrders {
		revenue += o.TotalAmount
	}

	products, err := h.Catalog.Load()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalogue indisponible"})
		return
	}

	userCount, err := h.Users.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur comptage utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_revenue":  revenue,
		"total_orders":   len(allOrders),
		"total_products": len(products),
		"total_users":    userCount,
	})
}

// 🟡 PUT /api/admin/orders/:userId/:orderId/status — suivi de commande
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	order, err := h.Orders.UpdateTrackingStatus(c.Request.Context(), c.Param("userId"), c.Param("orderId"), input.Status)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("🚚 Commande %s → statut %q", order.ID, order.TrackingStatus)

	c.JSON(http.StatusOK, gin.H{
		"message": "Statut mis à jour",
		"order":   order,
	})
}
