package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 🔵 GET /api/products — liste filtrée du catalogue
func (h *Handler) GetProducts(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")

	minPrice, _ := strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("max_price", "0"), 64)

	products, err := h.Catalog.Search(category, search, minPrice, maxPrice)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalogue indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// 🔵 GET /api/products/:id
func (h *Handler) GetProductByID(c *gin.Context) {
	product, ok := h.Catalog.FindByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// 🔵 GET /api/categories — libellés distincts, triés
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.Catalog.ListCategories()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalogue indisponible"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
