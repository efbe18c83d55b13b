package handlers

import (
	"net/http"

	"build_a_bite/internal/domain"
	"build_a_bite/internal/game"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the catalog overview (name and image only).
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.Products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct fetches a catalog entry by id, falling back to name.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Products.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Instructions serves the static per-tier help text. Unknown tiers are a
// 404, matching the historical API.
func (h *Handler) Instructions(c *gin.Context) {
	tier, err := game.ParseTier(c.Param("difficulty"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid difficulty level"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"difficulty":   tier,
		"instructions": game.Instructions[tier],
	})
}

// ---- admin only ----

func (h *Handler) CreateProduct(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil || product.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not create product"})
		return
	}

	if err := h.Products.Create(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	existing, err := h.Products.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "update failed"})
		return
	}
	product.ID = existing.ID

	if err := h.Products.Update(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	existing, err := h.Products.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Products.Delete(c.Request.Context(), existing.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) DeleteAllProducts(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.Products.DeleteAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all products deleted"})
}
