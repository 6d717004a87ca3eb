package taxonomy

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
	"github.com/voycel/Asset-Tracker-sub000/pkg/security"
)

type TaxonomyHandler struct {
	service *TaxonomyService
}

func NewTaxonomyHandler(service *TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: service}
}

func (h *TaxonomyHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/taxonomies/:kind", h.List)
		protectedRoutes.POST("/taxonomies/:kind", security.Authorize("admin"), h.Create)
		protectedRoutes.PATCH("/taxonomies/:kind/:id", security.Authorize("admin"), h.Update)
		protectedRoutes.DELETE("/taxonomies/:kind/:id", security.Authorize("admin"), h.Delete)
		protectedRoutes.PUT("/taxonomies/:kind/order", security.Authorize("admin"), h.Reorder)
	}
}

func (h *TaxonomyHandler) List(c *gin.Context) {
	kind, err := NewKind(c.Param("kind"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tenantID *int
	if raw := c.Query("tenant_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "tenant_id must be an integer"})
			return
		}
		tenantID = &id
	}

	entries, err := h.service.List(kind, tenantID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to list entries", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *TaxonomyHandler) Create(c *gin.Context) {
	kind, err := NewKind(c.Param("kind"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req models.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	entry, err := h.service.Create(kind, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to create entry", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *TaxonomyHandler) Update(c *gin.Context) {
	kind, err := NewKind(c.Param("kind"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	var req models.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	entry, err := h.service.Update(kind, id, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to update entry", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *TaxonomyHandler) Delete(c *gin.Context) {
	kind, err := NewKind(c.Param("kind"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	if err := h.service.Delete(kind, id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to delete entry", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}

func (h *TaxonomyHandler) Reorder(c *gin.Context) {
	kind, err := NewKind(c.Param("kind"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		OrderedIDs []int `json:"ordered_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := h.service.Reorder(kind, req.OrderedIDs); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to reorder entries", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully"})
}
