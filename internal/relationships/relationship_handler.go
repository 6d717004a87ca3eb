package relationships

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
	"github.com/voycel/Asset-Tracker-sub000/pkg/security"
)

type RelationshipHandler struct {
	service *RelationshipService
}

func NewRelationshipHandler(service *RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{service: service}
}

func (h *RelationshipHandler) RegisterRoutes(router *gin.Engine) {
	authorized := router.Group("/")
	authorized.Use(security.JWTMiddleware())

	authorized.GET("/relationship-types", h.ListRelationshipTypes)
	authorized.GET("/assets/:id/relationships", h.ListAssetRelationships)
	authorized.POST("/relationships", h.CreateRelationship)
	authorized.DELETE("/relationships/:id", h.DeleteRelationship)
}

func (h *RelationshipHandler) ListRelationshipTypes(c *gin.Context) {
	types := []gin.H{}
	for _, relType := range metadata.RelationshipTypes() {
		types = append(types, gin.H{
			"type":          relType.String(),
			"label":         relType.Label(),
			"inverse_label": relType.InverseLabel(),
		})
	}
	c.JSON(http.StatusOK, types)
}

func (h *RelationshipHandler) ListAssetRelationships(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	includeReverse := c.DefaultQuery("include_reverse", "true") != "false"
	views, err := h.service.ListFor(assetID, includeReverse)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to list relationships", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *RelationshipHandler) CreateRelationship(c *gin.Context) {
	var req models.RelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	relationship, err := h.service.Connect(req, security.GetUserIDFromContext(c))
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to create relationship", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, relationship)
}

func (h *RelationshipHandler) DeleteRelationship(c *gin.Context) {
	relationshipID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid relationship ID"})
		return
	}

	if err := h.service.Disconnect(relationshipID, security.GetUserIDFromContext(c)); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to delete relationship", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Relationship deleted"})
}
