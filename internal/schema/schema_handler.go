package schema

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
	"github.com/voycel/Asset-Tracker-sub000/pkg/security"
)

type SchemaHandler struct {
	service *SchemaService
}

func NewSchemaHandler(service *SchemaService) *SchemaHandler {
	return &SchemaHandler{service: service}
}

func (h *SchemaHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/asset-types", h.ListAssetTypes)
		protectedRoutes.GET("/asset-types/:id/fields", h.ListFields)
		protectedRoutes.POST("/asset-types", security.Authorize("admin"), h.CreateAssetType)
		protectedRoutes.PATCH("/asset-types/:id", security.Authorize("admin"), h.UpdateAssetType)
		protectedRoutes.DELETE("/asset-types/:id", security.Authorize("admin"), h.DeleteAssetType)
		protectedRoutes.POST("/asset-types/:id/fields", security.Authorize("admin"), h.DefineField)
		protectedRoutes.PATCH("/fields/:id", security.Authorize("admin"), h.UpdateField)
		protectedRoutes.DELETE("/fields/:id", security.Authorize("admin"), h.DeleteField)
	}
}

func (h *SchemaHandler) CreateAssetType(c *gin.Context) {
	var req models.AssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	assetType, err := h.service.CreateAssetType(req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to create asset type", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, assetType)
}

func (h *SchemaHandler) ListAssetTypes(c *gin.Context) {
	var tenantID *int
	if raw := c.Query("tenant_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "tenant_id must be an integer"})
			return
		}
		tenantID = &id
	}

	assetTypes, err := h.service.ListAssetTypes(tenantID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to list asset types", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assetTypes)
}

func (h *SchemaHandler) UpdateAssetType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset type id"})
		return
	}

	var req models.AssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	assetType, err := h.service.UpdateAssetType(id, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to update asset type", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assetType)
}

func (h *SchemaHandler) DeleteAssetType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset type id"})
		return
	}

	if err := h.service.DeleteAssetType(id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to delete asset type", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset type deleted successfully"})
}

func (h *SchemaHandler) DefineField(c *gin.Context) {
	assetTypeID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetTypeID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset type id"})
		return
	}

	var req models.FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	field, err := h.service.DefineField(assetTypeID, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to define field", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, field)
}

func (h *SchemaHandler) ListFields(c *gin.Context) {
	assetTypeID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetTypeID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset type id"})
		return
	}

	fields, err := h.service.ListFields(assetTypeID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to list fields", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, fields)
}

func (h *SchemaHandler) UpdateField(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid field id"})
		return
	}

	var req models.FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	field, err := h.service.UpdateField(id, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to update field", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, field)
}

func (h *SchemaHandler) DeleteField(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid field id"})
		return
	}

	if err := h.service.DeleteField(id); err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to delete field", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Field deleted successfully"})
}
