package attributes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
	"github.com/voycel/Asset-Tracker-sub000/pkg/security"
)

type ValueHandler struct {
	service *ValueService
}

func NewValueHandler(service *ValueService) *ValueHandler {
	return &ValueHandler{service: service}
}

func (h *ValueHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/assets/:id/values", h.ListValues)
		protectedRoutes.PUT("/assets/:id/values/:fieldId", h.UpsertValue)
	}
}

func (h *ValueHandler) UpsertValue(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
		return
	}

	fieldID, err := strconv.Atoi(c.Param("fieldId"))
	if err != nil || fieldID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid field id"})
		return
	}

	var req models.ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	userID := security.GetUserIDFromContext(c)

	view, err := h.service.UpsertValue(assetID, fieldID, req.Value, userID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to store field value", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ValueHandler) ListValues(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
		return
	}

	views, err := h.service.ValuesFor(assetID)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to list field values", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, views)
}
