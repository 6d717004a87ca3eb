package assets

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
	"github.com/voycel/Asset-Tracker-sub000/pkg/security"
)

type AssetHandler struct {
	service *AssetService
}

func NewAssetHandler(service *AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	authorized := router.Group("/")
	authorized.Use(security.JWTMiddleware())

	authorized.GET("/assets", h.ListAssets)
	authorized.GET("/assets/:id", h.GetAsset)
	authorized.GET("/assets/:id/logs", h.GetAssetLogs)
	authorized.POST("/assets", h.CreateAsset)
	authorized.PATCH("/assets/:id", h.UpdateAsset)
	authorized.POST("/assets/:id/archive", h.ArchiveAsset)
	authorized.DELETE("/assets/:id", security.Authorize("admin"), h.DeleteAsset)

	for _, dimension := range Dimensions() {
		authorized.PUT("/assets/:id/"+string(dimension), h.setPointerHandler(dimension))
	}
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.Create(req, security.GetUserIDFromContext(c))
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to create asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	detail, err := h.service.Detail(assetID)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to fetch asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *AssetHandler) GetAssetLogs(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	detail, err := h.service.Detail(assetID)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to fetch asset history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail.Logs)
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	filter, err := FilterFromQuery(c, h.service)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Invalid filter", "details": err.Error()})
		return
	}

	assets, err := h.service.List(filter)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to list assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var req models.AssetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.service.Update(assetID, req, security.GetUserIDFromContext(c))
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to update asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

type pointerRequest struct {
	ID *int `json:"id"`
}

func (h *AssetHandler) setPointerHandler(dimension Dimension) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
			return
		}

		var req pointerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}

		asset, err := h.service.SetPointer(assetID, dimension, req.ID, security.GetUserIDFromContext(c))
		if err != nil {
			c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to change asset " + string(dimension), "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, asset)
	}
}

func (h *AssetHandler) ArchiveAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	if err := h.service.Archive(assetID, security.GetUserIDFromContext(c)); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to archive asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset archived"})
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	if err := h.service.Delete(assetID, security.GetUserIDFromContext(c)); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to delete asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted"})
}

type fieldFilterResolver interface {
	ResolveFieldFilter(fieldID int, raw string) (FieldFilter, error)
}

// FilterFromQuery maps the flat query params onto AssetFilter. Custom-field
// filters use the field_<id>=value convention and get coerced to the field's
// declared kind before comparison.
func FilterFromQuery(c *gin.Context, resolver fieldFilterResolver) (AssetFilter, error) {
	filter := AssetFilter{
		Search:          c.Query("search"),
		IncludeArchived: c.Query("include_archived") == "true",
	}

	intParams := map[string]**int{
		"tenant_id":       &filter.TenantID,
		"asset_type_id":   &filter.AssetTypeID,
		"status_id":       &filter.StatusID,
		"location_id":     &filter.LocationID,
		"assignment_id":   &filter.AssignmentID,
		"customer_id":     &filter.CustomerID,
		"manufacturer_id": &filter.ManufacturerID,
	}
	for name, target := range intParams {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return AssetFilter{}, custom_error.NewValidationError(name, "expected a numeric ID", raw)
		}
		*target = &value
	}

	for name, values := range c.Request.URL.Query() {
		if !strings.HasPrefix(name, "field_") || len(values) == 0 {
			continue
		}
		fieldID, err := strconv.Atoi(strings.TrimPrefix(name, "field_"))
		if err != nil {
			return AssetFilter{}, custom_error.NewValidationError(name, "expected field_<id>", name)
		}
		fieldFilter, err := resolver.ResolveFieldFilter(fieldID, values[0])
		if err != nil {
			return AssetFilter{}, err
		}
		filter.FieldFilters = append(filter.FieldFilters, fieldFilter)
	}

	return filter, nil
}
