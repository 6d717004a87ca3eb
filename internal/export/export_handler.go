package export

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voycel/Asset-Tracker-sub000/internal/assets"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/security"
)

type ExportHandler struct {
	exporter     *ExportService
	importer     *ImportService
	assetService *assets.AssetService
}

func NewExportHandler(exporter *ExportService, importer *ImportService, assetService *assets.AssetService) *ExportHandler {
	return &ExportHandler{exporter: exporter, importer: importer, assetService: assetService}
}

func (h *ExportHandler) RegisterRoutes(router *gin.Engine) {
	authorized := router.Group("/")
	authorized.Use(security.JWTMiddleware())

	authorized.GET("/export/assets", h.ExportAssets)
	authorized.POST("/import/assets", security.Authorize("moderator"), h.ImportAssets)
}

func (h *ExportHandler) ExportAssets(c *gin.Context) {
	filter, err := assets.FilterFromQuery(c, h.assetService)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Invalid filter", "details": err.Error()})
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "json":
		documents, err := h.exporter.JSONDocuments(filter)
		if err != nil {
			c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to export assets", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, documents)
	case "csv":
		table, err := h.exporter.BuildTable(filter)
		if err != nil {
			c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to export assets", "details": err.Error()})
			return
		}

		filename := fmt.Sprintf("assets-%s.csv", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Header("Content-Type", "text/csv")

		writer := csv.NewWriter(c.Writer)
		if err := writer.Write(table.Header); err != nil {
			return
		}
		for _, row := range table.Rows {
			if err := writer.Write(row); err != nil {
				return
			}
		}
		writer.Flush()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format", "details": "expected csv or json"})
	}
}

func (h *ExportHandler) ImportAssets(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload", "details": err.Error()})
		return
	}
	defer file.Close()

	var tenantID *int
	if raw := c.Query("tenant_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant_id"})
			return
		}
		tenantID = &id
	}

	result, err := h.importer.ImportCSV(file, tenantID, security.GetUserIDFromContext(c))
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to import assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
