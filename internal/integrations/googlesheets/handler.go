package googlesheets

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"

	"github.com/voycel/Asset-Tracker-sub000/internal/assets"
	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/security"
)

type GoogleSheetsHandler struct {
	service      *SheetPushService
	assetService *assets.AssetService
}

// NewSheetsClient builds the API client from GOOGLE_SHEETS_CREDENTIALS_JSON,
// falling back to a local credentials file for development.
func NewSheetsClient(ctx context.Context) (*sheets.Service, error) {
	credentialsJSON := os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON")
	var credentials *google.Credentials
	var err error

	if credentialsJSON != "" {
		credentials, err = google.CredentialsFromJSON(ctx, []byte(credentialsJSON), sheets.SpreadsheetsScope)
	} else {
		credentialsFile := "configs/google-credentials.json"
		b, readErr := os.ReadFile(credentialsFile)
		if readErr != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", readErr)
		}
		credentials, err = google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsScope)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.New(client)
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets client: %w", err)
	}

	return sheetsService, nil
}

func NewGoogleSheetsHandler(service *SheetPushService, assetService *assets.AssetService) *GoogleSheetsHandler {
	return &GoogleSheetsHandler{service: service, assetService: assetService}
}

func (h *GoogleSheetsHandler) RegisterRoutes(router *gin.Engine) {
	authorized := router.Group("/")
	authorized.Use(security.JWTMiddleware())

	authorized.POST("/integrations/sheets/push", security.Authorize("admin"), h.PushAssets)
}

type pushRequest struct {
	SpreadsheetID string `json:"spreadsheet_id" binding:"required"`
	SheetName     string `json:"sheet_name"`
}

func (h *GoogleSheetsHandler) PushAssets(c *gin.Context) {
	var req pushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	filter, err := assets.FilterFromQuery(c, h.assetService)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Invalid filter", "details": err.Error()})
		return
	}

	result, err := h.service.PushAssets(req.SpreadsheetID, req.SheetName, filter)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to push assets to sheet", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
