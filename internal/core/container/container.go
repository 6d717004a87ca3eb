package container

import (
	"database/sql"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"github.com/voycel/Asset-Tracker-sub000/internal/assets"
	"github.com/voycel/Asset-Tracker-sub000/internal/attributes"
	auditLogRepo "github.com/voycel/Asset-Tracker-sub000/internal/auditlog"
	"github.com/voycel/Asset-Tracker-sub000/internal/export"
	"github.com/voycel/Asset-Tracker-sub000/internal/integrations/googlesheets"
	"github.com/voycel/Asset-Tracker-sub000/internal/relationships"
	"github.com/voycel/Asset-Tracker-sub000/internal/repository"
	"github.com/voycel/Asset-Tracker-sub000/internal/schema"
	"github.com/voycel/Asset-Tracker-sub000/internal/taxonomy"
	"github.com/voycel/Asset-Tracker-sub000/internal/users"
	"github.com/voycel/Asset-Tracker-sub000/pkg/auditlog"
	"github.com/voycel/Asset-Tracker-sub000/pkg/security"
)

type Container struct {
	Repository          *repository.Repository
	AuditLog            *auditlog.Auditlog
	LoginHandler        *security.LoginHandler
	SchemaHandler       *schema.SchemaHandler
	TaxonomyHandler     *taxonomy.TaxonomyHandler
	AssetHandler        *assets.AssetHandler
	ValueHandler        *attributes.ValueHandler
	RelationshipHandler *relationships.RelationshipHandler
	UserHandler         *users.UsersHandler
	ExportHandler       *export.ExportHandler
	SheetsHandler       *googlesheets.GoogleSheetsHandler

	AssetService *assets.AssetService
}

func NewAppContainer(db *sql.DB, logger *zap.Logger) *Container {
	repo := repository.NewRepository(db)

	auditRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditRepo, logger)

	assetTypeRepo := schema.NewAssetTypeRepository(repo)
	fieldRepo := schema.NewFieldRepository(repo)
	schemaService := schema.NewSchemaService(assetTypeRepo, fieldRepo)
	schemaHandler := schema.NewSchemaHandler(schemaService)

	taxonomyRepo := taxonomy.NewTaxonomyRepository(repo)
	taxonomyService := taxonomy.NewTaxonomyService(taxonomyRepo)
	taxonomyHandler := taxonomy.NewTaxonomyHandler(taxonomyService)

	assetRepo := assets.NewRepository(repo)
	valueRepo := attributes.NewValueRepository(repo)
	valueService := attributes.NewValueService(valueRepo, fieldRepo, assetRepo, repo, auditLog)
	valueHandler := attributes.NewValueHandler(valueService)

	assetService := assets.NewAssetService(
		assetRepo, assetTypeRepo, fieldRepo, taxonomyRepo,
		valueRepo, auditRepo, auditLog, repo,
	)
	assetHandler := assets.NewAssetHandler(assetService)

	relationshipRepo := relationships.NewRelationshipRepository(repo)
	relationshipService := relationships.NewRelationshipService(relationshipRepo, assetRepo, auditLog, repo)
	relationshipHandler := relationships.NewRelationshipHandler(relationshipService)

	userRepo := users.NewRepository(repo)
	userHandler := users.NewHandler(userRepo)
	loginHandler := security.NewLoginHandler(repo)

	exportService := export.NewExportService(assetRepo, valueRepo)
	importService := export.NewImportService(assetService, assetTypeRepo, taxonomyRepo, auditLog)
	exportHandler := export.NewExportHandler(exportService, importService, assetService)

	return &Container{
		Repository:          repo,
		AuditLog:            auditLog,
		LoginHandler:        loginHandler,
		SchemaHandler:       schemaHandler,
		TaxonomyHandler:     taxonomyHandler,
		AssetHandler:        assetHandler,
		ValueHandler:        valueHandler,
		RelationshipHandler: relationshipHandler,
		UserHandler:         userHandler,
		ExportHandler:       exportHandler,
		AssetService:        assetService,
	}
}

// AttachSheets wires the Google Sheets push surface. Called only when
// credentials are available; without it the rest of the API runs as usual.
func (c *Container) AttachSheets(sheetsService *sheets.Service) {
	valueRepo := attributes.NewValueRepository(c.Repository)
	assetRepo := assets.NewRepository(c.Repository)
	exporter := export.NewExportService(assetRepo, valueRepo)
	pushService := googlesheets.NewSheetPushService(sheetsService, exporter)
	c.SheetsHandler = googlesheets.NewGoogleSheetsHandler(pushService, c.AssetService)
}
