package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ledgerly/bankrecon_app/cmd/docs"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/ledgerly/bankrecon_app/internal/middleware"
	"github.com/ledgerly/bankrecon_app/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerExampleRoutes(v1)
	registerStatementRoutes(v1, services.Statement, services.Reconciliation)
	registerReconciliationRoutes(v1, services.Reconciliation)
	registerJournalRoutes(v1, services.Journal)
	registerAccountRoutes(v1, services.Account)
	registerReportingRoutes(v1, services.Reporting)
}

func registerExampleRoutes(v1 *gin.RouterGroup) {
	eg := v1.Group("/example")
	eg.GET("/helloworld", GetHome)
}

func registerStatementRoutes(v1 *gin.RouterGroup, statementSvc portssvc.StatementSvcFacade, reconciliationSvc portssvc.ReconciliationSvcFacade) {
	statementHandler := newStatementHandler(statementSvc)
	reconciliationHandler := newReconciliationHandler(reconciliationSvc)

	statements := v1.Group("/statements")
	{
		statements.POST("/import", statementHandler.importStatements)
		statements.POST("/import/csv", statementHandler.importStatementsCSV)
		statements.GET("", statementHandler.listStatements)
		statements.GET("/:statementID", statementHandler.getStatement)
		statements.DELETE("/:statementID", statementHandler.deleteStatement)
		statements.POST("/:statementID/match", reconciliationHandler.manualMatch)
		statements.DELETE("/:statementID/match", reconciliationHandler.unmatch)
	}
}

func registerReconciliationRoutes(v1 *gin.RouterGroup, reconciliationSvc portssvc.ReconciliationSvcFacade) {
	reconciliationHandler := newReconciliationHandler(reconciliationSvc)

	reconciliation := v1.Group("/reconciliation")
	{
		reconciliation.POST("/auto-match", reconciliationHandler.autoMatch)
		reconciliation.GET("/report", reconciliationHandler.reconciliationReport)
	}
}

func registerJournalRoutes(v1 *gin.RouterGroup, journalSvc portssvc.JournalSvcFacade) {
	journalHandler := newJournalHandler(journalSvc)

	journals := v1.Group("/journals")
	{
		journals.POST("/from-statement", journalHandler.createFromStatement)
		journals.GET("", journalHandler.listJournals)
		journals.GET("/:journalID", journalHandler.getJournal)
		journals.POST("/:journalID/void", journalHandler.voidJournal)
	}
}

func registerAccountRoutes(v1 *gin.RouterGroup, accountSvc portssvc.AccountSvcFacade) {
	accountHandler := newAccountHandler(accountSvc)

	accounts := v1.Group("/accounts")
	{
		accounts.GET("", accountHandler.listAccounts)
		accounts.GET("/:accountID", accountHandler.getAccount)
	}
}

func registerReportingRoutes(v1 *gin.RouterGroup, reportingSvc portssvc.ReportingService) {
	reportingHandler := newReportingHandler(reportingSvc)

	reports := v1.Group("/reports")
	{
		reports.GET("/trial-balance", reportingHandler.trialBalance)
		reports.GET("/receipts-payments", reportingHandler.receiptsAndPayments)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
