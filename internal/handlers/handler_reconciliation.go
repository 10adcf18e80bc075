package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	coresvc "github.com/ledgerly/bankrecon_app/internal/core/services"
	"github.com/ledgerly/bankrecon_app/internal/dto"
	"github.com/ledgerly/bankrecon_app/internal/middleware"
)

// reconciliationHandler handles HTTP requests related to reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: reconciliationService,
	}
}

// autoMatch godoc
// @Summary Auto-match bank statements against journals
// @Description Runs the set-based matching routine and returns aggregate counts
// @Tags reconciliation
// @Produce  json
// @Success 200 {object} dto.AutoMatchResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Matching failed"
// @Router /reconciliation/auto-match [post]
func (h *reconciliationHandler) autoMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reconciliationService.AutoMatch(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Auto-match failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// manualMatch godoc
// @Summary Manually match a statement line to a journal
// @Description Creates a reconciliation link and marks the statement line matched
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   statementID path string true "Statement ID"
// @Param   match body dto.ManualMatchRequest true "Journal to match against"
// @Success 204 "Matched"
// @Failure 404 {object} map[string]string "Statement or journal not found"
// @Failure 409 {object} map[string]string "Statement already matched"
// @Router /statements/{statementID}/match [post]
func (h *reconciliationHandler) manualMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statementID := c.Param("statementID")

	var req dto.ManualMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for manualMatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.reconciliationService.ManualMatch(c.Request.Context(), userID, statementID, req.JournalID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, coresvc.ErrStatementAlreadyMatched), errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Manual match failed", slog.String("error", err.Error()), slog.String("statement_id", statementID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// unmatch godoc
// @Summary Unmatch a statement line
// @Description Removes the active reconciliation link and resets the line to unmatched
// @Tags reconciliation
// @Produce  json
// @Param   statementID path string true "Statement ID"
// @Success 204 "Unmatched"
// @Failure 404 {object} map[string]string "Statement not found"
// @Failure 409 {object} map[string]string "Statement is not matched"
// @Router /statements/{statementID}/match [delete]
func (h *reconciliationHandler) unmatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statementID := c.Param("statementID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.reconciliationService.Unmatch(c.Request.Context(), userID, statementID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, coresvc.ErrStatementNotMatched):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Unmatch failed", slog.String("error", err.Error()), slog.String("statement_id", statementID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// reconciliationReport godoc
// @Summary Get the reconciliation progress report
// @Tags reconciliation
// @Produce  json
// @Success 200 {object} domain.ReconciliationReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /reconciliation/report [get]
func (h *reconciliationHandler) reconciliationReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reconciliationService.GetReconciliationReport(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to generate reconciliation report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reconciliation report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
