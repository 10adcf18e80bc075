package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/bankrecon_app/internal/apperrors"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	coresvc "github.com/ledgerly/bankrecon_app/internal/core/services"
	"github.com/ledgerly/bankrecon_app/internal/dto"
	"github.com/ledgerly/bankrecon_app/internal/importer"
	"github.com/ledgerly/bankrecon_app/internal/middleware"
)

// statementHandler handles HTTP requests related to bank statements.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

// newStatementHandler creates a new statementHandler.
func newStatementHandler(statementService portssvc.StatementSvcFacade) *statementHandler {
	return &statementHandler{
		statementService: statementService,
	}
}

// importStatements godoc
// @Summary Import bank statement rows
// @Description Validates and persists a batch of bank statement rows; invalid rows are rejected individually
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   batch body dto.ImportBankStatementsRequest true "Statement rows"
// @Success 200 {object} dto.ImportResultResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /statements/import [post]
func (h *statementHandler) importStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ImportBankStatementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for importStatements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.statementService.ImportBankStatements(c.Request.Context(), userID, req.Rows, req.SourceFileName)
	if err != nil {
		logger.Error("Failed to import bank statements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import bank statements"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// importStatementsCSV godoc
// @Summary Import a bank statement CSV
// @Description Parses raw CSV content (header aliases accepted) and imports the rows
// @Tags statements
// @Accept  text/csv
// @Produce  json
// @Param   fileName query string false "Source file name"
// @Success 200 {object} dto.ImportResultResponse
// @Failure 400 {object} map[string]string "Invalid CSV format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /statements/import/csv [post]
func (h *statementHandler) importStatementsCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Error("Failed to read CSV body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	rows, err := importer.ParseBankStatementCSV(string(body))
	if err != nil {
		if errors.Is(err, importer.ErrInvalidCSVFormat) {
			logger.Warn("Invalid CSV uploaded", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to parse CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse CSV"})
		return
	}

	result, err := h.statementService.ImportBankStatements(c.Request.Context(), userID, rows, c.Query("fileName"))
	if err != nil {
		logger.Error("Failed to import bank statements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import bank statements"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// listStatements godoc
// @Summary List bank statements
// @Description Retrieves a paginated list of bank statement lines, optionally filtered by status
// @Tags statements
// @Produce  json
// @Param   status query string false "Match status filter"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListBankStatementsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /statements [get]
func (h *statementHandler) listStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListBankStatementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for listStatements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.statementService.ListBankStatements(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("Failed to list bank statements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bank statements"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getStatement godoc
// @Summary Get a bank statement line
// @Tags statements
// @Produce  json
// @Param   statementID path string true "Statement ID"
// @Success 200 {object} dto.BankStatementResponse
// @Failure 404 {object} map[string]string "Statement not found"
// @Router /statements/{statementID} [get]
func (h *statementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statementID := c.Param("statementID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	line, err := h.statementService.GetBankStatement(c.Request.Context(), userID, statementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank statement not found"})
			return
		}
		logger.Error("Failed to get bank statement", slog.String("error", err.Error()), slog.String("statement_id", statementID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bank statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBankStatementResponse(line))
}

// deleteStatement godoc
// @Summary Delete a bank statement line
// @Description Removes an unmatched statement line; matched lines must be unmatched first
// @Tags statements
// @Produce  json
// @Param   statementID path string true "Statement ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Statement not found"
// @Failure 409 {object} map[string]string "Statement is matched"
// @Router /statements/{statementID} [delete]
func (h *statementHandler) deleteStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statementID := c.Param("statementID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.statementService.DeleteBankStatement(c.Request.Context(), userID, statementID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank statement not found"})
		case errors.Is(err, coresvc.ErrStatementMatched):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete bank statement", slog.String("error", err.Error()), slog.String("statement_id", statementID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bank statement"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
