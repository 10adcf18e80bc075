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

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// createFromStatement godoc
// @Summary Create a journal from a bank statement line
// @Description Posts a balanced two-line journal derived from a statement line
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalFromStatementRequest true "Journal details"
// @Success 200 {object} map[string]string "Returns the ID of the created journal"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Statement or account not found"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Router /journals/from-statement [post]
func (h *journalHandler) createFromStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalFromStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createFromStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journalID, err := h.journalService.CreateJournalFromBankStatement(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, coresvc.ErrSameAccount), errors.Is(err, coresvc.ErrAccountInactive):
			logger.Warn("Validation error creating journal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create journal from statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	logger.Info("Journal created", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, gin.H{"journalID": journalID})
}

// getJournal godoc
// @Summary Get a journal entry with its lines
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), userID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		logger.Error("Failed to get journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for listJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journals"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// voidJournal godoc
// @Summary Void a posted journal
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 204 "Voided"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not posted"
// @Router /journals/{journalID}/void [post]
func (h *journalHandler) voidJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.journalService.VoidJournal(c.Request.Context(), userID, journalID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		case errors.Is(err, coresvc.ErrJournalNotPosted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to void journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void journal"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
