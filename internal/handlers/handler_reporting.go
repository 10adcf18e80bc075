package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerly/bankrecon_app/internal/core/ports/services"
	"github.com/ledgerly/bankrecon_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// trialBalance godoc
// @Summary Get a trial balance report
// @Tags reports
// @Produce  json
// @Param   asOf query string false "As-of date (RFC3339 or YYYY-MM-DD), defaults to now"
// @Success 200 {array} domain.TrialBalanceRow
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := parseReportDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
			return
		}
		asOf = parsed
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), userID, asOf)
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// receiptsAndPayments godoc
// @Summary Get a receipts and payments report
// @Tags reports
// @Produce  json
// @Param   from query string true "Period start (RFC3339 or YYYY-MM-DD)"
// @Param   to query string true "Period end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} domain.ReceiptsAndPaymentsReport
// @Failure 400 {object} map[string]string "Invalid period"
// @Router /reports/receipts-payments [get]
func (h *reportingHandler) receiptsAndPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, err := parseReportDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
		return
	}
	to, err := parseReportDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
		return
	}

	report, err := h.reportingService.ReceiptsAndPayments(c.Request.Context(), userID, from, to)
	if err != nil {
		logger.Error("Failed to generate receipts and payments report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipts and payments report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// parseReportDate accepts RFC3339 timestamps or plain dates.
func parseReportDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
