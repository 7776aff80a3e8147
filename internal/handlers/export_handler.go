package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetly/internal/services"
)

const csvContentType = "text/csv; charset=utf-8"

// ExportHandler serves CSV reports.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportMonth writes the CSV report of one month.
// @Summary     Export month CSV
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {string} string "CSV report"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/months/{year}/{month} [get]
func (h *ExportHandler) ExportMonth(c *gin.Context) {
	ym, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Buffer so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.exportService.WriteMonthCSV(&buf, getOwnerID(c), ym); err != nil {
		respondWithError(c, err)
		return
	}
	writeCSV(c, fmt.Sprintf("budget-%s.csv", ym.Key()), buf.Bytes())
}

// ExportHistory writes the multi-month comparison CSV.
// @Summary     Export history CSV
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Param       from query string true "First month (YYYY-MM)"
// @Param       to   query string true "Last month (YYYY-MM)"
// @Success     200 {string} string "CSV report"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/history [get]
func (h *ExportHandler) ExportHistory(c *gin.Context) {
	from, to, err := parseHistoryRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteHistoryCSV(&buf, getOwnerID(c), from, to); err != nil {
		respondWithError(c, err)
		return
	}
	writeCSV(c, fmt.Sprintf("budget-history-%s-to-%s.csv", from.Key(), to.Key()), buf.Bytes())
}

func writeCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, csvContentType, data)
}
