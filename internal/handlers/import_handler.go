package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"budgetly/internal/calendar"
	"budgetly/internal/encoding"
	apperrors "budgetly/internal/errors"
	"budgetly/internal/logger"
	"budgetly/internal/services"
)

// maxImportBodyBytes bounds JSON and file uploads.
const maxImportBodyBytes = 10 << 20

// ImportHandler handles bulk imports.
type ImportHandler struct {
	importService services.ImportServicer
	auditService  services.AuditServicer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService services.ImportServicer, auditService services.AuditServicer) *ImportHandler {
	return &ImportHandler{importService: importService, auditService: auditService}
}

// ImportRequest is the JSON import payload. Records are loosely typed; see
// the import documentation for accepted keys.
type ImportRequest struct {
	Year    int                     `json:"year" example:"2024"`
	Month   int                     `json:"month" example:"3"`
	Records []services.ImportRecord `json:"records" swaggertype:"array,object"`
}

// decodeJSON decodes r into v keeping numbers as json.Number so amounts are
// never rounded through float64.
func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}

// limitBody caps the request body at maxImportBodyBytes. A declared length
// over the cap is rejected before anything is read.
func limitBody(c *gin.Context) error {
	if c.Request.ContentLength > maxImportBodyBytes {
		return apperrors.ErrPayloadTooLarge
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBodyBytes)
	return nil
}

func bodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func targetMonth(year, month int) (calendar.YearMonth, error) {
	ym := calendar.New(year, month)
	if !ym.Valid() {
		return calendar.YearMonth{}, apperrors.WithMessage(apperrors.ErrInvalidMonth, "year and month are required")
	}
	return ym, nil
}

// Import imports a JSON batch of records.
// @Summary     Import records
// @Description Import loosely typed records into a month. Failing records are reported, not fatal.
// @Tags        import
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ImportRequest true "Target month and records"
// @Success     200 {object} services.ImportResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     413 {object} ErrorResponse "Too many records or body too large"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	if err := limitBody(c); err != nil {
		respondWithError(c, err)
		return
	}
	var req ImportRequest
	if err := decodeJSON(c.Request.Body, &req); err != nil {
		if bodyTooLarge(err) {
			respondWithError(c, apperrors.ErrPayloadTooLarge)
			return
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid JSON body: "+err.Error()))
		return
	}
	if req.Records == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "records is required"))
		return
	}
	target, err := targetMonth(req.Year, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.run(c, target, req.Records, "json")
}

// ImportFile imports records from an uploaded JSON file in any common
// text encoding.
// @Summary     Import file
// @Description Upload a JSON file (array or {"records": [...]}); UTF-8, UTF-16 and Windows-1252 are detected automatically
// @Tags        import
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file  formData file true "JSON file"
// @Param       year  formData int  true "Target year"
// @Param       month formData int  true "Target month (1-12)"
// @Success     200 {object} services.ImportResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     413 {object} ErrorResponse "Too many records or body too large"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /import/file [post]
func (h *ImportHandler) ImportFile(c *gin.Context) {
	if err := limitBody(c); err != nil {
		respondWithError(c, err)
		return
	}
	if err := c.Request.ParseMultipartForm(maxImportBodyBytes); err != nil {
		if bodyTooLarge(err) {
			respondWithError(c, apperrors.ErrPayloadTooLarge)
			return
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "expected a multipart form"))
		return
	}

	year, errYear := strconv.Atoi(c.PostForm("year"))
	month, errMonth := strconv.Atoi(c.PostForm("month"))
	if errYear != nil || errMonth != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidMonth, "year and month are required"))
		return
	}
	target, err := targetMonth(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer f.Close()

	r, charset, err := encoding.NewUTF8Reader(f)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unable to read file"))
		return
	}
	records, err := services.DecodeImportRecords(r)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid JSON file: "+err.Error()))
		return
	}

	logger.Named("import").Infow("import file received",
		"filename", fh.Filename, "charset", charset, "records", len(records))

	h.run(c, target, records, "file")
}

// PipelineImport is the script-facing variant of Import, authenticated with
// an API key instead of a bearer token.
// @Summary     Pipeline import
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       X-Owner-ID header string        false "Owner to import for"
// @Param       request    body   ImportRequest true  "Target month and records"
// @Success     200 {object} services.ImportResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/import [post]
func (h *ImportHandler) PipelineImport(c *gin.Context) {
	h.Import(c)
}

func (h *ImportHandler) run(c *gin.Context, target calendar.YearMonth, records []services.ImportRecord, source string) {
	ownerID := getOwnerID(c)
	result, err := h.importService.ImportBatch(ownerID, target, records)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, "IMPORT", "budget_month", target.Key(), c.ClientIP(), map[string]any{
		"source":             source,
		"success":            result.Success,
		"failed":             result.Failed,
		"categories_created": result.CategoriesCreated,
		"months_created":     result.MonthsCreated,
	})

	c.JSON(http.StatusOK, result)
}
