package handler

import (
	"io"
	"net/http"

	"medreq-service/internal/importer"
	"medreq-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ImportHandler accepts xlsx uploads for bulk supplier and medicine loading
type ImportHandler struct {
	im *importer.Importer
}

// NewImportHandler creates the import handler
func NewImportHandler(im *importer.Importer) *ImportHandler {
	return &ImportHandler{im: im}
}

// ImportSuppliers imports suppliers from an uploaded workbook
func (h *ImportHandler) ImportSuppliers(c echo.Context) error {
	return h.runImport(c, h.im.Suppliers)
}

// ImportMedicines imports medicines from an uploaded workbook
func (h *ImportHandler) ImportMedicines(c echo.Context) error {
	return h.runImport(c, h.im.Medicines)
}

func (h *ImportHandler) runImport(c echo.Context, importFn func(r io.Reader) (*importer.Summary, error)) error {
	log := logger.FromContext(c)

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "File is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error("Failed to open upload", zap.String("filename", file.Filename), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	summary, err := importFn(src)
	if err != nil {
		log.Error("Import failed", zap.String("filename", file.Filename), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Failed to process file",
		})
	}

	log.Info("Import completed",
		zap.String("filename", file.Filename),
		zap.Int("total", summary.Total),
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Import completed",
		"summary": summary,
	})
}
