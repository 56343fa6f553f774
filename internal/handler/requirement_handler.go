package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"medreq-service/internal/model"
	"medreq-service/internal/report"
	"medreq-service/internal/requirement"
	"medreq-service/pkg/logger"
	"medreq-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AddItemRequest is the body of an add-item call
type AddItemRequest struct {
	MedicineID uint `json:"medicineId"`
}

// GeneratePDFRequest selects which suppliers and which day's list to report.
// A nil ListID means today's list.
type GeneratePDFRequest struct {
	SupplierIDs []uint `json:"supplierIds"`
	ListID      *uint  `json:"listId"`
}

// RequirementHandler exposes the daily requirement list lifecycle and the
// PDF report over HTTP
type RequirementHandler struct {
	svc *requirement.Service
	gen *report.Generator
}

// NewRequirementHandler creates the requirement list handler
func NewRequirementHandler(svc *requirement.Service, gen *report.Generator) *RequirementHandler {
	return &RequirementHandler{svc: svc, gen: gen}
}

// Today returns today's requirement list, creating it on first access
func (h *RequirementHandler) Today(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRequirementOperation("today")

	list, err := h.svc.GetOrCreateForDay(h.svc.Today())
	if err != nil {
		log.Error("Failed to load today's list", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to load today's list",
		})
	}
	return c.JSON(http.StatusOK, list)
}

// AddItem appends a medicine to today's list
func (h *RequirementHandler) AddItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRequirementOperation("add_item")

	var req AddItemRequest
	if err := c.Bind(&req); err != nil || req.MedicineID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "medicineId is required",
		})
	}

	list, err := h.svc.AddItem(h.svc.Today(), req.MedicineID)
	switch {
	case errors.Is(err, requirement.ErrDuplicateItem):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Medicine already in today's list",
		})
	case err != nil:
		log.Error("Failed to add item", zap.Uint("medicine_id", req.MedicineID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to add item",
		})
	}

	log.Info("Item added to today's list",
		zap.Uint("medicine_id", req.MedicineID),
		zap.Int("items", len(list.Items)))
	return c.JSON(http.StatusOK, list)
}

// RemoveItem removes a medicine from today's list. A day without a list
// is a no-op.
func (h *RequirementHandler) RemoveItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRequirementOperation("remove_item")

	medicineID, err := strconv.ParseUint(c.Param("medicineId"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid medicine ID",
		})
	}

	list, err := h.svc.RemoveItem(h.svc.Today(), uint(medicineID))
	if err != nil {
		log.Error("Failed to remove item", zap.Uint64("medicine_id", medicineID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to remove item",
		})
	}
	return c.JSON(http.StatusOK, list)
}

// History returns all requirement lists, newest first
func (h *RequirementHandler) History(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRequirementOperation("history")

	history, err := h.svc.History()
	if err != nil {
		log.Error("Failed to load history", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to load history",
		})
	}
	return c.JSON(http.StatusOK, history)
}

// DeleteHistory permanently deletes one day's list
func (h *RequirementHandler) DeleteHistory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRequirementOperation("delete_history")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid list ID",
		})
	}

	switch err := h.svc.DeleteHistoryRecord(uint(id)); {
	case errors.Is(err, requirement.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"message": "Requirement list not found",
		})
	case err != nil:
		log.Error("Failed to delete history record", zap.Uint64("list_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to delete requirement list",
		})
	}

	log.Info("Requirement list deleted", zap.Uint64("list_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Requirement list deleted successfully",
	})
}

// GeneratePDF renders the grouped supplier report for today's list, or for
// a historical list when listId is given. The PDF is rendered into memory
// first so precondition and rendering failures can still produce a JSON
// error; nothing is streamed before the document is complete.
func (h *RequirementHandler) GeneratePDF(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRequirementOperation("generate_pdf")

	var req GeneratePDFRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid request data",
		})
	}

	var (
		list *model.RequirementList
		err  error
	)
	if req.ListID != nil {
		list, err = h.svc.GetByID(*req.ListID)
		if err == nil && list == nil {
			return c.JSON(http.StatusNotFound, echo.Map{
				"message": "Requirement list not found",
			})
		}
	} else {
		list, err = h.svc.GetOrCreateForDay(h.svc.Today())
	}
	if err != nil {
		log.Error("Failed to load requirement list", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to load requirement list",
		})
	}

	day := h.svc.DayOf(list.Date)

	var buf bytes.Buffer
	pages, err := h.gen.Generate(&buf, day, reportItems(list.Items), req.SupplierIDs)
	switch {
	case errors.Is(err, report.ErrNoItems), errors.Is(err, report.ErrNoMatchingSupplier):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": err.Error(),
		})
	case err != nil:
		log.Error("Failed to generate report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to generate report",
		})
	}

	prometheus.RecordReportGenerated(pages)
	log.Info("Report generated",
		zap.Time("day", day),
		zap.Int("pages", pages),
		zap.Int("bytes", buf.Len()))

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+report.Filename(day))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

// reportItems maps resolved list items to report rows. Unresolvable
// references come through as zero rows the sanitize step drops.
func reportItems(items []model.RequirementItem) []report.Item {
	out := make([]report.Item, 0, len(items))
	for _, item := range items {
		var row report.Item
		if item.Medicine != nil {
			row.MedicineName = item.Medicine.Name
			if item.Medicine.Supplier != nil {
				row.Supplier = &report.Supplier{
					ID:    item.Medicine.Supplier.ID,
					Name:  item.Medicine.Supplier.Name,
					Phone: item.Medicine.Supplier.Phone,
				}
			}
		}
		out = append(out, row)
	}
	return out
}
