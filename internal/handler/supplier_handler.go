package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"medreq-service/internal/model"
	"medreq-service/pkg/database"
	"medreq-service/pkg/logger"
	"medreq-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupplierRequest defines the structure for supplier creation/update requests
type SupplierRequest struct {
	Name  string `json:"name"`
	CRNo  string `json:"crNo"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ListSuppliers returns all active suppliers sorted by name
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())

	var suppliers []model.Supplier
	result := database.GetDB().
		Scopes(model.ActiveOnly).
		Order("name ASC").
		Find(&suppliers)
	if result.Error != nil {
		log.Error("Failed to retrieve suppliers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to retrieve suppliers",
		})
	}

	return c.JSON(http.StatusOK, suppliers)
}

// CreateSupplier creates a new supplier
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("create")

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid request data",
		})
	}
	if req.Name == "" || req.CRNo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Name and CR No are required",
		})
	}

	// Name uniqueness is case-insensitive across all suppliers, archived
	// ones included, so a re-created supplier cannot shadow history
	var count int64
	database.GetDB().Model(&model.Supplier{}).
		Where("LOWER(name) = LOWER(?)", req.Name).
		Count(&count)
	if count > 0 {
		log.Warn("Supplier already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Supplier already exists",
		})
	}

	supplier := model.Supplier{
		Name:  req.Name,
		CRNo:  req.CRNo,
		Phone: req.Phone,
		Email: req.Email,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := database.GetDB().Create(&supplier).Error; err != nil {
		log.Error("Failed to create supplier", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to create supplier",
		})
	}

	log.Info("Supplier created",
		zap.Uint("id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier updates an existing supplier
func UpdateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid supplier ID",
		})
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid request data",
		})
	}

	var supplier model.Supplier
	if err := database.GetDB().First(&supplier, id).Error; err != nil {
		log.Warn("Supplier not found", zap.Uint64("supplier_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"message": "Supplier not found",
		})
	}

	// Check for a name collision only when the name actually changes
	if req.Name != "" && !strings.EqualFold(req.Name, supplier.Name) {
		var count int64
		database.GetDB().Model(&model.Supplier{}).
			Where("LOWER(name) = LOWER(?) AND id != ?", req.Name, id).
			Count(&count)
		if count > 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "Supplier name already exists",
			})
		}
	}

	if req.Name != "" {
		supplier.Name = req.Name
	}
	if req.CRNo != "" {
		supplier.CRNo = req.CRNo
	}
	if req.Phone != "" {
		supplier.Phone = req.Phone
	}
	if req.Email != "" {
		supplier.Email = req.Email
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := database.GetDB().Save(&supplier).Error; err != nil {
		log.Error("Failed to update supplier", zap.Uint64("supplier_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to update supplier",
		})
	}

	log.Info("Supplier updated", zap.Uint("id", supplier.ID), zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier archives a supplier. Historical requirement lists keep
// referencing it.
func DeleteSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid supplier ID",
		})
	}

	var supplier model.Supplier
	if err := database.GetDB().First(&supplier, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"message": "Supplier not found",
		})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	supplier.Status = model.StatusArchived
	if err := database.GetDB().Save(&supplier).Error; err != nil {
		log.Error("Failed to archive supplier", zap.Uint64("supplier_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to delete supplier",
		})
	}

	log.Info("Supplier archived", zap.Uint("id", supplier.ID), zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Supplier removed",
	})
}

// ListSupplierMedicines returns the active medicines of one supplier
func ListSupplierMedicines(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("list_medicines")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid supplier ID",
		})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var medicines []model.Medicine
	result := database.GetDB().
		Scopes(model.ActiveOnly).
		Where("supplier_id = ?", id).
		Order("name ASC").
		Find(&medicines)
	if result.Error != nil {
		log.Error("Failed to retrieve supplier medicines", zap.Uint64("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to retrieve medicines",
		})
	}

	return c.JSON(http.StatusOK, medicines)
}
