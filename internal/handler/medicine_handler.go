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

// MedicineRequest defines the structure for medicine creation/update requests
type MedicineRequest struct {
	Name       string `json:"name"`
	SupplierID uint   `json:"supplierId"`
	Barcode    string `json:"barcode"`
}

// ListMedicines returns active medicines, optionally filtered by a search
// keyword, each with its supplier resolved. Results are capped at 20 rows.
func ListMedicines(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMedicineOperation("list")

	query := database.GetDB().
		Scopes(model.ActiveOnly).
		Preload("Supplier")

	if search := c.QueryParam("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var medicines []model.Medicine
	if err := query.Limit(20).Find(&medicines).Error; err != nil {
		log.Error("Failed to retrieve medicines", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to retrieve medicines",
		})
	}

	return c.JSON(http.StatusOK, medicines)
}

// CreateMedicine creates a new medicine referencing an existing supplier
func CreateMedicine(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMedicineOperation("create")

	var req MedicineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid request data",
		})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.SupplierID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Name and supplier are required",
		})
	}

	var supplier model.Supplier
	if err := database.GetDB().First(&supplier, req.SupplierID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Supplier not found",
		})
	}

	// Unique among active medicines; an archived one may be re-created
	var count int64
	database.GetDB().Model(&model.Medicine{}).
		Scopes(model.ActiveOnly).
		Where("LOWER(name) = LOWER(?)", req.Name).
		Count(&count)
	if count > 0 {
		log.Warn("Medicine already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Medicine already exists",
		})
	}

	medicine := model.Medicine{
		Name:       req.Name,
		SupplierID: req.SupplierID,
		Barcode:    req.Barcode,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := database.GetDB().Create(&medicine).Error; err != nil {
		log.Error("Failed to create medicine", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to create medicine",
		})
	}

	// Re-read with the supplier resolved so the client can render it
	database.GetDB().Preload("Supplier").First(&medicine, medicine.ID)

	log.Info("Medicine created", zap.Uint("id", medicine.ID), zap.String("name", medicine.Name))
	return c.JSON(http.StatusCreated, medicine)
}

// UpdateMedicine updates an existing medicine
func UpdateMedicine(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMedicineOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid medicine ID",
		})
	}

	var req MedicineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid request data",
		})
	}

	var medicine model.Medicine
	if err := database.GetDB().First(&medicine, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"message": "Medicine not found",
		})
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		medicine.Name = name
	}
	if req.SupplierID != 0 {
		var supplier model.Supplier
		if err := database.GetDB().First(&supplier, req.SupplierID).Error; err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "Supplier not found",
			})
		}
		medicine.SupplierID = req.SupplierID
	}
	if req.Barcode != "" {
		medicine.Barcode = req.Barcode
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := database.GetDB().Save(&medicine).Error; err != nil {
		log.Error("Failed to update medicine", zap.Uint64("medicine_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to update medicine",
		})
	}

	database.GetDB().Preload("Supplier").First(&medicine, medicine.ID)

	log.Info("Medicine updated", zap.Uint("id", medicine.ID), zap.String("name", medicine.Name))
	return c.JSON(http.StatusOK, medicine)
}

// DeleteMedicine archives a medicine. Items on past requirement lists keep
// referencing it; list and report rendering skip unresolvable references.
func DeleteMedicine(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMedicineOperation("delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid medicine ID",
		})
	}

	var medicine model.Medicine
	if err := database.GetDB().First(&medicine, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"message": "Medicine not found",
		})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	medicine.Status = model.StatusArchived
	if err := database.GetDB().Save(&medicine).Error; err != nil {
		log.Error("Failed to archive medicine", zap.Uint64("medicine_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Failed to delete medicine",
		})
	}

	log.Info("Medicine archived", zap.Uint("id", medicine.ID), zap.String("name", medicine.Name))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Medicine removed",
	})
}
