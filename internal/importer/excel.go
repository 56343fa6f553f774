package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"medreq-service/internal/model"
	"medreq-service/prometheus"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Summary reports the outcome of one spreadsheet import
type Summary struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// Importer loads suppliers and medicines from xlsx workbooks. Rows that
// are invalid or already present are skipped, never fatal.
type Importer struct {
	db *gorm.DB
}

// New creates an importer over the given database
func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// readSheet returns the header row and data rows of the first sheet
func readSheet(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

// cell returns the trimmed value under the named header, matching the
// header case-insensitively
func cell(headers, row []string, name string) string {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
	}
	return ""
}

// Suppliers imports rows with "Name" and "CR No" columns
func (im *Importer) Suppliers(r io.Reader) (*Summary, error) {
	headers, rows, err := readSheet(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Total: len(rows), Errors: []string{}}
	for i, row := range rows {
		// Spreadsheet row numbers are 1-based and include the header
		rowNo := i + 2

		name := cell(headers, row, "Name")
		crNo := cell(headers, row, "CR No")
		if name == "" || crNo == "" {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: Missing Name or CR No", rowNo))
			summary.Skipped++
			prometheus.RecordImportRow("supplier", "error")
			continue
		}

		var count int64
		if err := im.db.Model(&model.Supplier{}).
			Where("LOWER(name) = LOWER(?) OR cr_no = ?", name, crNo).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			summary.Skipped++
			prometheus.RecordImportRow("supplier", "skipped")
			continue
		}

		if err := im.db.Create(&model.Supplier{Name: name, CRNo: crNo}).Error; err != nil {
			return nil, err
		}
		summary.Imported++
		prometheus.RecordImportRow("supplier", "imported")
	}
	return summary, nil
}

// Medicines imports rows with "Medicine Name" and "Supplier Name" columns,
// resolving each supplier by case-insensitive name
func (im *Importer) Medicines(r io.Reader) (*Summary, error) {
	headers, rows, err := readSheet(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Total: len(rows), Errors: []string{}}
	for i, row := range rows {
		rowNo := i + 2

		medicineName := cell(headers, row, "Medicine Name")
		supplierName := cell(headers, row, "Supplier Name")
		if medicineName == "" || supplierName == "" {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: Missing Medicine Name or Supplier Name", rowNo))
			summary.Skipped++
			prometheus.RecordImportRow("medicine", "error")
			continue
		}

		var supplier model.Supplier
		err := im.db.Where("LOWER(name) = LOWER(?)", supplierName).First(&supplier).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: Supplier %q not found", rowNo, supplierName))
			summary.Skipped++
			prometheus.RecordImportRow("medicine", "error")
			continue
		}
		if err != nil {
			return nil, err
		}

		var count int64
		if err := im.db.Model(&model.Medicine{}).
			Where("LOWER(name) = LOWER(?) AND supplier_id = ?", medicineName, supplier.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			summary.Skipped++
			prometheus.RecordImportRow("medicine", "skipped")
			continue
		}

		if err := im.db.Create(&model.Medicine{Name: medicineName, SupplierID: supplier.ID}).Error; err != nil {
			return nil, err
		}
		summary.Imported++
		prometheus.RecordImportRow("medicine", "imported")
	}
	return summary, nil
}
