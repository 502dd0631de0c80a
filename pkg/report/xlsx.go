package report

import (
	"bytes"
	"fmt"

	"nexus-ems-be/internal/entity"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Employees"

var sheetHeaders = []string{"Full Name", "Email", "Department", "Role", "Join Date", "Salary", "Status"}

// Spreadsheet writes rows to a single-sheet workbook with a bold header.
func Spreadsheet(rows []entity.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range sheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(sheetHeaders), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
		return nil, err
	}

	for r, e := range rows {
		values := []interface{}{
			e.FullName,
			e.Email,
			string(e.Department),
			e.Role,
			e.JoinDate.Format(entity.JoinDateLayout),
			e.Salary,
			string(e.Status),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
