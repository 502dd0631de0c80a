package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"nexus-ems-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows(n int) []entity.Employee {
	rows := make([]entity.Employee, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, entity.Employee{
			FullName:   fmt.Sprintf("Employee %02d with a rather long display name", i),
			Email:      fmt.Sprintf("employee%02d@nexus.example.com", i),
			Role:       "Engineer",
			Department: entity.DepartmentEngineering,
			JoinDate:   time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
			Salary:     90000,
			Status:     entity.EmployeeStatusActive,
		})
	}
	return rows
}

func TestEmployeeReport_RendersPDF(t *testing.T) {
	out, err := EmployeeReport(sampleRows(3), time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestEmployeeReport_PaginatesLongLists(t *testing.T) {
	short, err := EmployeeReport(sampleRows(1), time.Now())
	require.NoError(t, err)
	long, err := EmployeeReport(sampleRows(120), time.Now())
	require.NoError(t, err)

	assert.Greater(t, len(long), len(short))
}

func TestEmployeeReport_Empty(t *testing.T) {
	out, err := EmployeeReport(nil, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestEmployeeReport_EncodesAccentedNames(t *testing.T) {
	compressStreams = false
	defer func() { compressStreams = true }()

	rows := sampleRows(1)
	rows[0].FullName = "José Müller"
	rows[0].Role = "Señor Analyst"
	out, err := EmployeeReport(rows, time.Now())
	require.NoError(t, err)

	// cp1252: é = 0xE9, ü = 0xFC, ñ = 0xF1
	assert.True(t, bytes.Contains(out, []byte("Jos\xe9 M\xfcller")))
	assert.True(t, bytes.Contains(out, []byte("Se\xf1or Analyst")))
	// raw UTF-8 bytes would render as "JosÃ©"
	assert.False(t, bytes.Contains(out, []byte("José")))
}

func TestFit_TruncatesEncodedText(t *testing.T) {
	pdf, tr := newDocument()
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 8)

	short := tr("Zoë")
	assert.Equal(t, "Zo\xeb", fit(pdf, short, 40))

	long := fit(pdf, tr("Zoë "+strings.Repeat("Ångström", 10)), 30)
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(long), 30.0)
	assert.True(t, strings.HasPrefix(long, "Zo\xeb"))
}

func TestBlankForm(t *testing.T) {
	out, err := BlankForm()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestSpreadsheet(t *testing.T) {
	out, err := Spreadsheet(sampleRows(2))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Full Name", header)

	email, err := f.GetCellValue(sheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "employee01@nexus.example.com", email)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
