// Package report renders the workforce report and the blank enrollment
// form as PDF, plus a spreadsheet export of the same rows.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"nexus-ems-be/internal/entity"

	"github.com/go-pdf/fpdf"
)

const (
	EmployeeReportFilename = "Nexus_Employee_Report.pdf"
	BlankFormFilename      = "Nexus_Blank_Enrollment_Form.pdf"
	SpreadsheetFilename    = "Nexus_Employee_Report.xlsx"

	reportTitle    = "Nexus EMS Workforce Report"
	formTitle      = "EMPLOYEE ENROLLMENT FORM"
	formFooterText = "Official HR Document - Nexus Systems Corp"
)

// header fill, indigo
var headerRGB = [3]int{79, 70, 229}

// compressStreams is switched off in tests so page text can be inspected.
var compressStreams = true

// newDocument returns an A4 document and a translator from UTF-8 to the
// cp1252 encoding of the core fonts. Every string drawn on a page must go
// through the translator or accented names come out as mojibake.
func newDocument() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compressStreams)
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

type column struct {
	title string
	width float64
	value func(e entity.Employee) string
}

var reportColumns = []column{
	{"Full Name", 42, func(e entity.Employee) string { return e.FullName }},
	{"Email", 52, func(e entity.Employee) string { return e.Email }},
	{"Department", 26, func(e entity.Employee) string { return string(e.Department) }},
	{"Role", 30, func(e entity.Employee) string { return e.Role }},
	{"Join Date", 22, func(e entity.Employee) string { return e.JoinDate.Format(entity.JoinDateLayout) }},
	{"Status", 18, func(e entity.Employee) string { return string(e.Status) }},
}

// EmployeeReport renders every record in rows, in the given order, as a
// grid table under a title and generation timestamp.
func EmployeeReport(rows []entity.Employee, generatedAt time.Time) ([]byte, error) {
	pdf, tr := newDocument()
	pdf.SetTitle(reportTitle, true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d of {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(headerRGB[0], headerRGB[1], headerRGB[2])
	pdf.CellFormat(0, 10, tr(reportTitle), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, tr("Generated on: "+generatedAt.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total records: %d", len(rows))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(headerRGB[0], headerRGB[1], headerRGB[2])
		pdf.SetTextColor(255, 255, 255)
		for _, c := range reportColumns {
			pdf.CellFormat(c.width, 8, tr(c.title), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(30, 30, 30)
	}
	writeHeader()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, e := range rows {
		if pdf.GetY()+7 > pageHeight-bottom-15 {
			pdf.AddPage()
			writeHeader()
		}
		for _, c := range reportColumns {
			pdf.CellFormat(c.width, 7, fit(pdf, tr(c.value(e)), c.width-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

// BlankForm renders the printable enrollment template whose labels the
// scan extraction is tuned for.
func BlankForm() ([]byte, error) {
	pdf, tr := newDocument()
	pdf.SetTitle(formTitle, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(headerRGB[0], headerRGB[1], headerRGB[2])
	pdf.CellFormat(0, 14, tr(formTitle), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	labels := []string{
		"FULL NAME",
		"EMAIL ADDRESS",
		"JOB ROLE / TITLE",
		"DEPARTMENT",
		"ANNUAL SALARY",
		"JOIN DATE (YYYY-MM-DD)",
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	boxWidth := pageWidth - left - right

	pdf.SetDrawColor(150, 150, 150)
	for _, label := range labels {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(0, 6, tr(label), "", 1, "L", false, 0, "")
		pdf.Rect(left, pdf.GetY(), boxWidth, 14, "D")
		pdf.Ln(20)
	}

	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 10, tr(formFooterText), "", 0, "C", false, 0, "")

	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fit truncates s with an ellipsis so it stays inside a cell of width w.
// s is already cp1252, one byte per glyph.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	n := len(s)
	for n > 0 && pdf.GetStringWidth(s[:n]+"...") > w {
		n--
	}
	return strings.TrimSpace(s[:n]) + "..."
}
