package render

import (
	"bytes"
	"fmt"

	"steeple/internal/application/projections"

	"github.com/go-pdf/fpdf"
)

const pdfDateFormat = "2006-01-02"

// PDFRenderer produces programme report documents. The zero value is ready
// to use.
type PDFRenderer struct{}

// RenderProgrammeReport renders a report to PDF bytes. The suggested
// filename is "<Slug(name)>_report.pdf".
func (PDFRenderer) RenderProgrammeReport(report projections.ProgrammeReport) ([]byte, error) {
	p := report.Programme

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(p.Name, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, p.Name, "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, fmt.Sprintf("Type: %s", p.Type), "", 1, "L", false, 0, "")
	dates := p.StartDate.Format(pdfDateFormat)
	if !p.EndDate.IsZero() {
		dates += " to " + p.EndDate.Format(pdfDateFormat)
	}
	doc.CellFormat(0, 7, fmt.Sprintf("Dates: %s", dates), "", 1, "L", false, 0, "")
	if p.Location != "" {
		doc.CellFormat(0, 7, fmt.Sprintf("Location: %s", p.Location), "", 1, "L", false, 0, "")
	}
	if p.Coordinator != "" {
		doc.CellFormat(0, 7, fmt.Sprintf("Coordinator: %s", p.Coordinator), "", 1, "L", false, 0, "")
	}
	doc.CellFormat(0, 7, fmt.Sprintf("Roster: %d members", p.CurrentAttendees), "", 1, "L", false, 0, "")
	if p.Description != "" {
		doc.Ln(3)
		doc.MultiCell(0, 6, p.Description, "", "L", false)
	}

	if len(report.Attendance) > 0 {
		doc.Ln(5)
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 9, fmt.Sprintf("Attendance (%d present, %d absent)", report.PresentCount, report.AbsentCount), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(35, 7, "Date", "B", 0, "L", false, 0, "")
		doc.CellFormat(60, 7, "Member", "B", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, "Status", "B", 0, "L", false, 0, "")
		doc.CellFormat(0, 7, "Notes", "B", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		for _, r := range report.Attendance {
			status := "Absent"
			if r.IsPresent {
				status = "Present"
			}
			doc.CellFormat(35, 6, r.Date.Format(pdfDateFormat), "", 0, "L", false, 0, "")
			doc.CellFormat(60, 6, r.MemberID, "", 0, "L", false, 0, "")
			doc.CellFormat(25, 6, status, "", 0, "L", false, 0, "")
			doc.CellFormat(0, 6, r.Notes, "", 1, "L", false, 0, "")
		}
	}

	if len(report.Resources) > 0 {
		doc.Ln(5)
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 9, "Resources", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(60, 7, "Name", "B", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, "Quantity", "B", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, "Cost", "B", 0, "L", false, 0, "")
		doc.CellFormat(0, 7, "Status", "B", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		for _, r := range report.Resources {
			doc.CellFormat(60, 6, r.Name, "", 0, "L", false, 0, "")
			doc.CellFormat(25, 6, fmt.Sprintf("%d %s", r.Quantity, r.Unit), "", 0, "L", false, 0, "")
			doc.CellFormat(30, 6, fmt.Sprintf("$%.2f", r.Cost), "", 0, "L", false, 0, "")
			doc.CellFormat(0, 6, r.Status, "", 1, "L", false, 0, "")
		}
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(0, 7, fmt.Sprintf("Total cost: $%.2f", report.TotalCost), "", 1, "L", false, 0, "")
	}

	if len(report.KPIs) > 0 {
		doc.Ln(5)
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 9, "KPIs", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		for _, k := range report.KPIs {
			doc.CellFormat(0, 6, fmt.Sprintf("%s: %.1f / %.1f %s (%.0f%%)", k.Name, k.Current, k.Target, k.Unit, k.ProgressPercent()), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
