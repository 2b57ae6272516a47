package infra

// Shifts-summary PDF generation using go-pdf/fpdf. One row per settlement with
// a totals line, A4 landscape. The output file is saved under storagePath.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lottopos/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateShiftReportPDF renders a shifts-summary report for the given period.
// Returns the absolute path to the generated file.
func GenerateShiftReportPDF(report *dto.ShiftReportResponse, startDate, endDate, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("shift_report_%s_%s_%d.pdf", startDate, endDate, time.Now().Unix())
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Shift Settlement Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%s to %s", startDate, endDate), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	headers := []string{"Submitted", "User", "Kind", "Online Sales", "Online Payouts",
		"Instant Payouts", "Tickets", "Instant Value", "Drawer", "Difference"}
	widths := []float64{0.13, 0.09, 0.09, 0.10, 0.10, 0.10, 0.07, 0.10, 0.11, 0.11}

	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range headers {
		align := "R"
		if i < 3 {
			align = "L"
		}
		pdf.CellFormat(contentW*widths[i], 6, h, "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, row := range report.Rows {
		submitted := row.SubmittedAt
		if t, err := time.Parse(time.RFC3339, row.SubmittedAt); err == nil {
			submitted = t.Format("01/02 15:04")
		}
		cells := []string{
			submitted,
			row.Username,
			row.Kind,
			"$" + row.DeltaOnlineSales.StringFixed(2),
			"$" + row.DeltaOnlinePayouts.StringFixed(2),
			"$" + row.DeltaInstantPayouts.StringFixed(2),
			fmt.Sprintf("%d", row.InstantTicketsSold),
			"$" + row.InstantValue.StringFixed(2),
			"$" + row.DrawerValue.StringFixed(2),
			"$" + row.DrawerDifference.StringFixed(2),
		}
		for i, cell := range cells {
			align := "R"
			if i < 3 {
				align = "L"
			}
			pdf.CellFormat(contentW*widths[i], 5, cell, "", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 8)
	totals := []string{
		"TOTAL", "", "",
		"$" + report.Totals.DeltaOnlineSales.StringFixed(2),
		"$" + report.Totals.DeltaOnlinePayouts.StringFixed(2),
		"$" + report.Totals.DeltaInstantPayouts.StringFixed(2),
		fmt.Sprintf("%d", report.Totals.InstantTicketsSold),
		"$" + report.Totals.InstantValue.StringFixed(2),
		"$" + report.Totals.DrawerValue.StringFixed(2),
		"$" + report.Totals.DrawerDifference.StringFixed(2),
	}
	for i, cell := range totals {
		align := "R"
		if i < 3 {
			align = "L"
		}
		pdf.CellFormat(contentW*widths[i], 6, cell, "T", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
