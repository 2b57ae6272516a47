package worker

// Processes report jobs from QueueReports: renders the shifts-summary PDF and
// mails it to the requested address via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"lottopos/internal/infra"
	"lottopos/internal/service"

	"github.com/rs/zerolog/log"
)

// ReportJobPayload is the job envelope sent to QueueReports.
type ReportJobPayload struct {
	ToEmail   string `json:"to_email"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ReportWorker generates and emails shift reports.
type ReportWorker struct {
	reports     service.ReportService
	mailer      *infra.Mailer
	storagePath string
}

func NewReportWorker(reports service.ReportService, mailer *infra.Mailer, storagePath string) *ReportWorker {
	return &ReportWorker{reports: reports, mailer: mailer, storagePath: storagePath}
}

func (w *ReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("report_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		return fmt.Errorf("report_worker: empty to_email")
	}

	report, err := w.reports.ShiftReport(ctx, payload.StartDate, payload.EndDate, nil)
	if err != nil {
		return fmt.Errorf("report_worker: build report: %w", err)
	}

	pdfPath, err := infra.GenerateShiftReportPDF(report, payload.StartDate, payload.EndDate, w.storagePath)
	if err != nil {
		return fmt.Errorf("report_worker: generate PDF: %w", err)
	}

	subject := fmt.Sprintf("Shift report %s to %s", payload.StartDate, payload.EndDate)
	body := fmt.Sprintf("Attached: shift settlement report covering %s to %s.", payload.StartDate, payload.EndDate)
	if err := w.mailer.SendReport(payload.ToEmail, subject, body, pdfPath); err != nil {
		return fmt.Errorf("report_worker: send email: %w", err)
	}

	log.Info().Str("to", payload.ToEmail).Str("pdf", pdfPath).Msg("report_worker: report sent")
	return nil
}
