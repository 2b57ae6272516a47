package handler

import (
	"net/http"

	"lottopos/internal/apierror"
	"lottopos/internal/dto"
	"lottopos/internal/service"
	"lottopos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportsHandler struct {
	svc        service.ReportService
	dispatcher *worker.Dispatcher
}

func NewReportsHandler(svc service.ReportService, dispatcher *worker.Dispatcher) *ReportsHandler {
	return &ReportsHandler{svc: svc, dispatcher: dispatcher}
}

// optionalUserID parses the user_id query parameter when present.
func optionalUserID(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid user_id"))
		return nil, false
	}
	return &id, true
}

// Shifts godoc
// @Summary      Shifts summary report
// @Description  Per-shift deltas, instant sales and drawer figures over an inclusive date range, with totals.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string true  "YYYY-MM-DD"
// @Param        end_date   query string true  "YYYY-MM-DD"
// @Param        user_id    query string false "Filter by user UUID"
// @Success      200 {object} dto.ShiftReportResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/reports/shifts [get]
func (h *ReportsHandler) Shifts(c *gin.Context) {
	userID, ok := optionalUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ShiftReport(c.Request.Context(), c.Query("start_date"), c.Query("end_date"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sales godoc
// @Summary      Sales entries report
// @Description  Every ticket-range sale recorded in the period, with per-period totals.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string true  "YYYY-MM-DD"
// @Param        end_date   query string true  "YYYY-MM-DD"
// @Param        user_id    query string false "Filter by user UUID"
// @Success      200 {object} dto.SalesReportResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/reports/sales [get]
func (h *ReportsHandler) Sales(c *gin.Context) {
	userID, ok := optionalUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.SalesReport(c.Request.Context(), c.Query("start_date"), c.Query("end_date"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Email godoc
// @Summary      Email a shifts-summary PDF
// @Description  Generates the PDF asynchronously and mails it to the given address.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EmailReportRequest true "Recipient and date range"
// @Success      202  {object} map[string]string
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reports/email [post]
func (h *ReportsHandler) Email(c *gin.Context) {
	var req dto.EmailReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	payload := worker.ReportJobPayload{
		ToEmail:   req.ToEmail,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := h.dispatcher.EnqueueReport(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not enqueue report"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
