package handler

import (
	"net/http"

	"lottopos/internal/apierror"
	"lottopos/internal/dto"
	"lottopos/internal/middleware"
	"lottopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShiftsHandler struct{ svc service.ShiftService }

func NewShiftsHandler(svc service.ShiftService) *ShiftsHandler { return &ShiftsHandler{svc: svc} }

// Submit godoc
// @Summary      Submit shift settlement
// @Description  Settles one cashier shift: computes same-day deltas from the reported cumulative totals, applies all book observations, reconciles the drawer. Atomic; item failures are reported per entry without blocking the shift.
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SubmitShiftRequest true "Shift settlement"
// @Success      201  {object} dto.SubmitShiftResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/shifts [post]
func (h *ShiftsHandler) Submit(c *gin.Context) {
	var req dto.SubmitShiftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.SubmitShift(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// FullBookSale godoc
// @Summary      Declare whole books sold
// @Description  Admin operation: marks the listed books fully sold in one settlement with a declared-balanced drawer.
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FullBookSaleRequest true "Books to settle"
// @Success      201  {object} dto.SubmitShiftResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/shifts/full-book-sale [post]
func (h *ShiftsHandler) FullBookSale(c *gin.Context) {
	var req dto.FullBookSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	adminID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.SubmitFullBookSale(c.Request.Context(), adminID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get shift
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Shift UUID"
// @Success      200 {object} dto.ShiftResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/shifts/{id} [get]
func (h *ShiftsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetShift(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
