package handler

import (
	"net/http"
	"time"

	"lottopos/internal/apierror"
	"lottopos/internal/dto"
	"lottopos/internal/model"
	"lottopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BooksHandler struct {
	svc      service.BookService
	salesSvc service.SalesEntryService
}

func NewBooksHandler(svc service.BookService, salesSvc service.SalesEntryService) *BooksHandler {
	return &BooksHandler{svc: svc, salesSvc: salesSvc}
}

func bookToResponse(b *model.Book) dto.BookResponse {
	resp := dto.BookResponse{
		ID:            b.ID.String(),
		GameID:        b.GameID.String(),
		BookNumber:    b.BookNumber,
		TicketOrder:   string(b.TicketOrder),
		CurrentTicket: b.CurrentTicket,
		IsActive:      b.IsActive,
	}
	if b.Game != nil {
		resp.GameNumber = b.Game.GameNumber
		resp.GameName = b.Game.Name
		resp.TotalTickets = b.Game.TotalTickets
		resp.TicketPrice = b.Game.Price.Decimal()
	}
	if b.ActivatedAt != nil {
		s := b.ActivatedAt.Format(time.RFC3339)
		resp.ActivatedAt = &s
	}
	if b.FinishedAt != nil {
		s := b.FinishedAt.Format(time.RFC3339)
		resp.FinishedAt = &s
	}
	return resp
}

// Add godoc
// @Summary      Add books in batch
// @Description  Registers a delivery of ticket pads; failures are reported per entry.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AddBooksRequest true "Books to add"
// @Success      201  {object} dto.AddBooksResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/books [post]
func (h *BooksHandler) Add(c *gin.Context) {
	var req dto.AddBooksRequest
	if !bindAndValidate(c, &req) {
		return
	}
	created, errs, err := h.svc.AddBooks(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.AddBooksResponse{Created: make([]dto.BookResponse, len(created)), Errors: errs}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	for i := range created {
		resp.Created[i] = bookToResponse(&created[i])
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        active query bool false "Only active books"
// @Success      200 {array} dto.BookResponse
// @Router       /v1/books [get]
func (h *BooksHandler) List(c *gin.Context) {
	var (
		books []model.Book
		err   error
	)
	if c.Query("active") == "true" {
		books, err = h.salesSvc.ActiveBooks(c.Request.Context())
	} else {
		books, err = h.svc.ListBooks(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.BookResponse, len(books))
	for i := range books {
		resp[i] = bookToResponse(&books[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Book UUID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/books/{id} [get]
func (h *BooksHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	book, err := h.svc.GetBook(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(book))
}

// Scan godoc
// @Summary      Resolve a scanned book
// @Description  Looks up a book by the game/book numbers on the pad barcode, creating and activating it on first scan.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ScanBookRequest true "Scanned numbers"
// @Success      200  {object} dto.BookResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/books/scan [post]
func (h *BooksHandler) Scan(c *gin.Context) {
	var req dto.ScanBookRequest
	if !bindAndValidate(c, &req) {
		return
	}
	book, err := h.salesSvc.GetOrCreateBookForSale(c.Request.Context(), req.GameNumber, req.BookNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(book))
}

// Activate godoc
// @Summary      Activate book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Book UUID"
// @Success      200 {object} dto.BookResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/books/{id}/activate [patch]
func (h *BooksHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	book, err := h.svc.Activate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(book))
}

// Deactivate godoc
// @Summary      Deactivate book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Book UUID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/books/{id}/deactivate [patch]
func (h *BooksHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	book, err := h.svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(book))
}

// Edit godoc
// @Summary      Edit book
// @Description  Pad number is freely editable; ticket order only while the book has no sales entries.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Book UUID"
// @Param        body body dto.EditBookRequest true "Fields to edit"
// @Success      200  {object} dto.BookResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/books/{id} [put]
func (h *BooksHandler) Edit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.EditBookRequest
	if !bindAndValidate(c, &req) {
		return
	}
	book, err := h.svc.Edit(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(book))
}

// Delete godoc
// @Summary      Delete book
// @Description  Only inactive books without sales entries can be deleted.
// @Tags         books
// @Security     BearerAuth
// @Param        id path string true "Book UUID"
// @Success      204
// @Failure      422 {object} apierror.APIError
// @Router       /v1/books/{id} [delete]
func (h *BooksHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
