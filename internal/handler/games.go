package handler

import (
	"net/http"
	"strconv"
	"time"

	"lottopos/internal/apierror"
	"lottopos/internal/dto"
	"lottopos/internal/model"
	"lottopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GamesHandler struct{ svc service.GameService }

func NewGamesHandler(svc service.GameService) *GamesHandler { return &GamesHandler{svc: svc} }

func gameToResponse(g *model.Game) dto.GameResponse {
	resp := dto.GameResponse{
		ID:           g.ID.String(),
		GameNumber:   g.GameNumber,
		Name:         g.Name,
		Price:        g.Price.Decimal(),
		TotalTickets: g.TotalTickets,
		TicketOrder:  string(g.DefaultTicketOrder),
		IsExpired:    g.IsExpired,
		CreatedAt:    g.CreatedAt.Format(time.RFC3339),
	}
	if g.ExpiredAt != nil {
		s := g.ExpiredAt.Format(time.RFC3339)
		resp.ExpiredAt = &s
	}
	return resp
}

// Create godoc
// @Summary      Create game
// @Description  Registers a scratch-ticket game in the catalogue.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateGameRequest true "Game definition"
// @Success      201  {object} dto.GameResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/games [post]
func (h *GamesHandler) Create(c *gin.Context) {
	var req dto.CreateGameRequest
	if !bindAndValidate(c, &req) {
		return
	}
	game, err := h.svc.CreateGame(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gameToResponse(game))
}

// List godoc
// @Summary      List games
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.GameResponse
// @Router       /v1/games [get]
func (h *GamesHandler) List(c *gin.Context) {
	games, err := h.svc.ListGames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.GameResponse, len(games))
	for i := range games {
		resp[i] = gameToResponse(&games[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game UUID"
// @Success      200 {object} dto.GameResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/games/{id} [get]
func (h *GamesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	game, err := h.svc.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameToResponse(game))
}

// Update godoc
// @Summary      Update game
// @Description  Name is always editable; price, ticket count and ticket order only while the game has no sales.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Game UUID"
// @Param        body body dto.UpdateGameRequest true "Fields to update"
// @Success      200  {object} dto.GameResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/games/{id} [put]
func (h *GamesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateGameRequest
	if !bindAndValidate(c, &req) {
		return
	}
	game, err := h.svc.UpdateGame(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameToResponse(game))
}

// Expire godoc
// @Summary      Expire game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game UUID"
// @Success      200 {object} dto.GameResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/games/{id}/expire [patch]
func (h *GamesHandler) Expire(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	game, err := h.svc.ExpireGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameToResponse(game))
}

// Reactivate godoc
// @Summary      Reactivate expired game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game UUID"
// @Success      200 {object} dto.GameResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/games/{id}/reactivate [patch]
func (h *GamesHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	game, err := h.svc.ReactivateGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameToResponse(game))
}

// PriceCheck godoc
// @Summary      Look up a game's price by scanned game number
// @Description  Public endpoint used at the counter; cached.
// @Tags         games
// @Produce      json
// @Param        number path int true "4-digit game number"
// @Success      200 {object} dto.PriceCheckResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/price/{number} [get]
func (h *GamesHandler) PriceCheck(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid game number"))
		return
	}
	resp, err := h.svc.PriceCheck(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
