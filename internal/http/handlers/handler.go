package handlers

import (
	"errors"
	"net/http"

	"build_a_bite/internal/game"
	"build_a_bite/internal/repository"
	"build_a_bite/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	Players  *repository.PlayerRepository
	Products *repository.ProductRepository
	Sessions *repository.SessionRepository
	Scores   *repository.ScoreRepository
	Game     *service.GameService
}

func NewHandler(db *pgxpool.Pool, gameSvc *service.GameService) *Handler {
	return &Handler{
		DB:       db,
		Players:  repository.NewPlayerRepository(db),
		Products: repository.NewProductRepository(db),
		Sessions: repository.NewSessionRepository(db),
		Scores:   repository.NewScoreRepository(db),
		Game:     gameSvc,
	}
}

// getPlayerID extracts the authenticated player id set by the JWT
// middleware.
func getPlayerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get("player_id")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, true
	case float64:
		return int64(id), true
	default:
		return 0, false
	}
}

// requireAdmin writes a 403 and returns false unless the caller is a
// non-guest admin.
func (h *Handler) requireAdmin(c *gin.Context) bool {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return false
	}

	player, err := h.Players.GetByID(c.Request.Context(), playerID)
	if err != nil || !player.IsAdmin || player.IsGuest {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return false
	}
	return true
}

// respondError maps domain errors onto the API's status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, game.ErrInvalidDifficulty),
		errors.Is(err, service.ErrAlreadyRecorded):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrAlreadyCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "session already completed"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, game.ErrRoundNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
