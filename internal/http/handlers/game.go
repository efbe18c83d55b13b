package handlers

import (
	"errors"
	"net/http"

	"build_a_bite/internal/game"

	"github.com/gin-gonic/gin"
)

type StartGameRequest struct {
	Difficulty string `json:"difficulty"`
	Product    string `json:"product"`
}

// StartGame creates a session and launches its round. The response is the
// preview payload: correct order, durations and category pools.
func (h *Handler) StartGame(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Difficulty == "" || req.Product == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing difficulty or product"})
		return
	}

	started, err := h.Game.StartRound(c.Request.Context(), playerID, req.Difficulty, req.Product)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId":    started.SessionID,
		"message":      "session started",
		"product":      started.Product,
		"difficulty":   started.Difficulty,
		"settings":     started.Settings,
		"correctOrder": started.CorrectOrder,
		"pools":        started.Pools,
	})
}

// GetSession returns a session to its owner.
func (h *Handler) GetSession(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.Game.GetSession(c.Request.Context(), c.Param("id"), playerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type AddStepRequest struct {
	Step string `json:"step"`
}

// AddStep appends one step to the session's ledger. Duplicates and late
// submissions are reported without failing the round.
func (h *Handler) AddStep(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddStepRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Step == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step is required"})
		return
	}

	steps, err := h.Game.AddStep(c.Request.Context(), c.Param("id"), playerID, req.Step)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrStepAlreadySelected):
			c.JSON(http.StatusOK, gin.H{"message": "step already selected", "duplicate": true})
		case errors.Is(err, game.ErrPlayNotActive):
			c.JSON(http.StatusOK, gin.H{"message": "play phase is not active", "expired": true})
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "step added", "steps": steps})
}

// EndSession is the explicit "complete mission" trigger. The score is
// computed server-side from the session's own ledger.
func (h *Handler) EndSession(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	outcome, err := h.Game.CompleteRound(c.Request.Context(), c.Param("id"), playerID)
	if err != nil {
		if errors.Is(err, game.ErrAlreadyEvaluated) || errors.Is(err, game.ErrPlayNotActive) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session ended", "result": outcome})
}
