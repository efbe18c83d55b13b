package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the global top 10, highest score first, ties
// broken by earliest submission. Public, no auth.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	top, err := h.Scores.TopN(c.Request.Context(), 10)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, top)
}

// GetPlayerScores returns all of one player's entries. Public.
func (h *Handler) GetPlayerScores(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
		return
	}

	scores, err := h.Scores.ByPlayer(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

type SubmitScoreRequest struct {
	SessionID string `json:"sessionId"`

	// Legacy clients post their locally computed results. They are
	// accepted for wire compatibility and ignored: the server re-derives
	// everything from the session ledger.
	Score        int    `json:"score"`
	Accuracy     int    `json:"accuracy"`
	Difficulty   string `json:"difficulty"`
	Product      string `json:"product"`
	TimeToFinish int    `json:"timeToFinish"`
}

// SubmitScore records a leaderboard entry for a completed session.
func (h *Handler) SubmitScore(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	score, err := h.Game.RecordScore(c.Request.Context(), playerID, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "score submitted", "score": score})
}

// ClearLeaderboard is the privileged bulk clear.
func (h *Handler) ClearLeaderboard(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.Scores.DeleteAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "leaderboard cleared"})
}
