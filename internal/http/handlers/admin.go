package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAllPlayers lists every account, hashes excluded.
func (h *Handler) GetAllPlayers(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	players, err := h.Players.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

// GetAllAttempts lists recent game sessions across all players.
func (h *Handler) GetAllAttempts(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	sessions, err := h.Sessions.List(c.Request.Context(), 200)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// DownloadLeaderboard returns the full leaderboard for export.
func (h *Handler) DownloadLeaderboard(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	scores, err := h.Scores.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}
