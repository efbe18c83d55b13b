package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"build_a_bite/internal/domain"
	"build_a_bite/internal/repository"
	"build_a_bite/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields required"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	player := &domain.Player{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.Players.Create(c.Request.Context(), player); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "player registered"})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	player, err := h.Players.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := service.GenerateJWT(player.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"player": gin.H{
			"id":       player.ID,
			"name":     player.Name,
			"email":    player.Email,
			"is_admin": player.IsAdmin,
		},
	})
}

type GuestRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
}

// Guest issues a temporary account with a short-lived token.
func (h *Handler) Guest(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "display name is required"})
		return
	}

	player := &domain.Player{
		Name:       req.DisplayName,
		UniqueName: fmt.Sprintf("guest_%s", uuid.NewString()[:8]),
		IsGuest:    true,
	}
	if err := h.Players.CreateGuest(c.Request.Context(), player); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	token, err := service.GenerateJWT(player.ID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"guest": gin.H{
			"id":          player.ID,
			"uniqueName":  player.UniqueName,
			"displayName": player.Name,
			"guest":       true,
		},
	})
}

// Profile returns the authenticated caller's account.
func (h *Handler) Profile(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	player, err := h.Players.GetByID(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	if player.IsGuest {
		c.JSON(http.StatusOK, gin.H{
			"id":          player.ID,
			"displayName": player.Name,
			"uniqueName":  player.UniqueName,
			"guest":       true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       player.ID,
		"name":     player.Name,
		"email":    player.Email,
		"is_admin": player.IsAdmin,
		"guest":    false,
	})
}
