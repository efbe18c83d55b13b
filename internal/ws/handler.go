package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"build_a_bite/internal/game"
	"build_a_bite/internal/logger"
	"build_a_bite/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RoundSource hands out the live round for a session, owner only.
type RoundSource interface {
	Round(ctx context.Context, sessionID string, requesterID int64) (*game.Round, error)
}

// stateMessage is the initial snapshot sent on connect, before the
// tick/phase/result stream.
type stateMessage struct {
	Type      string      `json:"type"`
	Phase     game.Phase  `json:"phase"`
	Remaining int         `json:"remaining"`
	Steps     []string    `json:"steps"`
	Pools     *game.Pools `json:"pools,omitempty"`
}

// HandleRoundFeed streams countdown and phase events for the caller's own
// active round. Auth is a token query param since browsers cannot set
// headers on websocket dials.
func HandleRoundFeed(rounds RoundSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		claims, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		round, err := rounds.Round(c.Request.Context(), c.Param("id"), claims.PlayerID)
		if err != nil {
			if errors.Is(err, service.ErrForbidden) {
				c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "no active round"})
			return
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := NewClient(claims.PlayerID, conn)
		go stream(client, round)
		client.Run()
	}
}

// stream forwards round events to the client until the round is
// evaluated or the connection drops.
func stream(client *Client, round *game.Round) {
	defer close(client.Send)

	events, unsubscribe := round.Subscribe()
	defer unsubscribe()

	phase, remaining, steps, pools := round.Snapshot()
	snapshot := stateMessage{Type: "state", Phase: phase, Remaining: remaining, Steps: steps}
	if phase == game.PhasePlay {
		snapshot.Pools = &pools
	}
	if !send(client, snapshot) {
		return
	}
	if phase == game.PhaseEvaluated {
		return
	}

	for {
		select {
		case <-client.Done:
			return
		case ev := <-events:
			if !send(client, ev) {
				return
			}
			if ev.Type == "result" {
				return
			}
		}
	}
}

func send(client *Client, v any) bool {
	msg, err := json.Marshal(v)
	if err != nil {
		return false
	}
	select {
	case client.Send <- msg:
		return true
	case <-client.Done:
		return false
	}
}
