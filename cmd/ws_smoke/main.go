package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"build_a_bite/internal/db"
	"build_a_bite/internal/domain"
	"build_a_bite/internal/repository"
	"build_a_bite/internal/service"
)

// Smoke test for the live round feed: creates a guest, starts a beginner
// round over HTTP and watches the websocket stream until the result event.
// Expects a running server plus DATABASE_URL and JWT_SECRET.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	players := repository.NewPlayerRepository(pool)
	products := repository.NewProductRepository(pool)
	ctx := context.Background()

	guest := &domain.Player{
		Name:       "smoke",
		UniqueName: "smoke_" + uuid.NewString()[:8],
	}
	if err := players.CreateGuest(ctx, guest); err != nil {
		log.Fatalf("create guest: %v", err)
	}

	catalog, err := products.List(ctx)
	if err != nil || len(catalog) == 0 {
		log.Fatalf("need at least one seeded product (run cmd/seed_products): %v", err)
	}

	service.InitJWT()
	token, err := service.GenerateJWT(guest.ID, true)
	if err != nil {
		log.Fatalf("gen token: %v", err)
	}

	// start a round over HTTP
	body, _ := json.Marshal(map[string]string{
		"product":    catalog[0].Name,
		"difficulty": "beginner",
	})
	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("http://127.0.0.1:%s/api/game/start", port), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("start round: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("start round: unexpected status %d", resp.StatusCode)
	}

	var started struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		log.Fatalf("decode start response: %v", err)
	}
	log.Printf("round started session=%s", started.SessionID)

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws/game/%s?token=%s", port, started.SessionID, token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial feed: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(3 * time.Minute)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("read feed: %v", err)
		}
		log.Printf("feed: %s", string(msg))

		var obj map[string]any
		_ = json.Unmarshal(msg, &obj)
		if t, ok := obj["type"].(string); ok && t == "result" {
			log.Println("smoke test finished")
			return
		}
	}
	log.Fatal("no result event before deadline")
}
