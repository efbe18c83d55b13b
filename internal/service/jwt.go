package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

const (
	playerTokenTTL = 24 * time.Hour
	// guest accounts are temporary
	guestTokenTTL = 12 * time.Hour
)

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// TokenClaims is what the middleware needs from a parsed token.
type TokenClaims struct {
	PlayerID int64
	Guest    bool
}

func GenerateJWT(playerID int64, guest bool) (string, error) {
	now := time.Now().Unix()
	ttl := playerTokenTTL
	if guest {
		ttl = guestTokenTTL
	}

	claims := jwt.MapClaims{
		"player_id": playerID,
		"guest":     guest,
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       now,
		"nbf":       now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseJWT(tokenString string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok {
		if int64(exp) < now {
			return TokenClaims{}, errors.New("token expired")
		}
	}
	if nbf, ok := claims["nbf"].(float64); ok {
		if int64(nbf) > now {
			return TokenClaims{}, errors.New("token not valid yet")
		}
	}

	playerID, ok := claims["player_id"].(float64)
	if !ok {
		return TokenClaims{}, errors.New("player_id not found")
	}

	guest, _ := claims["guest"].(bool)
	return TokenClaims{PlayerID: int64(playerID), Guest: guest}, nil
}
