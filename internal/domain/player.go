package domain

import "time"

type Player struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	IsGuest      bool      `db:"is_guest" json:"guest"`
	UniqueName   string    `db:"unique_name" json:"unique_name,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
