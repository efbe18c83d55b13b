package repository

import (
	"context"
	"errors"

	"build_a_bite/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrEmailExists = errors.New("email already exists")
)

type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM players WHERE email = $1)`, p.Email,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrEmailExists
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO players (name, email, password_hash, is_admin, is_guest)
		 VALUES ($1, $2, $3, $4, false)
		 RETURNING id, created_at`,
		p.Name, p.Email, p.PasswordHash, p.IsAdmin,
	).Scan(&p.ID, &p.CreatedAt)
}

// CreateGuest stores a temporary guest account. Guests have no email or
// password; unique_name disambiguates display names.
func (r *PlayerRepository) CreateGuest(ctx context.Context, p *domain.Player) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO players (name, unique_name, is_admin, is_guest)
		 VALUES ($1, $2, false, true)
		 RETURNING id, created_at`,
		p.Name, p.UniqueName,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(email, ''), COALESCE(password_hash, ''), is_admin, is_guest, COALESCE(unique_name, ''), created_at
		 FROM players
		 WHERE id = $1`,
		id,
	)
	return scanPlayer(row)
}

func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (*domain.Player, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(email, ''), COALESCE(password_hash, ''), is_admin, is_guest, COALESCE(unique_name, ''), created_at
		 FROM players
		 WHERE email = $1`,
		email,
	)
	return scanPlayer(row)
}

// List returns all registered players without password hashes (admin view).
func (r *PlayerRepository) List(ctx context.Context) ([]*domain.Player, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(email, ''), is_admin, is_guest, COALESCE(unique_name, ''), created_at
		 FROM players
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.IsAdmin, &p.IsGuest, &p.UniqueName, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.IsAdmin, &p.IsGuest, &p.UniqueName, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
