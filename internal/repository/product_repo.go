package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"build_a_bite/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ingredients, processes, equipment, err := marshalItemPools(p)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO products (name, image, ingredients, processes, equipment, correct_order)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		p.Name, p.Image, ingredients, processes, equipment, p.CorrectOrder,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	ingredients, processes, equipment, err := marshalItemPools(p)
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx,
		`UPDATE products
		 SET name = $2, image = $3, ingredients = $4, processes = $5, equipment = $6, correct_order = $7
		 WHERE id = $1`,
		p.ID, p.Name, p.Image, ingredients, processes, equipment, p.CorrectOrder,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products`)
	return err
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(image, ''), ingredients, processes, equipment, COALESCE(correct_order, '{}'), created_at
		 FROM products
		 WHERE id = $1`,
		id,
	)
	return scanProduct(row)
}

func (r *ProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(image, ''), ingredients, processes, equipment, COALESCE(correct_order, '{}'), created_at
		 FROM products
		 WHERE name = $1`,
		name,
	)
	return scanProduct(row)
}

// Resolve looks a product up by numeric id first, falling back to name
// (the catalog API historically accepted either).
func (r *ProductRepository) Resolve(ctx context.Context, ref string) (*domain.Product, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if p, err := r.GetByID(ctx, id); err == nil {
			return p, nil
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return r.GetByName(ctx, ref)
}

// List returns name and image for the catalog overview.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(image, '') FROM products ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Image); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p                                  domain.Product
		ingredients, processes, equipment []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Image, &ingredients, &processes, &equipment, &p.CorrectOrder, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var err error
	if p.Ingredients, err = NormalizeItems(ingredients); err != nil {
		return nil, err
	}
	if p.Processes, err = NormalizeItems(processes); err != nil {
		return nil, err
	}
	if p.Equipment, err = NormalizeItems(equipment); err != nil {
		return nil, err
	}
	return &p, nil
}

func marshalItemPools(p *domain.Product) (ingredients, processes, equipment []byte, err error) {
	if ingredients, err = json.Marshal(emptyIfNil(p.Ingredients)); err != nil {
		return
	}
	if processes, err = json.Marshal(emptyIfNil(p.Processes)); err != nil {
		return
	}
	equipment, err = json.Marshal(emptyIfNil(p.Equipment))
	return
}

func emptyIfNil(items []domain.Item) []domain.Item {
	if items == nil {
		return []domain.Item{}
	}
	return items
}

// NormalizeItems repairs the three historical shapes of a stored item
// list: plain strings, proper {name, description} objects, and broken
// char-split objects ({"0":"D","1":"o",...}) left behind by an old admin
// form. Everything comes back as []domain.Item.
func NormalizeItems(raw []byte) ([]domain.Item, error) {
	if len(raw) == 0 {
		return []domain.Item{}, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			items = append(items, domain.Item{Name: s})
			continue
		}

		var obj map[string]string
		if err := json.Unmarshal(entry, &obj); err != nil {
			return nil, err
		}
		if name, ok := obj["name"]; ok {
			items = append(items, domain.Item{Name: name, Description: obj["description"]})
			continue
		}
		items = append(items, domain.Item{Name: joinCharSplit(obj)})
	}
	return items, nil
}

// joinCharSplit reassembles {"0":"D","1":"o","2":"u"...} into "Dou...".
func joinCharSplit(obj map[string]string) string {
	keys := make([]int, 0, len(obj))
	for k := range obj {
		i, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		keys = append(keys, i)
	}
	sort.Ints(keys)

	var name string
	for _, k := range keys {
		name += obj[strconv.Itoa(k)]
	}
	return name
}
