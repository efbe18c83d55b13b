package main

import (
	"context"
	"log"
	"os"

	"build_a_bite/internal/db"
	"build_a_bite/internal/domain"
	"build_a_bite/internal/repository"

	"github.com/joho/godotenv"
)

// Seeds a small demo catalog so a fresh install has something to play.
// Existing products with the same name are left alone.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewProductRepository(pool)
	ctx := context.Background()

	for _, p := range demoCatalog() {
		if existing, err := repo.GetByName(ctx, p.Name); err == nil {
			log.Printf("skip %q: already seeded as id=%d", p.Name, existing.ID)
			continue
		}
		if err := repo.Create(ctx, p); err != nil {
			log.Fatalf("seed %q: %v", p.Name, err)
		}
		log.Printf("seeded %q id=%d", p.Name, p.ID)
	}
}

func demoCatalog() []*domain.Product {
	return []*domain.Product{
		{
			Name:  "Classic Burger",
			Image: "/images/burger.png",
			Ingredients: []domain.Item{
				{Name: "Bun", Description: "Toasted sesame bun"},
				{Name: "Patty", Description: "Grilled beef patty"},
				{Name: "Cheese", Description: "Cheddar slice"},
				{Name: "Lettuce", Description: "Crisp iceberg leaf"},
			},
			Processes: []domain.Item{
				{Name: "Grill", Description: "Sear the patty on both sides"},
				{Name: "Toast", Description: "Brown the bun cut side down"},
				{Name: "Assemble", Description: "Stack from the bottom up"},
			},
			Equipment: []domain.Item{
				{Name: "Griddle", Description: "Flat-top grill"},
				{Name: "Spatula", Description: "For flipping the patty"},
			},
		},
		{
			Name:  "Berry Smoothie",
			Image: "/images/smoothie.png",
			Ingredients: []domain.Item{
				{Name: "Strawberries", Description: "Hulled and halved"},
				{Name: "Banana", Description: "Peeled, roughly chopped"},
				{Name: "Yogurt", Description: "Plain, full fat"},
			},
			Processes: []domain.Item{
				{Name: "Measure", Description: "Portion the fruit and yogurt"},
				{Name: "Blend", Description: "Run until smooth"},
			},
			Equipment: []domain.Item{
				{Name: "Blender", Description: "High-speed jug blender"},
			},
		},
		{
			Name:  "Margherita Pizza",
			Image: "/images/pizza.png",
			Ingredients: []domain.Item{
				{Name: "Dough", Description: "Proofed pizza dough"},
				{Name: "Tomato Sauce", Description: "Crushed San Marzano"},
				{Name: "Mozzarella", Description: "Torn into pieces"},
				{Name: "Basil", Description: "Fresh leaves"},
			},
			Processes: []domain.Item{
				{Name: "Stretch", Description: "Shape the dough by hand"},
				{Name: "Top", Description: "Sauce first, then cheese"},
				{Name: "Bake", Description: "High heat until blistered"},
			},
			Equipment: []domain.Item{
				{Name: "Pizza Stone", Description: "Preheated in the oven"},
				{Name: "Peel", Description: "For loading and turning"},
			},
		},
	}
}
