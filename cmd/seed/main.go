package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"reviewhub/internal/config"
	"reviewhub/internal/database"
	"reviewhub/internal/domain"
	"reviewhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	reviews := repository.NewReviewRepository(db)

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	admin := &domain.User{
		Name:         "Admin",
		Email:        "admin@reviewhub.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Printf("seed admin: %v", err)
	}

	userHash, err := bcrypt.GenerateFromPassword([]byte("user12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	demo := &domain.User{
		Name:         "Demo User",
		Email:        "demo@reviewhub.local",
		PasswordHash: string(userHash),
		Role:         domain.RoleUser,
	}
	if err := users.Create(ctx, demo); err != nil {
		log.Printf("seed demo user: %v", err)
	}

	electronics := &domain.Category{Name: "Electronics"}
	if err := db.WithContext(ctx).Create(electronics).Error; err != nil {
		log.Printf("seed category: %v", err)
	}

	phone := &domain.Product{Name: "Acme Phone X", CategoryID: electronics.ID}
	if err := products.Create(ctx, phone); err != nil {
		log.Printf("seed product: %v", err)
	}

	price := 50.0
	sample := &domain.Review{
		ProductID:   phone.ID,
		UserID:      demo.ID,
		Title:       "Six months with the Acme Phone X",
		Description: "A long-form review covering battery life, camera quality and the quirks you only find after months of daily use.",
		Rating:      4,
		Status:      domain.ReviewStatusPending,
		IsPremium:   true,
		Price:       &price,
	}
	if err := reviews.Create(ctx, sample); err != nil {
		log.Printf("seed review: %v", err)
	}

	log.Println("seed complete")
}
