package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"reviewhub/internal/config"
	"reviewhub/internal/database"
	"reviewhub/internal/middleware"
	"reviewhub/internal/modules/auth"
	"reviewhub/internal/modules/payment"
	"reviewhub/internal/modules/product"
	"reviewhub/internal/modules/rating"
	"reviewhub/internal/modules/review"
	"reviewhub/internal/modules/vote"
	jwtsvc "reviewhub/internal/pkg/jwt"
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

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	ratingService := rating.NewService(reviewRepo, productRepo)
	ratingHandler := rating.NewHandler(ratingService)

	gateway := payment.NewHTTPGateway(cfg.GatewayURL, cfg.GatewayStoreID, cfg.GatewayPassword)
	paymentService := payment.NewService(
		paymentRepo,
		userRepo,
		reviewRepo,
		gateway,
		cfg.Currency,
		cfg.BackendBaseURL,
		cfg.ClientBaseURL,
		log.Printf,
	)
	paymentHandler := payment.NewHandler(paymentService)

	reviewService := review.NewService(reviewRepo, paymentService, productRepo, ratingService)
	reviewHandler := review.NewHandler(reviewService)

	voteService := vote.NewService(voteRepo)
	voteHandler := vote.NewHandler(voteService)

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// Public routes carry optional identity: premium reads serve the
		// full description only to authenticated payers.
		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(j))
		{
			authHandler.RegisterRoutes(public)
			productHandler.RegisterRoutes(public, nil)
			reviewHandler.RegisterRoutes(public, nil, nil)
			voteHandler.RegisterRoutes(public, nil)
			paymentHandler.RegisterRoutes(public, nil, nil)
		}

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			reviewHandler.RegisterRoutes(nil, protected, nil)
			voteHandler.RegisterRoutes(nil, protected)
			paymentHandler.RegisterRoutes(nil, protected, nil)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAuth(j), middleware.AdminOnly())
		{
			reviewHandler.RegisterRoutes(nil, nil, admin)
			paymentHandler.RegisterRoutes(nil, nil, admin)
			productHandler.RegisterRoutes(nil, admin)
			ratingHandler.RegisterRoutes(admin)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
