package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"finboard/internal/models"
	"finboard/internal/repository"
	"finboard/pkg/auth"
	"finboard/pkg/config"
	"finboard/pkg/logger"
	"finboard/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	demoEmail    = "demo@finboard.local"
	demoUsername = "Demo User"
	demoPassword = "demo1234"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	appLogger.Info("Starting database seeding")

	user, err := seedDemoUser(ctx, userRepo)
	if err != nil {
		appLogger.Fatal("Failed to seed demo user", zap.Error(err))
	}

	count, err := seedTransactions(ctx, txRepo, user.ID)
	if err != nil {
		appLogger.Fatal("Failed to seed transactions", zap.Error(err))
	}

	appLogger.Info("Database seeding completed",
		zap.String("email", demoEmail),
		zap.Int("transactions", count),
	)
}

func seedDemoUser(ctx context.Context, repo *repository.UserRepository) (*models.User, error) {
	if existing, err := repo.GetByEmail(ctx, demoEmail); err == nil {
		return existing, nil
	}

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  demoUsername,
		Email:     demoEmail,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// seedTransactions writes a year of plausible activity: a salary payment each
// month plus a handful of random expenses and extra income entries.
func seedTransactions(ctx context.Context, repo *repository.TransactionRepository, userID uuid.UUID) (int, error) {
	rng := rand.New(rand.NewSource(42))
	year := time.Now().Year()

	expenseCategories := []string{"Software", "Marketing", "Office Supplies", "Utilities", "Other"}
	incomeCategories := []string{"Sales", "Investment", "Freelance", "Consulting"}
	descriptions := map[string][]string{
		"Software":        {"SaaS subscription", "IDE license renewal", "Cloud hosting"},
		"Marketing":       {"Ad campaign", "Sponsored newsletter", "Conference booth"},
		"Office Supplies": {"Printer paper", "Standing desk", "Notebooks"},
		"Utilities":       {"Electricity bill", "Internet bill", "Office heating"},
		"Other":           {"Misc purchase", "Team lunch"},
		"Sales":           {"Product sale", "License upgrade", "Annual plan"},
		"Investment":      {"Dividend payout", "Interest income"},
		"Freelance":       {"Contract work", "Consulting retainer"},
		"Consulting":      {"Workshop fee", "Advisory session"},
	}
	statuses := []models.TransactionStatus{
		models.StatusPaid, models.StatusPaid, models.StatusPaid,
		models.StatusPending, models.StatusFailed,
	}

	count := 0
	for month := time.January; month <= time.December; month++ {
		now := time.Now()

		salary := &models.Transaction{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        models.TypeIncome,
			Category:    "Salary",
			Amount:      5200,
			Description: "Monthly salary",
			Status:      models.StatusPaid,
			Date:        time.Date(year, month, 1, 9, 0, 0, 0, time.UTC),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Create(ctx, salary); err != nil {
			return count, err
		}
		count++

		entries := 3 + rng.Intn(5)
		for i := 0; i < entries; i++ {
			txType := models.TypeExpense
			category := expenseCategories[rng.Intn(len(expenseCategories))]
			amount := 20 + rng.Float64()*480
			if rng.Intn(4) == 0 {
				txType = models.TypeIncome
				category = incomeCategories[rng.Intn(len(incomeCategories))]
				amount = 100 + rng.Float64()*1900
			}

			opts := descriptions[category]
			tx := &models.Transaction{
				ID:          uuid.New(),
				UserID:      userID,
				Type:        txType,
				Category:    category,
				Amount:      float64(int(amount*100)) / 100,
				Description: opts[rng.Intn(len(opts))],
				Status:      statuses[rng.Intn(len(statuses))],
				Date:        time.Date(year, month, 2+rng.Intn(26), 8+rng.Intn(10), rng.Intn(60), 0, 0, time.UTC),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := repo.Create(ctx, tx); err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}
