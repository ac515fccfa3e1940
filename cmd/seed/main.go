package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise/internal/auth"
	"spendwise/internal/config"
	"spendwise/internal/db"
	"spendwise/internal/model"
	"spendwise/internal/repository"
)

// demoUser describes one seeded account and its expenses.
type demoUser struct {
	email    string
	password string
	expenses []demoExpense
}

type demoExpense struct {
	description string
	amount      string
	category    string
	daysAgo     int
}

var demoUsers = []demoUser{
	{
		email:    "alice@example.com",
		password: "alice-demo-password",
		expenses: []demoExpense{
			{"weekly groceries", "82.45", "food", 2},
			{"lunch with team", "18.90", "food", 5},
			{"train ticket", "34.00", "travel", 7},
			{"hotel night", "129.99", "travel", 7},
			{"electricity bill", "61.20", "utilities", 12},
		},
	},
	{
		email:    "bob@example.com",
		password: "bob-demo-password",
		expenses: []demoExpense{
			{"coffee beans", "14.50", "food", 1},
			{"gym membership", "39.00", "health", 3},
			{"bus pass", "25.00", "travel", 9},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Expense{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)
	hasher := auth.NewPasswordHasher(auth.DefaultBcryptCost)
	ctx := context.Background()

	createdUsers, createdExpenses := 0, 0
	for _, demo := range demoUsers {
		user, err := userRepo.FindByEmail(ctx, demo.email)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Fatalf("Error checking user %s: %v", demo.email, err)
			}
			digest, err := hasher.Hash(demo.password)
			if err != nil {
				log.Fatalf("Error hashing password for %s: %v", demo.email, err)
			}
			user = &model.User{
				Email:        demo.email,
				PasswordHash: digest,
				Role:         "user",
			}
			if err := userRepo.Create(ctx, user); err != nil {
				log.Fatalf("Error creating user %s: %v", demo.email, err)
			}
			createdUsers++
		} else {
			log.Printf("User %s already exists, seeding expenses only", demo.email)
		}

		for _, item := range demo.expenses {
			amount, err := decimal.NewFromString(item.amount)
			if err != nil {
				log.Fatalf("Invalid seed amount %q: %v", item.amount, err)
			}
			expense := &model.Expense{
				Description: item.description,
				Amount:      amount,
				Category:    item.category,
				OwnerID:     user.ID,
				Date:        time.Now().AddDate(0, 0, -item.daysAgo),
			}
			if err := expenseRepo.Create(ctx, expense); err != nil {
				log.Fatalf("Error creating expense %q: %v", item.description, err)
			}
			createdExpenses++
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", createdUsers)
	log.Printf("  - Expenses created: %d", createdExpenses)
}
