package main

import (
	"log"
	"os"
	"time"

	"ai-debtchat-be/internal/model"
	"ai-debtchat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Debtors and Accounts...")
	seedDebtors(db)

	color.Cyan("Seeding Default Agent...")
	seedAgent(db)

	color.Green("✅ Seeding completed!")
}

func seedDebtors(db *gorm.DB) {
	email := "ramesh.kumar@example.com"
	debtors := []model.Debtor{
		{AccountNumber: "LN-2024-0001", Name: "Ramesh Kumar", Phone: "919876543210", Email: &email, PreferredLanguage: "hi"},
		{AccountNumber: "LN-2024-0002", Name: "Sunita Deshmukh", Phone: "919822001122", PreferredLanguage: "mr"},
		{AccountNumber: "LN-2024-0003", Name: "Karthik Subramanian", Phone: "919940112233", PreferredLanguage: "ta"},
		{AccountNumber: "LN-2024-0004", Name: "Lakshmi Prasad", Phone: "919848223344", PreferredLanguage: "te"},
		{AccountNumber: "LN-2024-0005", Name: "Arjun Mehta", Phone: "919810334455", PreferredLanguage: "en-IN"},
	}

	amounts := []float64{52000, 18500, 125000, 8400, 64000}
	overdueDays := []int{12, 45, 5, 90, 30}

	for i, d := range debtors {
		var existing model.Debtor
		if err := db.Where("account_number = ?", d.AccountNumber).First(&existing).Error; err == nil {
			log.Printf("Debtor '%s' already exists, skipping...", d.AccountNumber)
			continue
		}

		if err := db.Create(&d).Error; err != nil {
			log.Printf("Error creating debtor '%s': %v", d.AccountNumber, err)
			continue
		}

		rate := 14.5
		account := model.DebtAccount{
			DebtorId:          d.Id,
			AccountNumber:     d.AccountNumber,
			OriginalAmount:    amounts[i],
			OutstandingAmount: amounts[i],
			DueDate:           time.Now().AddDate(0, 0, -overdueDays[i]),
			Status:            "overdue",
			InterestRate:      &rate,
		}
		if err := db.Create(&account).Error; err != nil {
			log.Printf("Error creating account for '%s': %v", d.AccountNumber, err)
		} else {
			log.Printf("Created debtor: %s (%s)", d.Name, d.AccountNumber)
		}
	}
}

func seedAgent(db *gorm.DB) {
	adminEmail := "admin@debtchat.local"

	var existing model.Agent
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Printf("Agent '%s' already exists, skipping...", adminEmail)
		return
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing seed password: %v", err)
		return
	}

	agent := model.Agent{
		Email:        adminEmail,
		FullName:     "Collections Admin",
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := db.Create(&agent).Error; err != nil {
		log.Printf("Error creating agent: %v", err)
	} else {
		log.Printf("Created agent: %s", adminEmail)
	}
}
