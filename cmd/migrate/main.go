package main

import (
	"log"
	"os"

	"ai-debtchat-be/internal/model"
	"ai-debtchat-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (needed for gen_random_uuid)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Debtor{},
		&model.DebtAccount{},
		&model.ChatSession{},
		&model.ConversationMessage{},
		&model.ComplianceEvent{},
		&model.PaymentTransaction{},
		&model.Agent{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: reporting view used by the ops dashboard
	log.Println("Step 3: Creating Views...")

	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW debtor_contact_summary AS
		 SELECT d.id AS debtor_id, d.name, d.account_number,
		        count(DISTINCT cs.id) AS session_count,
		        count(cm.id) FILTER (WHERE cm.sender_type = 'bot') AS bot_message_count,
		        max(cm.sent_at) AS last_contact_at
		 FROM debtors d
		 LEFT JOIN chat_sessions cs ON cs.debtor_id = d.id
		 LEFT JOIN conversation_messages cm ON cm.session_id = cs.id
		 GROUP BY d.id, d.name, d.account_number;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
