package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	Compliance ComplianceConfig
	Ai         AIConfig
	WhatsApp   WhatsAppConfig
	SMS        SMSConfig
	Campaign   CampaignConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	EscalationEmail    string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type ComplianceConfig struct {
	MaxDailyMessages int
	ContactStartHour int
	ContactEndHour   int
	Timezone         string
}

type AIConfig struct {
	XAIAPIKey        string
	XAIModel         string
	GroqAPIKey       string
	GroqModel        string
	TimeoutSeconds   int
	TranslateBaseURL string
	TranslateAPIKey  string
}

type WhatsAppConfig struct {
	PhoneNumberID string
	AccessToken   string
	VerifyToken   string
}

type SMSConfig struct {
	TwilioAccountSID string
	TwilioAuthToken  string
	FromNumber       string
}

type CampaignConfig struct {
	TemplateName string
	Schedule     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			EscalationEmail:    getEnv("ESCALATION_EMAIL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "DebtChat"),
		},
		Compliance: ComplianceConfig{
			MaxDailyMessages: getEnvAsInt("COMPLIANCE_MAX_DAILY_MESSAGES", 3),
			ContactStartHour: getEnvAsInt("COMPLIANCE_CONTACT_START_HOUR", 9),
			ContactEndHour:   getEnvAsInt("COMPLIANCE_CONTACT_END_HOUR", 19),
			Timezone:         getEnv("COMPLIANCE_TIMEZONE", "Asia/Kolkata"),
		},
		Ai: AIConfig{
			XAIAPIKey:        getEnv("XAI_API_KEY", ""),
			XAIModel:         getEnv("XAI_MODEL", "grok-3"),
			GroqAPIKey:       getEnv("GROQ_API_KEY", ""),
			GroqModel:        getEnv("GROQ_MODEL", "llama-3.1-70b-versatile"),
			TimeoutSeconds:   getEnvAsInt("LLM_TIMEOUT_SECONDS", 30),
			TranslateBaseURL: getEnv("TRANSLATE_BASE_URL", ""),
			TranslateAPIKey:  getEnv("TRANSLATE_API_KEY", ""),
		},
		WhatsApp: WhatsAppConfig{
			PhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
			AccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
			VerifyToken:   getEnv("WHATSAPP_VERIFY_TOKEN", ""),
		},
		SMS: SMSConfig{
			TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber:       getEnv("TWILIO_FROM_NUMBER", ""),
		},
		Campaign: CampaignConfig{
			TemplateName: getEnv("CAMPAIGN_TEMPLATE_NAME", "payment_reminder"),
			Schedule:     getEnv("CAMPAIGN_SCHEDULE", "0 10 * * *"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
