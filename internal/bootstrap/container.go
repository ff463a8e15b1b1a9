package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-debtchat-be/internal/config"
	"ai-debtchat-be/internal/controller"
	"ai-debtchat-be/internal/pkg/logger"
	"ai-debtchat-be/internal/pkg/mailer"
	"ai-debtchat-be/internal/repository/memory"
	"ai-debtchat-be/internal/repository/unitofwork"
	"ai-debtchat-be/internal/service"
	"ai-debtchat-be/internal/websocket"
	"ai-debtchat-be/pkg/compliance"
	"ai-debtchat-be/pkg/language"
	"ai-debtchat-be/pkg/llm/factory"
	"ai-debtchat-be/pkg/responder"
	"ai-debtchat-be/pkg/sms"
	"ai-debtchat-be/pkg/translate"
	"ai-debtchat-be/pkg/whatsapp"

	pktNats "ai-debtchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	WhatsAppController controller.IWhatsAppController
	SMSController      controller.ISMSController
	PaymentController  controller.IPaymentController
	DebtorController   controller.IDebtorController
	AuthController     controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	CampaignService service.ICampaignService

	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat_events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Pipeline Components
	identifier := language.NewIdentifier(language.DefaultConfig())

	llmTimeout := time.Duration(cfg.Ai.TimeoutSeconds) * time.Second
	providers := factory.NewProviderChain(factory.Config{
		XAIAPIKey:  cfg.Ai.XAIAPIKey,
		XAIModel:   cfg.Ai.XAIModel,
		GroqAPIKey: cfg.Ai.GroqAPIKey,
		GroqModel:  cfg.Ai.GroqModel,
		Timeout:    llmTimeout,
	})
	log.Printf("[INFO] Generative backends configured: %d", len(providers))
	generator := responder.NewGenerator(providers, llmTimeout, sysLogger)

	tz, err := time.LoadLocation(cfg.Compliance.Timezone)
	if err != nil {
		log.Printf("[WARN] Invalid compliance timezone %q, falling back to UTC", cfg.Compliance.Timezone)
		tz = time.UTC
	}
	gate := compliance.NewGate(uowFactory, compliance.Config{
		MaxDailyMessages: cfg.Compliance.MaxDailyMessages,
		ContactStartHour: cfg.Compliance.ContactStartHour,
		ContactEndHour:   cfg.Compliance.ContactEndHour,
		Timezone:         tz,
	}, sysLogger)

	var translator *translate.Client
	if cfg.Ai.TranslateBaseURL != "" {
		translator = translate.NewClient(cfg.Ai.TranslateBaseURL, cfg.Ai.TranslateAPIKey, 10*time.Second)
	}

	runtimeStore := memory.NewRuntimeStore()

	// 4. Channel Clients
	waClient := whatsapp.NewClient(cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.AccessToken, 15*time.Second)
	smsSender := sms.NewSender(cfg.SMS.TwilioAccountSID, cfg.SMS.TwilioAuthToken, cfg.SMS.FromNumber)

	// 5. Services
	chatService := service.NewChatService(
		uowFactory,
		runtimeStore,
		identifier,
		generator,
		gate,
		translator,
		natsPub,
		emailService,
		cfg.App.EscalationEmail,
		sysLogger,
	)

	whatsAppService := service.NewWhatsAppService(
		chatService,
		waClient,
		pubSub,
		cfg.WhatsApp.VerifyToken,
		sysLogger,
	)
	smsService := service.NewSMSService(chatService, smsSender, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, natsPub, sysLogger)
	authService := service.NewAuthService(uowFactory)
	debtorService := service.NewDebtorService(uowFactory)

	consumerService := service.NewConsumerService(
		pubSub,
		service.DeliveryStatusTopic,
		uowFactory,
		sysLogger,
	)
	campaignService := service.NewCampaignService(
		uowFactory,
		gate,
		waClient,
		natsPub,
		cfg.Campaign.TemplateName,
		cfg.Campaign.Schedule,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService, wsHub, uowFactory),
		WhatsAppController: controller.NewWhatsAppController(whatsAppService),
		SMSController:      controller.NewSMSController(smsService),
		PaymentController:  controller.NewPaymentController(paymentService),
		DebtorController:   controller.NewDebtorController(debtorService),
		AuthController:     controller.NewAuthController(authService),

		ConsumerService: consumerService,
		CampaignService: campaignService,

		WebSocketHub: wsHub,
	}
}
