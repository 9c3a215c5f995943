package bootstrap

import (
	"context"
	"log"

	"launchforge-be/internal/config"
	"launchforge-be/internal/controller"
	"launchforge-be/internal/handler"
	"launchforge-be/internal/pkg/logger"
	"launchforge-be/internal/pkg/mailer"
	"launchforge-be/internal/repository/unitofwork"
	"launchforge-be/internal/service"
	"launchforge-be/internal/websocket"
	"launchforge-be/pkg/generator"

	pktNats "launchforge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// eventTopic is the in-process watermill topic everything publishes to.
const eventTopic = "launchforge.events"

type Container struct {
	// Controllers
	CatalogController  controller.ICatalogController
	OrderController    controller.IOrderController
	GenerateController controller.IGenerateController
	AdminController    controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	StatusHandler *handler.StatusHandler
	WebSocketHub  *websocket.Hub
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

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/generation.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Generation Core
	// The generator reads the catalog through the same cache the repositories
	// use, so hot merge paths skip the database and admin catalog edits are
	// visible to the next generation.
	catalog := generator.NewRepositoryCatalog(uowFactory.FeatureRepository())
	projects := generator.New(catalog, cfg.Generator.BaseTemplateDir, sysLogger)

	// 4. Services
	catalogService := service.NewCatalogService(uowFactory)
	orderService := service.NewOrderService(
		uowFactory,
		pubSub,
		eventTopic,
		cfg.Auth.JWTSecret,
		cfg.App.BaseURL,
		cfg.Auth.DownloadTokenTTLHours,
		cfg.Generator.DefaultMaxDownloads,
		sysLogger,
	)
	generatorService := service.NewGeneratorService(
		projects,
		uowFactory,
		pubSub,
		eventTopic,
		natsPub,
		sysLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		eventTopic,
		uowFactory,
		emailService,
		wsHub,
	)

	// Payment settlement worker: external gateway events arrive on NATS.
	if natsSub != nil {
		paymentListener := service.NewPaymentListenerService(natsSub, orderService, sysLogger)
		go func() {
			if err := paymentListener.Start(); err != nil {
				log.Printf("[WARN] Payment listener failed to start: %v", err)
			}
		}()
	}

	// 5. Controllers
	return &Container{
		CatalogController:  controller.NewCatalogController(catalogService),
		OrderController:    controller.NewOrderController(orderService),
		GenerateController: controller.NewGenerateController(orderService, generatorService, sysLogger),
		AdminController:    controller.NewAdminController(catalogService, generatorService, sysLogger),

		ConsumerService: consumerService,
		StatusHandler:   handler.NewStatusHandler(wsHub, wsLogger),
		WebSocketHub:    wsHub,
	}
}
