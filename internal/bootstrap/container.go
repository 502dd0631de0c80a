package bootstrap

import (
	"context"

	"nexus-ems-be/internal/config"
	"nexus-ems-be/internal/controller"
	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/handler"
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/pkg/serverutils"
	"nexus-ems-be/internal/repository/memory"
	"nexus-ems-be/internal/repository/unitofwork"
	"nexus-ems-be/internal/service"
	"nexus-ems-be/internal/websocket"
	"nexus-ems-be/pkg/chatbot"
	"nexus-ems-be/pkg/mirror"

	pktNats "nexus-ems-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	EmployeeController  controller.IEmployeeController
	AssistantController controller.IAssistantController
	ReportController    controller.IReportController

	// Background services (run by main)
	BindingService service.IRecordBindingService

	// WebSockets & Notification
	RealtimeHandler *handler.RealtimeHandler
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 2. Event Bus (in-process change signal)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 16},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Cross-instance infrastructure. Both are optional: a single
	// instance runs without them.
	var eventPublisher service.EventPublisher
	var eventSubscriber service.EventSubscriber
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
	} else {
		eventSubscriber = natsSub
		c.closers = append(c.closers, natsSub.Close)
	}

	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb = redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis, realtime stays local", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		rdb = nil
	} else {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// 4. Mirror and realtime
	employees := mirror.New[entity.Employee]()
	queryService := service.NewEmployeeQueryService(employees)

	wsLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)
	wsHub := websocket.NewHub(rdb, cfg.App.InstanceID, queryService, wsLogger)
	notifService := service.NewNotificationService(wsHub, wsLogger) // Hub implements NotificationDelivery

	// 5. Services
	publisherService := service.NewPublisherService(service.EmployeesChangedTopic, pubSub)
	bindingService := service.NewRecordBindingService(
		uowFactory,
		employees,
		pubSub,
		eventSubscriber,
		cfg.App.InstanceID,
		wsHub,
		notifService,
		sysLogger,
	)
	employeeService := service.NewEmployeeService(
		uowFactory,
		publisherService,
		eventPublisher,
		notifService,
		cfg.App.InstanceID,
		sysLogger,
	)

	assistantClient := chatbot.NewClient(chatbot.Config{
		APIKey:          cfg.Assistant.GeminiAPIKey,
		BaseURL:         cfg.Assistant.BaseURL,
		Model:           cfg.Assistant.Model,
		TTSModel:        cfg.Assistant.TTSModel,
		SearchGrounding: cfg.Assistant.SearchGrounding,
	})
	assistantService := service.NewAssistantService(
		assistantClient,
		memory.NewConversationRepository(),
		notifService,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, cfg.Auth, wsHub, eventPublisher, sysLogger)
	reportService := service.NewReportService(queryService, sysLogger)

	// 6. Controllers
	jwt := serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret)
	c.AuthController = controller.NewAuthController(authService, jwt)
	c.EmployeeController = controller.NewEmployeeController(employeeService, queryService, assistantService, jwt)
	c.AssistantController = controller.NewAssistantController(assistantService, jwt)
	c.ReportController = controller.NewReportController(reportService, jwt)

	c.BindingService = bindingService
	c.RealtimeHandler = handler.NewRealtimeHandler(wsHub, cfg.Auth.JWTSecret, wsLogger)
	c.WebSocketHub = wsHub

	return c
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
