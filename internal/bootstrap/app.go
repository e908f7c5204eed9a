package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lxKylin/meeting-room/internal/config"
	httpHandler "github.com/lxKylin/meeting-room/internal/handler/http"
	"github.com/lxKylin/meeting-room/internal/infra/mail"
	gormpersistence "github.com/lxKylin/meeting-room/internal/infra/persistence/gorm"
	"github.com/lxKylin/meeting-room/internal/infra/setup"
	redisstate "github.com/lxKylin/meeting-room/internal/infra/state/redis"
	"github.com/lxKylin/meeting-room/internal/middleware"
	"github.com/lxKylin/meeting-room/internal/observability"
	"github.com/lxKylin/meeting-room/internal/service"
	"github.com/lxKylin/meeting-room/internal/tasks"
	"github.com/lxKylin/meeting-room/internal/worker"
)

// App 结构体包含应用的所有组件和配置
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	AsynqClient *asynq.Client
	AsynqServer *worker.WorkerServer
	Scheduler   *asynq.Scheduler
	Metrics     *observability.Metrics
	HttpServer  *http.Server
}

// NewLogger 按配置创建 logger，生产环境输出 JSON
func NewLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	level, _ := logrus.ParseLevel(cfg.App.LogLevel) // 已在 config.Load 中校验
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	// service 层使用全局 logrus，保持同样的格式和级别
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
	return log
}

// NewApp 创建并初始化应用的所有组件
func NewApp() (*App, error) {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. 初始化 Logger
	log := NewLogger(cfg)
	log.Infof("Logger initialized (Level: %s, Env: %s)", log.GetLevel(), cfg.App.Env)

	// 3. 初始化基础设施
	log.Info("Initializing infrastructure...")
	db, err := setup.InitDB(cfg.MySQL, cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database migrated")

	if cfg.App.SeedData {
		if err := setup.SeedData(context.Background(), db); err != nil {
			return nil, fmt.Errorf("failed to seed data: %w", err)
		}
	}

	redisClient, err := setup.InitRedis(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}

	redisClientOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisClientOpt)
	metrics := observability.NewMetrics()
	mailer := mail.NewSMTPMailer(cfg.Email)
	log.Info("Infrastructure initialized successfully")

	// 4. 初始化 Repositories
	userRepo := gormpersistence.NewGormUserRepository(db)
	roleRepo := gormpersistence.NewGormRoleRepository(db)
	roomRepo := gormpersistence.NewGormMeetingRoomRepository(db)
	bookingRepo := gormpersistence.NewGormBookingRepository(db)
	cacheRepo := redisstate.NewRedisCacheRepository(redisClient, cfg.Redis.KeyPrefix)

	// 5. 初始化 Services
	tokens, err := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to create TokenIssuer: %w", err)
	}
	captchaService := service.NewCaptchaService(cacheRepo, mailer, metrics)
	authService := service.NewAuthService(userRepo, roleRepo, captchaService, tokens)
	userService := service.NewUserService(userRepo, captchaService)
	roomService := service.NewRoomService(roomRepo)
	bookingService := service.NewBookingService(
		bookingRepo, roomRepo, userRepo, cacheRepo,
		tasks.NewAsynqDispatcher(asynqClient), metrics, cfg.App.AdminEmailTTL,
	)
	statsService := service.NewStatisticsService(bookingRepo)
	uploadService := service.NewUploadService(cfg.Upload.Dir, cfg.Upload.MaxSize)
	log.Info("Services initialized")

	// 6. 初始化 Worker Server 和周期任务
	workerServer := worker.NewWorkerServer(redisClientOpt, mailer, bookingRepo, metrics.RecordEmailDelivery, log)
	scheduler := asynq.NewScheduler(redisClientOpt, &asynq.SchedulerOpts{Location: time.Local})

	// 7. 初始化 Gin Engine 和路由
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics(metrics))
	router.Use(middleware.CORS(cfg.App.CORSAllowedOrigin))
	router.Use(middleware.RateLimit(redisClient, cfg.Redis.KeyPrefix, cfg.RateLimit.Max, cfg.RateLimit.Window))

	api := router.Group("/api")
	httpHandler.Register(api, httpHandler.Routes(httpHandler.Handlers{
		User:       httpHandler.NewUserHandler(authService, userService),
		Captcha:    httpHandler.NewCaptchaHandler(captchaService, userService),
		Room:       httpHandler.NewRoomHandler(roomService),
		Booking:    httpHandler.NewBookingHandler(bookingService),
		Statistics: httpHandler.NewStatisticsHandler(statsService),
		Upload:     httpHandler.NewUploadHandler(uploadService),
	}), tokens, metrics)
	api.Static("/uploads", cfg.Upload.Dir)

	router.GET("/ping", func(c *gin.Context) { httpHandler.SuccessResponse(c, http.StatusOK, "pong") })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	log.Info("Router setup complete")

	httpServer := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		AsynqClient: asynqClient,
		AsynqServer: workerServer,
		Scheduler:   scheduler,
		Metrics:     metrics,
		HttpServer:  httpServer,
	}, nil
}

// Start 启动应用的所有后台 Goroutine 和 HTTP 服务器
func (a *App) Start() {
	go a.AsynqServer.Start()
	a.Log.Info("Asynq worker server routine started")

	a.registerPeriodicTasks()

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

func (a *App) registerPeriodicTasks() {
	payload, err := tasks.NewBookingSweepTask()
	if err != nil {
		a.Log.Errorf("Failed to create booking sweep task payload: %v", err)
		return
	}
	task := asynq.NewTask(tasks.TypeBookingSweep, payload)

	schedule := "@every " + a.Config.App.SweepInterval.String()
	entryID, err := a.Scheduler.Register(schedule, task, asynq.Queue("low"))
	if err != nil {
		a.Log.Errorf("Could not register booking sweep task: %v", err)
		return
	}
	a.Log.Infof("Booking sweep task registered with schedule '%s' (EntryID: %s)", schedule, entryID)

	go func() {
		a.Log.Info("Asynq scheduler starting...")
		if err := a.Scheduler.Run(); err != nil && !errors.Is(err, asynq.ErrServerClosed) {
			a.Log.Errorf("Asynq scheduler Run() failed: %v", err)
		}
	}()
}

// Shutdown 优雅地关闭应用
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	// 1. 先停止接收新请求
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	// 2. 停止周期任务和 Worker
	if a.Scheduler != nil {
		a.Scheduler.Shutdown()
		a.Log.Info("Asynq scheduler stopped.")
	}
	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	// 3. 关闭客户端连接
	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.Log.Errorf("Error closing database connection: %v", err)
			}
		}
	}

	a.Log.Info("Application shutdown complete.")
}
