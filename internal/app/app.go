package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sauticare_web/internal/auth"
	"sauticare_web/internal/backend"
	"sauticare_web/internal/config"
	"sauticare_web/internal/controller"
	"sauticare_web/internal/service"
	"sauticare_web/pkg/logger"
	"sauticare_web/pkg/monitoring"
	"sauticare_web/pkg/security"
	"sauticare_web/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	Store   *auth.SessionStore
	Backend *backend.Client

	services        *services
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	auth      *service.AuthService
	lesson    *service.LessonService
	practice  *service.PracticeService
	analytics *service.AnalyticsService
	voice     *service.VoiceService
}

type controllers struct {
	auth      *controller.AuthController
	lesson    *controller.LessonController
	practice  *controller.PracticeController
	analytics *controller.AnalyticsController
	voice     *controller.VoiceController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，由 configwatcher 调用
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("config reloaded")
}

func (a *App) initServices(api *backend.Client, store *auth.SessionStore, cfg *config.Config) *services {
	return &services{
		auth:      service.NewAuthService(api, store),
		lesson:    service.NewLessonService(api),
		practice:  service.NewPracticeService(api, cfg.Audio),
		analytics: service.NewAnalyticsService(api),
		voice:     service.NewVoiceService(api, cfg.Audio),
	}
}

func (a *App) initControllers(s *services, store *auth.SessionStore) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		lesson:    controller.NewLessonController(s.lesson),
		practice:  controller.NewPracticeController(s.practice),
		analytics: controller.NewAnalyticsController(s.analytics),
		voice:     controller.NewVoiceController(s.voice),
		health:    controller.NewHealthController(store),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := auth.NewFileTokenStore(cfg.TokenStore.Path, cfg.TokenStore.Passphrase)
	if err != nil {
		logger.Log.Fatal("Failed to initialize token store", zap.Error(err))
	}

	// store 提供令牌给 client，client 为 store 拉取用户
	store := auth.NewSessionStore(tokens, nil)
	api := backend.NewClient(cfg.Backend, store)
	store.SetUserFetcher(api)

	app := &App{
		Config:  cfg,
		Store:   store,
		Backend: api,
	}

	services := app.initServices(api, store, cfg)
	app.services = services
	controllers := app.initControllers(services, store)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("sauticare-web", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	// 启动时尝试从持久化令牌恢复会话
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	services.auth.Restore(ctx)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
