package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/urbanrenew/renewal-platform/internal/api/handler"
	"github.com/urbanrenew/renewal-platform/internal/api/middleware"
	"github.com/urbanrenew/renewal-platform/internal/core/domain"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
	"github.com/urbanrenew/renewal-platform/internal/core/service"
	"github.com/urbanrenew/renewal-platform/internal/infrastructure/config"
	mongodb "github.com/urbanrenew/renewal-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/urbanrenew/renewal-platform/internal/infrastructure/db/redis"
	"github.com/urbanrenew/renewal-platform/internal/notify"
)

// RouterOptions groups everything NewRouter needs to assemble the API.
type RouterOptions struct {
	Config     *config.Config
	Mongo      *mongo.Database
	Redis      *redis.Client
	Dispatcher handler.MessageDispatcher
	// MessageService is shared with the dispatcher workers; the router
	// only reads conversations through it.
	MessageService ports.MessageService
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts RouterOptions) *echo.Echo {
	cfg := opts.Config

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("renewal"))
	e.Use(middleware.Locale())

	// --- Dependencies ---
	classifier := service.HeuristicClassifier{
		AllowedEmails:    cfg.AdminEmails,
		ReservedIDNumber: cfg.ReservedAdminID,
	}
	userRepo := mongodb.NewUserRepository(opts.Mongo)
	sessionStore := redisdb.NewSessionStore(opts.Redis)
	authService := service.NewAuthService(service.AuthServiceOptions{
		Users:      userRepo,
		Sessions:   sessionStore,
		Classifier: classifier,
		Notifier:   notify.NewLogNotifier(opts.Logger),
		Inflight:   redisdb.NewInflightGuard(opts.Redis),
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		Logger:     opts.Logger,
	})
	projectRepo := mongodb.NewProjectRepository(opts.Mongo)
	projectService := service.NewProjectService(projectRepo, opts.Logger)
	voteService := service.NewVoteService(mongodb.NewVoteRepository(opts.Mongo), projectRepo, opts.Logger)
	routeGuard := service.NewRouteGuard(classifier, cfg.Development(), cfg.AdminPath)

	sessions := middleware.SessionResolver(authService, cfg.JWTSecret)
	e.Use(sessions)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	voteHandler := handler.NewVoteHandler(voteService)
	messageHandler := handler.NewMessageHandler(opts.MessageService, opts.Dispatcher)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/login", authHandler.SignIn)
	e.POST("/auth/login-id", authHandler.SignInWithIDNumber)
	e.POST("/auth/logout", authHandler.SignOut)
	e.POST("/auth/reset-password", authHandler.ResetPassword)
	e.PUT("/auth/profile", authHandler.UpdateProfile)
	e.GET("/auth/me", authHandler.Me)

	// --- Projects (open listing; guard degrades anonymous calls to demo) ---
	projects := e.Group("/v1/projects", middleware.Guard(routeGuard, service.RouteRequirement{}))
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	// --- Voting (resident-scoped views) ---
	votes := e.Group("/v1/projects/:id/votes",
		middleware.Guard(routeGuard, service.RouteRequirement{RequiredUserType: domain.UserTypeResidents}))
	votes.POST("", voteHandler.Cast)
	votes.GET("/me", voteHandler.Own)
	votes.GET("/tally", voteHandler.Tally)

	// --- Communication center ---
	messages := e.Group("/v1/messages", middleware.Guard(routeGuard, service.RouteRequirement{}))
	messages.POST("", messageHandler.Send)
	messages.GET("/:conversation_id", messageHandler.List)
	messages.POST("/:conversation_id/read", messageHandler.MarkRead)

	// --- Admin area (rendered unconditionally; see guard policy) ---
	admin := e.Group(cfg.AdminPath, middleware.Guard(routeGuard, service.RouteRequirement{AdminOnly: true}))
	admin.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"area": "admin"})
	})
	admin.GET("/projects", projectHandler.List)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
