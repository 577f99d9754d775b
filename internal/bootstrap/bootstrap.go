package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edusphere/eduadmin/docs" // generated swagger docs
	"github.com/edusphere/eduadmin/internal/app/controllers"
	"github.com/edusphere/eduadmin/internal/app/migrations"
	"github.com/edusphere/eduadmin/internal/app/repositories"
	"github.com/edusphere/eduadmin/internal/app/routes"
	"github.com/edusphere/eduadmin/internal/app/services"
	"github.com/edusphere/eduadmin/internal/config"
	"github.com/edusphere/eduadmin/internal/db"
	"github.com/edusphere/eduadmin/internal/middleware"
	pkgAuth "github.com/edusphere/eduadmin/internal/pkg/auth"
	"github.com/edusphere/eduadmin/internal/pkg/logger"
	"github.com/edusphere/eduadmin/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *services.AuthService
	StudentService     *services.StudentService
	BatchService       *services.BatchService
	EligibilityService *services.EligibilityService
	StatsService       *services.StatsService
	AuthController     *controllers.AuthController
	StudentController  *controllers.StudentController
	BatchController    *controllers.BatchController
	StatsController    *controllers.StatsController
	CatalogController  *controllers.CatalogController
	AuthMiddleware     *middleware.AuthMiddleware
	Repos              *repositories.Repositories
	JWTService         *pkgAuth.JWTService
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := migrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, cfg, lgr); err != nil {
		// Log and proceed; a seeding failure does not block startup.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(database)

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = services.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.StudentService = services.NewStudentService(deps.Repos.StudentRepository, deps.Repos.CatalogRepository)
	deps.BatchService = services.NewBatchService(deps.Repos.BatchRepository, deps.Repos.StudentRepository)
	deps.EligibilityService = services.NewEligibilityService(deps.Repos.StudentRepository, deps.Repos.CatalogRepository)
	deps.StatsService = services.NewStatsService(deps.Repos.StudentRepository)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = controllers.NewAuthController(deps.AuthService)
	deps.StudentController = controllers.NewStudentController(deps.StudentService, deps.EligibilityService, deps.StatsService)
	deps.BatchController = controllers.NewBatchController(deps.BatchService)
	deps.StatsController = controllers.NewStatsController(deps.StatsService)
	deps.CatalogController = controllers.NewCatalogController(deps.Repos.CatalogRepository)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	routes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.BatchController,
		deps.StatsController,
		deps.CatalogController,
		deps.AuthMiddleware,
	)

	return router
}
