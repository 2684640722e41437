package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/askhub/askhub-backend/internal/config"
	"github.com/askhub/askhub-backend/internal/domain"
	"github.com/askhub/askhub-backend/internal/handler"
	"github.com/askhub/askhub-backend/internal/middleware"
	"github.com/askhub/askhub-backend/internal/repository"
	"github.com/askhub/askhub-backend/internal/routes"
	"github.com/askhub/askhub-backend/internal/service"
	pkgcache "github.com/askhub/askhub-backend/pkg/cache"
	"github.com/askhub/askhub-backend/pkg/jwt"
	pkglogger "github.com/askhub/askhub-backend/pkg/logger"
	pkgredis "github.com/askhub/askhub-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if cfg.IsDevelopment() {
		if err := db.AutoMigrate(
			&domain.User{}, &domain.Question{}, &domain.Comment{},
			&domain.Vote{}, &domain.Tag{}, &domain.Notification{},
		); err != nil {
			pkglogger.Info("Migration warning: %v", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		middleware.SetDBConnectionsActive(float64(sqlDB.Stats().OpenConnections))
	}

	// Redis is optional; the overview recomputes on every request
	// without it
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Info("Warning: Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
		pkglogger.Info("Cache service initialized")
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	tagRepo := repository.NewTagRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	diagnosticsRepo := repository.NewDiagnosticsRepository(db)

	// Services
	userService := service.NewUserService(userRepo)
	questionService := service.NewQuestionService(questionRepo)
	commentService := service.NewCommentService(commentRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	tagService := service.NewTagService(tagRepo)
	analyticsService := service.NewAnalyticsService(
		userRepo, questionRepo, commentRepo, voteRepo, tagRepo, notificationRepo,
		cacheService, cfg.Admin.GrowthWindowDays,
	)
	actionService := service.NewActionService(
		userRepo, notificationRepo, diagnosticsRepo, analyticsService,
		cacheService, cfg.Admin.InactiveWindowDays,
	)

	// Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders())

	// CORS
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           86400,
	}))

	routes.Setup(router, routes.Handlers{
		Users:         handler.NewUserHandler(userService),
		Questions:     handler.NewQuestionHandler(questionService),
		Comments:      handler.NewCommentHandler(commentService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Tags:          handler.NewTagHandler(tagService),
		Admin:         handler.NewAdminHandler(analyticsService, actionService),
	}, jwtManager, redisClient)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["time_zone"] = "'+00:00'"

	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
