package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"ecommerce-backend/internal/config"
	infraCache "ecommerce-backend/internal/infrastructure/cache"
	"ecommerce-backend/internal/infrastructure/database"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/internal/infrastructure/queue"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/shared/middleware"
	"ecommerce-backend/pkg/jwt"

	assetHandler "ecommerce-backend/internal/domains/asset/handler"
	"ecommerce-backend/internal/domains/auth"
	authHandler "ecommerce-backend/internal/domains/auth/handler"
	authRepo "ecommerce-backend/internal/domains/auth/repository"
	authService "ecommerce-backend/internal/domains/auth/service"
	"ecommerce-backend/internal/domains/brand"
	brandHandler "ecommerce-backend/internal/domains/brand/handler"
	brandRepo "ecommerce-backend/internal/domains/brand/repository"
	brandService "ecommerce-backend/internal/domains/brand/service"
	"ecommerce-backend/internal/domains/cart"
	cartHandler "ecommerce-backend/internal/domains/cart/handler"
	cartRepo "ecommerce-backend/internal/domains/cart/repository"
	cartService "ecommerce-backend/internal/domains/cart/service"
	"ecommerce-backend/internal/domains/category"
	categoryHandler "ecommerce-backend/internal/domains/category/handler"
	categoryRepo "ecommerce-backend/internal/domains/category/repository"
	categoryService "ecommerce-backend/internal/domains/category/service"
	"ecommerce-backend/internal/domains/product"
	productHandler "ecommerce-backend/internal/domains/product/handler"
	productRepo "ecommerce-backend/internal/domains/product/repository"
	productService "ecommerce-backend/internal/domains/product/service"
	"ecommerce-backend/internal/domains/token"
	tokenRepo "ecommerce-backend/internal/domains/token/repository"
	tokenService "ecommerce-backend/internal/domains/token/service"
	"ecommerce-backend/internal/domains/user"
	userHandler "ecommerce-backend/internal/domains/user/handler"
	userRepo "ecommerce-backend/internal/domains/user/repository"
	userService "ecommerce-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// API server và worker dùng chung một dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	DB         *database.PostgresDB
	Cache      *infraCache.RedisCache
	Storage    storage.Storage
	Validator  *storage.ImageValidator
	Queue      *queue.Client
	Metrics    *metrics.Metrics
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	UserRepo     user.Repository
	OtpRepo      auth.OtpRepository
	TokenRepo    token.Repository
	BrandRepo    brand.Repository
	CategoryRepo category.Repository
	ProductRepo  product.Repository
	CartRepo     cart.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================

	UserService     user.Service
	AuthService     auth.Service
	TokenService    token.Service
	BrandService    brand.Service
	CategoryService category.Service
	ProductService  product.Service
	CartService     cart.Service

	// ========================================
	// HANDLER LAYER
	// ========================================

	UserHandler     *userHandler.UserHandler
	AuthHandler     *authHandler.AuthHandler
	BrandHandler    *brandHandler.BrandHandler
	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.ProductHandler
	CartHandler     *cartHandler.CartHandler
	AssetHandler    *assetHandler.AssetHandler

	// AuthRateLimiter gắn vào group /auth
	AuthRateLimiter *middleware.IPRateLimiter
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Redis, Storage, Queue, Metrics, JWT)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("📋 Config loaded")

	// ========================================
	// STEP 2: INITIALIZE INFRASTRUCTURE
	// ========================================
	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: INITIALIZE REPOSITORIES
	// ========================================
	c.initRepositories()
	log.Info().Msg("📦 Repositories initialized")

	// ========================================
	// STEP 4: INITIALIZE SERVICES
	// ========================================
	c.initServices()
	log.Info().Msg("⚙️  Services initialized")

	// ========================================
	// STEP 5: INITIALIZE HANDLERS
	// ========================================
	c.initHandlers()
	log.Info().Msg("🎯 Handlers initialized")

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	if err := db.HealthCheck(connectCtx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	log.Info().Msg("🗄️  Database connected")

	// Redis: cache + revocation list
	redisCache := infraCache.NewRedisCache(
		infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB),
	)
	if err := redisCache.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache
	log.Info().Msg("🔴 Redis connected")

	// Object storage
	store, err := storage.NewMinIOStorage(ctx, cfg.App.Name, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	c.Storage = store
	c.Validator = storage.NewImageValidator(cfg.Upload.MaxImageBytes, cfg.Upload.MaxImageDimension)
	log.Info().Str("bucket", cfg.Storage.Bucket).Msg("🪣 Storage ready")

	c.Queue = queue.NewClient(c.RedisConnOpt())
	c.Metrics = metrics.New(cfg.Metrics.Prefix)
	c.JWTManager = jwt.NewManager(jwt.Config{
		Bearer:        jwt.Secrets{Access: cfg.JWT.AccessUserSecret, Refresh: cfg.JWT.RefreshUserSecret},
		System:        jwt.Secrets{Access: cfg.JWT.AccessSystemSecret, Refresh: cfg.JWT.RefreshSystemSecret},
		AccessExpiry:  cfg.JWT.AccessTokenExpiry,
		RefreshExpiry: cfg.JWT.RefreshTokenExpiry,
	})
	c.AuthRateLimiter = middleware.NewIPRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.OtpRepo = authRepo.NewOtpRepository(pool)
	c.TokenRepo = tokenRepo.NewPostgresRepository(pool, c.Cache)
	c.BrandRepo = brandRepo.NewPostgresRepository(pool, c.Cache)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool, c.Cache)
	c.ProductRepo = productRepo.NewPostgresRepository(pool, c.Cache)
	c.CartRepo = cartRepo.NewPostgresRepository(pool, c.Metrics)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.TokenService = tokenService.NewTokenService(c.TokenRepo, c.UserRepo, c.JWTManager, c.Metrics)
	c.AuthService = authService.NewAuthService(
		c.UserRepo,
		c.OtpRepo,
		c.TokenService,
		c.Queue,
		c.Metrics,
		cfg.Otp.TTL,
	)
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.Storage,
		c.Validator,
		cfg.Upload.MaxProfileBytes,
		c.Metrics,
	)

	// Catalog: category phụ thuộc brand repo, product phụ thuộc cả hai
	c.BrandService = brandService.NewBrandService(c.BrandRepo, c.Storage, c.Validator, c.Metrics)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.BrandRepo, c.Storage, c.Validator, c.Metrics)
	c.ProductService = productService.NewProductService(
		c.ProductRepo,
		c.CategoryRepo,
		c.BrandRepo,
		c.Storage,
		c.Validator,
		c.Metrics,
	)
	c.CartService = cartService.NewCartService(c.CartRepo, c.ProductRepo)
}

func (c *Container) initHandlers() {
	upload := c.Config.Upload

	c.UserHandler = userHandler.NewUserHandler(c.UserService, upload.MaxImageBytes, upload.MaxProfileBytes)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.BrandHandler = brandHandler.NewBrandHandler(c.BrandService, upload.MaxImageBytes)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService, upload.MaxImageBytes)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService, upload.MaxImageBytes)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.AssetHandler = assetHandler.NewAssetHandler(c.Storage, c.Metrics)
}

// ========================================
// HELPER METHODS
// ========================================

// RedisConnOpt - asynq dùng chung Redis với cache
func (c *Container) RedisConnOpt() asynq.RedisConnOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// HealthCheck - DB + Redis, dùng cho GET /health
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"database": "ok", "redis": "ok"}
	if err := c.DB.HealthCheck(ctx); err != nil {
		status["database"] = err.Error()
	}
	if err := c.Cache.Ping(ctx); err != nil {
		status["redis"] = err.Error()
	}
	return status
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close queue client")
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Close()
		log.Info().Msg("✅ Database connections closed")
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}
}
