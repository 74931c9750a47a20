package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/shared/middleware"
	"ecommerce-backend/pkg/container"
	"ecommerce-backend/pkg/jwt"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(c.Config.HTTP.AllowedOrigins),
		middleware.Metrics(c.Metrics),
	)

	// /metrics không qua timeout và prefix
	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

	api := router.Group(c.Config.HTTP.APIPrefix)
	api.Use(middleware.Timeout(c.Config.HTTP.RequestTimeout))
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupUserRoutes(api, c)
		setupBrandRoutes(api, c)
		setupCategoryRoutes(api, c)
		setupProductRoutes(api, c)
		setupCartRoutes(api, c)
		setupAssetRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	auth.Use(c.AuthRateLimiter.Middleware())
	{
		auth.POST("/signup", c.AuthHandler.Signup)
		auth.POST("/resend-confirm-email", c.AuthHandler.ResendConfirmEmail)
		auth.PATCH("/confirm-email", c.AuthHandler.ConfirmEmail)
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/refresh-token", middleware.Authenticate(c.TokenService, jwt.TokenRefresh), c.AuthHandler.RefreshToken)
		auth.POST("/logout", middleware.Authenticate(c.TokenService, jwt.TokenAccess), c.AuthHandler.Logout)
		auth.POST("/forgot-password", c.AuthHandler.ForgotPassword)
		auth.PATCH("/reset-password", c.AuthHandler.ResetPassword)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	users := api.Group("/user")
	users.Use(
		middleware.Authenticate(c.TokenService, jwt.TokenAccess),
		middleware.RequireRoles(user.RoleAdmin, user.RoleUser),
		middleware.PreferredLanguage(),
	)
	{
		users.GET("", c.UserHandler.GetProfile)
		users.PATCH("/profile-image", middleware.RequireRoles(user.RoleUser), c.UserHandler.UpdateProfileImage)
		users.POST("/profile-image/pre-signed", c.UserHandler.PresignProfileImage)
		users.PATCH("/cover-images", c.UserHandler.UpdateCoverImages)
		users.PATCH("/change-password", c.UserHandler.ChangePassword)
	}
}

// ========================================
// CATALOG ROUTES (brand / category / product)
// ========================================
// Reads public, archive reads và mutations admin-only

func setupBrandRoutes(api *gin.RouterGroup, c *container.Container) {
	brand := api.Group("/brand")
	brand.GET("", c.BrandHandler.List)
	brand.GET("/:brandId", c.BrandHandler.FindOne)

	admin := brand.Group("", adminOnly(c)...)
	{
		admin.POST("", c.BrandHandler.Create)
		admin.GET("/archive", c.BrandHandler.ListArchive)
		admin.GET("/:brandId/archive", c.BrandHandler.FindOneArchive)
		admin.PATCH("/:brandId", c.BrandHandler.Update)
		admin.PATCH("/:brandId/attachment", c.BrandHandler.UpdateAttachment)
		admin.PATCH("/:brandId/restore", c.BrandHandler.Restore)
		admin.DELETE("/:brandId/freeze", c.BrandHandler.Freeze)
		admin.DELETE("/:brandId", c.BrandHandler.Delete)
	}
}

func setupCategoryRoutes(api *gin.RouterGroup, c *container.Container) {
	category := api.Group("/category")
	category.GET("", c.CategoryHandler.List)
	category.GET("/:categoryId", c.CategoryHandler.FindOne)

	admin := category.Group("", adminOnly(c)...)
	{
		admin.POST("", c.CategoryHandler.Create)
		admin.GET("/archive", c.CategoryHandler.ListArchive)
		admin.GET("/:categoryId/archive", c.CategoryHandler.FindOneArchive)
		admin.PATCH("/:categoryId", c.CategoryHandler.Update)
		admin.PATCH("/:categoryId/attachment", c.CategoryHandler.UpdateAttachment)
		admin.PATCH("/:categoryId/restore", c.CategoryHandler.Restore)
		admin.DELETE("/:categoryId/freeze", c.CategoryHandler.Freeze)
		admin.DELETE("/:categoryId", c.CategoryHandler.Delete)
	}
}

func setupProductRoutes(api *gin.RouterGroup, c *container.Container) {
	product := api.Group("/product")
	product.GET("", c.ProductHandler.List)
	product.GET("/:productId", c.ProductHandler.FindOne)

	admin := product.Group("", adminOnly(c)...)
	{
		admin.POST("", c.ProductHandler.Create)
		admin.GET("/archive", c.ProductHandler.ListArchive)
		admin.GET("/:productId/archive", c.ProductHandler.FindOneArchive)
		admin.PATCH("/:productId", c.ProductHandler.Update)
		admin.PATCH("/:productId/attachment", c.ProductHandler.UpdateAttachment)
		admin.PATCH("/:productId/restore", c.ProductHandler.Restore)
		admin.DELETE("/:productId/freeze", c.ProductHandler.Freeze)
		admin.DELETE("/:productId", c.ProductHandler.Delete)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(api *gin.RouterGroup, c *container.Container) {
	cart := api.Group("/cart")
	cart.Use(
		middleware.Authenticate(c.TokenService, jwt.TokenAccess),
		middleware.RequireRoles(user.RoleUser),
	)
	{
		cart.POST("", c.CartHandler.AddToCart)
		cart.GET("", c.CartHandler.GetCart)
		cart.PATCH("/remove-from-cart", c.CartHandler.RemoveItems)
		cart.DELETE("", c.CartHandler.DeleteCart)
	}
}

// ========================================
// ASSET ROUTES
// ========================================
// Một catch-all cho cả stream và /upload/pre-signed/*
func setupAssetRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/upload/*path", c.AssetHandler.Serve)
}

func adminOnly(c *container.Container) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.Authenticate(c.TokenService, jwt.TokenAccess),
		middleware.RequireRoles(user.RoleAdmin),
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := appCtx.HealthCheck(c.Request.Context())

		status, code := "ok", http.StatusOK
		for _, s := range services {
			if s != "ok" {
				status, code = "degraded", http.StatusServiceUnavailable
				break
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		})
	}
}
