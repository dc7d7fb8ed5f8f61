package router

import (
	"github.com/breezehub/backend/internal/infrastructure/auth"
	"github.com/breezehub/backend/internal/interfaces/http/handler"
	"github.com/breezehub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthRoutes registers registration, login and profile endpoints
type AuthRoutes struct {
	handler    *handler.AuthHandler
	jwtService *auth.JWTService
}

// NewAuthRoutes creates a new AuthRoutes registrar
func NewAuthRoutes(h *handler.AuthHandler, jwtService *auth.JWTService) *AuthRoutes {
	return &AuthRoutes{handler: h, jwtService: jwtService}
}

func (r *AuthRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/auth")
	group.POST("/register", r.handler.Register)
	group.POST("/login", r.handler.Login)
	group.GET("/me", middleware.Auth(r.jwtService), r.handler.Me)
}

// CatalogRoutes registers public product browsing endpoints
type CatalogRoutes struct {
	handler *handler.ProductHandler
}

// NewCatalogRoutes creates a new CatalogRoutes registrar
func NewCatalogRoutes(h *handler.ProductHandler) *CatalogRoutes {
	return &CatalogRoutes{handler: h}
}

func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/products")
	group.GET("", r.handler.List)
	group.GET("/:id", r.handler.Get)
}

// OrderRoutes registers authenticated order endpoints
type OrderRoutes struct {
	handler    *handler.OrderHandler
	jwtService *auth.JWTService
}

// NewOrderRoutes creates a new OrderRoutes registrar
func NewOrderRoutes(h *handler.OrderHandler, jwtService *auth.JWTService) *OrderRoutes {
	return &OrderRoutes{handler: h, jwtService: jwtService}
}

func (r *OrderRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/orders")
	group.Use(middleware.Auth(r.jwtService))
	group.POST("", r.handler.Create)
	group.GET("", r.handler.List)
	group.GET("/:id", r.handler.Get)
	group.PUT("/:id/status", r.handler.UpdateStatus)
	group.PUT("/:id/pay", r.handler.MarkPaid)
}

// AdminRoutes registers admin-only management endpoints
type AdminRoutes struct {
	productHandler *handler.ProductHandler
	userHandler    *handler.UserHandler
	jwtService     *auth.JWTService
}

// NewAdminRoutes creates a new AdminRoutes registrar
func NewAdminRoutes(ph *handler.ProductHandler, uh *handler.UserHandler, jwtService *auth.JWTService) *AdminRoutes {
	return &AdminRoutes{
		productHandler: ph,
		userHandler:    uh,
		jwtService:     jwtService,
	}
}

func (r *AdminRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/admin")
	group.Use(middleware.Auth(r.jwtService), middleware.RequireAdmin())

	products := group.Group("/products")
	products.POST("", r.productHandler.Create)
	products.PUT("/:id", r.productHandler.Update)
	products.DELETE("/:id", r.productHandler.Delete)
	products.PUT("/:id/variants/:variantId/stock", r.productHandler.AdjustStock)

	users := group.Group("/users")
	users.GET("", r.userHandler.List)
	users.PUT("/:id/role", r.userHandler.ChangeRole)

	riders := group.Group("/riders")
	riders.GET("", r.userHandler.ListRiders)
	riders.POST("", r.userHandler.CreateRider)
}
