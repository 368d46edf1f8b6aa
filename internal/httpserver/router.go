package httpserver

import (
	"context"
	"log"
	"net/http"

	"techshop/internal/domain"
	userrepo "techshop/internal/repository/user"
	authsvc "techshop/internal/service/auth"
	catalogsvc "techshop/internal/service/catalog"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type authService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	Verify(token string) (authsvc.Identity, error)
}

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in catalogsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalogsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type cartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	Update(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type userStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, in userrepo.UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// Deps carries the services the router dispatches into.
type Deps struct {
	AuthSvc    authService
	CatalogSvc catalogService
	CartSvc    cartService
	Users      userStore
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	router.Use(cors.New(corsCfg))

	router.GET("/health", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.POST("/register", registerHandler(deps.AuthSvc))
	api.POST("/login", loginHandler(deps.AuthSvc))
	api.GET("/products", listProductsHandler(deps.CatalogSvc))
	api.GET("/products/:id", getProductHandler(deps.CatalogSvc))

	authed := api.Group("", authMiddleware(deps.AuthSvc))
	authed.GET("/user", currentUserHandler(deps.Users))

	cart := authed.Group("/cart")
	cart.GET("", getCartHandler(deps.CartSvc))
	cart.POST("/add", addToCartHandler(deps.CartSvc))
	cart.PUT("/update", updateCartHandler(deps.CartSvc))
	cart.DELETE("/remove/:productId", removeFromCartHandler(deps.CartSvc))
	cart.DELETE("/clear", clearCartHandler(deps.CartSvc))

	admin := authed.Group("", adminOnly())
	admin.GET("/users", listUsersHandler(deps.Users))
	admin.GET("/users/:id", getUserHandler(deps.Users))
	admin.PUT("/users/:id", updateUserHandler(deps.Users))
	admin.DELETE("/users/:id", deleteUserHandler(deps.Users))
	admin.POST("/products", createProductHandler(deps.CatalogSvc))
	admin.PUT("/products/:id", updateProductHandler(deps.CatalogSvc))
	admin.DELETE("/products/:id", deleteProductHandler(deps.CatalogSvc))

	return router
}
