package httpserver

import (
	"context"
	"errors"
	"time"

	"ecoshop/internal/domain"
	ordersvc "ecoshop/internal/service/order"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CartService interface {
	AddItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartLine, error)
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	RemoveMany(ctx context.Context, userID int64, productIDs []int64) error
	Clear(ctx context.Context, userID int64) error
	List(ctx context.Context, userID int64) ([]domain.CartItem, error)
}

type FavoriteService interface {
	Add(ctx context.Context, userID, productID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, productID int64) error
	List(ctx context.Context, userID int64) ([]domain.Product, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, in ordersvc.PlaceOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	BulkInsert(ctx context.Context, products []domain.Product) (int, error)
	UpdatePrice(ctx context.Context, id int64, price domain.Money) error
	Delete(ctx context.Context, id int64) error
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

// Deps holds the services the routes are served from.
type Deps struct {
	CartSvc     CartService
	FavoriteSvc FavoriteService
	OrderSvc    OrderService
	ProductSvc  ProductService
	CategorySvc CategoryService
}

func (d Deps) validate() error {
	switch {
	case d.CartSvc == nil:
		return errors.New("cart service is required")
	case d.FavoriteSvc == nil:
		return errors.New("favorite service is required")
	case d.OrderSvc == nil:
		return errors.New("order service is required")
	case d.ProductSvc == nil:
		return errors.New("product service is required")
	case d.CategorySvc == nil:
		return errors.New("category service is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestIDMiddleware(), accessLogMiddleware(logger), gin.Recovery(), cors.New(corsConfig(corsOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	cart := router.Group("/cart")
	cart.POST("/add", addCartItemHandler(deps.CartSvc, logger))
	cart.POST("/update", updateCartItemHandler(deps.CartSvc, logger))
	cart.GET("/:user_id", listCartHandler(deps.CartSvc, logger))
	cart.DELETE("/clear/:user_id", clearCartHandler(deps.CartSvc, logger))
	cart.DELETE("/:user_id/:product_id", removeCartItemHandler(deps.CartSvc, logger))

	favorites := router.Group("/favorites")
	favorites.POST("", addFavoriteHandler(deps.FavoriteSvc, logger))
	favorites.DELETE("/:product_id", removeFavoriteHandler(deps.FavoriteSvc, logger))
	favorites.GET("/:user_id", listFavoritesHandler(deps.FavoriteSvc, logger))

	orders := router.Group("/orders")
	orders.POST("", placeOrderHandler(deps.OrderSvc, deps.CartSvc, logger))
	orders.GET("", listOrdersHandler(deps.OrderSvc, logger))
	orders.GET("/:order_id", getOrderHandler(deps.OrderSvc, logger))

	products := router.Group("/products")
	products.GET("", listProductsHandler(deps.ProductSvc, logger))
	products.GET("/:product_id", getProductHandler(deps.ProductSvc, logger))
	products.POST("/bulk-insert", bulkInsertProductsHandler(deps.ProductSvc, logger))
	products.PUT("/price/:product_id", updatePriceHandler(deps.ProductSvc, logger))
	products.DELETE("/:product_id", deleteProductHandler(deps.ProductSvc, logger))

	router.GET("/categories", listCategoriesHandler(deps.CategorySvc, logger))

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
