package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/cart"
	"github.com/MikeMC777/valora-ecom/internal/catalog"
	"github.com/MikeMC777/valora-ecom/internal/config"
	"github.com/MikeMC777/valora-ecom/internal/db"
	"github.com/MikeMC777/valora-ecom/internal/docs"
	"github.com/MikeMC777/valora-ecom/internal/httpx"
	"github.com/MikeMC777/valora-ecom/internal/logging"
	"github.com/MikeMC777/valora-ecom/internal/order"
	"github.com/MikeMC777/valora-ecom/internal/review"
	"github.com/MikeMC777/valora-ecom/internal/user"
)

// @title       Valora order-service
// @version     1.0
// @description Carts, checkout, order lifecycle and product reviews.
// @BasePath    /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logging.Must(cfg.Env)
	defer func() { _ = log.Sync() }()

	pool, err := db.Open(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer pool.Close()
	if err := db.Migrate(pool); err != nil {
		log.Fatal("db migrate", zap.Error(err))
	}

	iss := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	lookup := catalog.NewClient(cfg.ProductSvcBaseURL, cfg.CatalogTimeout)

	users, conn, err := user.Dial(cfg.UserGRPCTarget)
	if err != nil {
		log.Fatal("user-service client", zap.Error(err))
	}
	defer conn.Close()

	carts := cart.NewService(cart.NewPGRepo(pool), lookup, cartCache(cfg.RedisAddr, log), log)
	orders := order.NewService(order.NewPGRepo(pool), lookup, users, carts, log)
	reviews := review.NewService(review.NewPGRepo(pool), orders, lookup, users, log)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(carts, orders, reviews, users, iss, log)
	docs.Register("order-service")
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := httpx.Serve(cfg.OrderSvcAddr, r, log); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}

// cartCache returns the redis cache when addr answers, otherwise carts are
// read straight from Postgres.
func cartCache(addr string, log *zap.Logger) cart.Cache {
	if addr == "" {
		return cart.NopCache{}
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, cart cache disabled", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		return cart.NopCache{}
	}
	return cart.NewRedisCache(client)
}

func newRouter(carts cartAPI, orders orderAPI, reviews reviewAPI, users userAPI, iss *auth.Issuer, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))
	r.GET("/healthz", httpx.Health)

	authn := auth.Authenticate(iss)
	admin := auth.RequireRole(auth.RoleAdmin)

	c := r.Group("/cart", authn)
	c.GET("", getCartHandler(carts, log))
	c.GET("/count", cartCountHandler(carts, log))
	c.GET("/user/:user_id", admin, getUserCartHandler(carts, users, log))
	c.GET("/:id", getCartByIDHandler(carts, log))
	c.POST("/items", addCartItemHandler(carts, log))
	c.DELETE("/items/:product_id", removeCartItemHandler(carts, log))
	c.DELETE("", clearCartHandler(carts, log))

	o := r.Group("/orders", authn)
	o.POST("", checkoutHandler(orders, log))
	o.GET("", admin, listOrdersHandler(orders, log))
	o.GET("/mine", myOrdersHandler(orders, log))
	o.GET("/user/:user_id", admin, userOrdersHandler(orders, log))
	o.GET("/:id", getOrderHandler(orders, log))
	o.GET("/:id/total", orderTotalHandler(orders, log))
	o.PUT("/:id/status", admin, updateStatusHandler(orders, log))
	o.PUT("/:id/cancel", cancelOrderHandler(orders, log))

	rv := r.Group("/reviews")
	rv.GET("/product/:product_id", productReviewsHandler(reviews, log))
	rv.GET("/product/:product_id/summary", reviewSummaryHandler(reviews, log))
	rv.GET("/user/:user_id", userReviewsHandler(reviews, log))
	rv.GET("/mine", authn, myReviewsHandler(reviews, log))
	rv.GET("/:id", getReviewHandler(reviews, log))
	rv.POST("", authn, createReviewHandler(reviews, log))
	rv.PUT("/:id", authn, updateReviewHandler(reviews, log))
	rv.DELETE("/:id", authn, deleteReviewHandler(reviews, log))
	return r
}
