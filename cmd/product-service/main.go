package main

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/catalog"
	"github.com/MikeMC777/valora-ecom/internal/config"
	"github.com/MikeMC777/valora-ecom/internal/db"
	"github.com/MikeMC777/valora-ecom/internal/docs"
	"github.com/MikeMC777/valora-ecom/internal/httpx"
	"github.com/MikeMC777/valora-ecom/internal/logging"
)

// @title       Valora product-service
// @version     1.0
// @description Product catalog.
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

	repo := catalog.NewPGRepo(pool)
	iss := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(repo, iss, log)
	docs.Register("product-service")
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := httpx.Serve(cfg.ProductSvcAddr, r, log); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}

func newRouter(repo catalog.Repository, iss *auth.Issuer, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))
	r.GET("/healthz", httpx.Health)

	r.GET("/products", listOnlyHandler(repo, log))
	r.GET("/products/search", searchHandler(repo, log))
	r.GET("/products/:id", getProductHandler(repo, log))

	admin := r.Group("/products", auth.Authenticate(iss), auth.RequireRole(auth.RoleAdmin))
	admin.POST("", createProductHandler(repo, log))
	admin.PUT("/:id", updateProductHandler(repo, log))
	admin.DELETE("/:id", deleteProductHandler(repo, log))
	return r
}
