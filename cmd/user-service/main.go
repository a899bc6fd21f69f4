package main

import (
	"context"
	"net"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/config"
	"github.com/MikeMC777/valora-ecom/internal/db"
	"github.com/MikeMC777/valora-ecom/internal/docs"
	"github.com/MikeMC777/valora-ecom/internal/httpx"
	"github.com/MikeMC777/valora-ecom/internal/logging"
	"github.com/MikeMC777/valora-ecom/internal/user"
	"github.com/MikeMC777/valora-ecom/internal/userpb"
)

// @title       Valora user-service
// @version     1.0
// @description Accounts, login and roles. Lookups for other services go over gRPC.
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
	svc := user.NewService(user.NewPGRepo(pool), iss, log)

	lis, err := net.Listen("tcp", cfg.UserGRPCAddr)
	if err != nil {
		log.Fatal("grpc listen", zap.Error(err))
	}
	gs := grpc.NewServer()
	userpb.RegisterUserServiceServer(gs, user.NewGRPCServer(svc))
	go func() {
		log.Info("grpc listening", zap.String("addr", cfg.UserGRPCAddr))
		if err := gs.Serve(lis); err != nil {
			log.Error("grpc serve", zap.Error(err))
		}
	}()
	defer gs.GracefulStop()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(svc, iss, log)
	docs.Register("user-service")
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := httpx.Serve(cfg.UserSvcAddr, r, log); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}

func newRouter(svc *user.Service, iss *auth.Issuer, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))
	r.GET("/healthz", httpx.Health)

	r.POST("/users/register", registerHandler(svc, log))
	r.POST("/users/login", loginHandler(svc, log))

	authed := r.Group("/users", auth.Authenticate(iss))
	authed.GET("/me", meHandler(svc, log))
	authed.PUT("/me", updateMeHandler(svc, log))

	admin := authed.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.PUT("/:id/roles", assignRolesHandler(svc, log))
	admin.DELETE("/:id", deleteUserHandler(svc, log))
	return r
}
