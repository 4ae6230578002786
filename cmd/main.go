package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	httpctx "github.com/Beboto/Streamify-Backend/internal/api/http/context"
	"github.com/Beboto/Streamify-Backend/internal/api/http/handler"
	"github.com/Beboto/Streamify-Backend/internal/api/http/router"
	httpServer "github.com/Beboto/Streamify-Backend/internal/api/http/server"
	"github.com/Beboto/Streamify-Backend/internal/config"
	"github.com/Beboto/Streamify-Backend/internal/logger"
	"github.com/Beboto/Streamify-Backend/internal/model"
	"github.com/Beboto/Streamify-Backend/internal/ratelimit"
	"github.com/Beboto/Streamify-Backend/internal/repository/postgres"
	"github.com/Beboto/Streamify-Backend/internal/server"
	"github.com/Beboto/Streamify-Backend/internal/service"
	storage "github.com/Beboto/Streamify-Backend/internal/storage/minio"
	"github.com/Beboto/Streamify-Backend/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	tokenManager := token.NewJWT(cfg.Token.AccessSecret, cfg.Token.RefreshSecret, cfg.Token.AccessTTL, cfg.Token.RefreshTTL)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	var loginLimiter *ratelimit.LoginLimiter
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		loginLimiter = ratelimit.NewLoginLimiter(redisClient, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
	}

	tokenService := service.NewTokenService(tokenManager, sessionRepo, logger)
	authService := service.NewAuth(userRepo, sessionRepo, tokenService, storageClient, loginLimiter, logger)
	ctxMgr := httpctx.NewManager()

	cookies := handler.CookieConfig{
		Secure:     cfg.HTTP.SecureCookies,
		AccessTTL:  cfg.Token.AccessTTL,
		RefreshTTL: cfg.Token.RefreshTTL,
	}

	r := router.New(authService, tokenService, userRepo, ctxMgr, cookies, cfg.HTTP.CORSOrigin, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
