package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/config"
	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/database/authors"
	"github.com/openshelf/catalog/internal/database/books"
	"github.com/openshelf/catalog/internal/database/genres"
	"github.com/openshelf/catalog/internal/database/instances"
	"github.com/openshelf/catalog/internal/guard"
	http_controllers "github.com/openshelf/catalog/internal/http"
	"github.com/openshelf/catalog/internal/scheduler"
	"github.com/openshelf/catalog/internal/web"
	"github.com/openshelf/catalog/internal/workflow"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting catalog v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	genreRepo := genres.NewRepository(db.DB)
	instanceRepo := instances.NewRepository(db.DB)
	catalogGuard := guard.NewCatalogGuard(db.DB)

	// Session manager needs the raw SQL handle from GORM.
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := web.NewSessionManager(sqlDB, cfg.Sessions.Lifetime, cfg.Sessions.SecureCookies)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// Use the configured CSRF secret, or generate one for this process.
	var csrfSecret []byte
	if cfg.Sessions.Secret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Sessions.Secret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Sessions.Secret)
		}
	} else {
		secret, err := web.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Printf("Generated session secret (set SESSION_SECRET to persist)")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Authors:        workflow.NewAuthorController(authorRepo, bookRepo, catalogGuard),
		Books:          workflow.NewBookController(bookRepo, authorRepo, genreRepo, instanceRepo, catalogGuard),
		Genres:         workflow.NewGenreController(genreRepo, bookRepo, catalogGuard),
		Instances:      workflow.NewInstanceController(instanceRepo, bookRepo, catalogGuard),
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Sessions.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	var sweep *scheduler.OverdueSweep
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	if cfg.OverdueSweep.Enabled {
		sweep = scheduler.NewOverdueSweep(instanceRepo, cfg.OverdueSweep.Schedule)
		if err := sweep.Start(sweepCtx); err != nil {
			log.Fatalf("Failed to start overdue sweep: %v", err)
		}
	}

	onShutdown := func(ctx context.Context) {
		if sweep != nil {
			sweep.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
