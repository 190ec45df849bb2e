package main

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"upsidedown/internal/game"
	"upsidedown/internal/snapshot"
	"upsidedown/internal/trivia"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logFatal("Failed to load config: %v", err)
	}
	logInfo("Starting Upside Down in %s mode", map[bool]string{true: "production", false: "development"}[cfg.IsProduction()])

	catalog, err := loadCatalog(cfg.TriviaFile)
	if err != nil {
		logFatal("Failed to load questions: %v", err)
	}
	logInfo("Loaded %d questions", catalog.Len())

	store, closer, err := openStore(cfg)
	if err != nil {
		logFatal("Failed to open snapshot storage: %v", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logWarn("Failed to close snapshot storage: %v", err)
		}
	}()
	logInfo("Snapshots stored in %s backend", cfg.StorageBackend)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app := newApp(cfg, catalog, store)
	router := app.setupRouter()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go app.runJanitor(ctx, janitorInterval)

	startServer(ctx, router, cfg.Port)
}

// loadCatalog returns the embedded questions, or those in path when set.
func loadCatalog(path string) (*trivia.Catalog, error) {
	catalog := trivia.Default()
	if path != "" {
		logInfo("Loading questions from %s", path)
		var err error
		if catalog, err = trivia.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if catalog.Len() == 0 {
		return nil, trivia.ErrCatalogEmpty
	}
	return catalog, nil
}

// newApp wires the shared server state.
func newApp(cfg Config, catalog *trivia.Catalog, store snapshot.Storage, opts ...game.Option) *App {
	cfg = cfg.withDefaults()
	return &App{
		Config:       cfg,
		Catalog:      catalog,
		IsProduction: cfg.IsProduction(),
		StartTime:    time.Now(),
		Store:        store,
		Sessions:     make(map[string]*liveSession),
		Limiters:     make(map[string]*clientLimiter),
		sessionOpts:  append([]game.Option{game.WithNoticeDuration(cfg.NoticeDuration)}, opts...),
		now:          time.Now,
	}
}

// setupRouter builds the gin engine with middleware, templates and routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), requestIDMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	production := app.IsProduction
	router.Use(func(c *gin.Context) {
		applyCacheHeaders(c, production, app.Config.StaticCacheAge)
	})

	router.SetFuncMap(template.FuncMap{
		"upper": strings.ToUpper,
	})
	if production && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		router.LoadHTMLGlob("dist/templates/*.html")
		router.Static("/static", "./dist/static")
	} else {
		logInfo("Serving development assets from source directories")
		router.LoadHTMLGlob("templates/*.html")
		router.Static("/static", "./static")
	}

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteGameState, app.gameStateHandler)
	router.POST(RouteGuess, app.rateLimitMiddleware(), app.guessHandler)
	router.POST(RouteNewGame, app.rateLimitMiddleware(), app.newGameHandler)
	router.POST(RouteRefresh, app.rateLimitMiddleware(), app.refreshHandler)
	router.GET(RouteHealthz, app.healthzHandler)
	return router
}

func startServer(ctx context.Context, router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		logInfo("Shutdown signal received, shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}

func applyCacheHeaders(c *gin.Context, production bool, staticAge time.Duration) {
	if production && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(staticAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}
