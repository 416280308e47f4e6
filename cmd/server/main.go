package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbeisheim/chessrules/internal/config"
	"github.com/benbeisheim/chessrules/internal/controller"
	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	store, err := openStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	manager := service.NewManager(store, cfg.SessionTTL)
	go manager.Run(ctx)
	gameService := service.NewGameService(manager)

	// Initialize controllers
	sessionController := controller.NewSessionController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Origins,
		AllowHeaders:  "Origin, Content-Type, Accept, " + middleware.ClientIDHeader,
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: middleware.ClientIDHeader,
	}))

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsureClientID())
	app.Get("/ws/sessions/:sessionId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         cfg.OriginList(),
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsureClientID())
	sessionController.Register(api.Group("/sessions"))

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s (origins %s)", cfg.Addr, strings.Join(cfg.OriginList(), ","))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Errorf("listen: %v", err)
	}
}

func openStore(dir string) (*storage.Store, error) {
	if dir == "" {
		log.Info("no data dir configured, sessions are kept in memory")
		return storage.OpenInMemory()
	}
	log.Infof("session snapshots in %s", dir)
	return storage.Open(dir)
}
