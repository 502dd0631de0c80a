package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"nexus-ems-be/internal/bootstrap"
	"nexus-ems-be/internal/config"
	"nexus-ems-be/internal/server"
	"nexus-ems-be/internal/tracer"
	"nexus-ems-be/pkg/database"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	shutdownTracer := tracer.InitTracer(ctx, cfg.Telemetry, container.Logger)
	defer shutdownTracer(context.Background())

	// 4. Start Background Services
	go container.WebSocketHub.Run(ctx)
	if err := container.BindingService.Start(ctx); err != nil {
		log.Panicf("Unable to start employee binding: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		container.Logger.Info("SERVER", "Shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			container.Logger.Error("SERVER", "Shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
