package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"orderboard/cmd"
	"orderboard/internal/core/domain/model/order"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := gorm.Open(sqlite.Open(configs.JournalPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("Error opening journal database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}

	ctx := context.Background()
	engine := app.Engine()

	// replay accepted-but-unpushed transitions from before the last shutdown
	if err := engine.Recover(ctx); err != nil {
		log.Fatalf("Error replaying transition journal: %v", err)
	}

	// first pull before serving so the board does not start empty
	if err := engine.Pull(ctx); err != nil {
		logger.Error("Initial pull failed; the poll job will retry", "error", err)
	}

	if stream := app.CreateOrderStream(); stream != nil {
		go func() {
			if err := stream.Run(ctx, func(o *order.Order) { engine.ApplySnapshot(o) }); err != nil {
				logger.Error("Push channel stopped; polling continues", "error", err)
			}
		}()
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// a missing .env file is fine; the environment may carry everything
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:             envOrDefault("HTTP_PORT", "8080"),
		OrdersAPIBaseURL:     envOrDefault("ORDERS_API_BASE_URL", "http://localhost:8090"),
		OrdersAPIToken:       os.Getenv("ORDERS_API_TOKEN"),
		VenueID:              envOrDefault("VENUE_ID", "venue-1"),
		PollSeconds:          envIntOrDefault("POLL_SECONDS", 5),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		JournalPath:          envOrDefault("JOURNAL_PATH", "orderboard.db"),
		VisibleWindowMinutes: envIntOrDefault("VISIBLE_WINDOW_MINUTES", 120),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
