package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orderflow/cmd"
	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/in/ws"
	"orderflow/internal/adapters/out/postgres/cartrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/outboxrepo"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&cartrepo.CartLineDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.DaySequenceDTO{},
		&outboxrepo.MessageDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	hub := app.CreateTrackingHub()
	defer hub.Shutdown()

	startWebServer(app, hub, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:           goDotEnvVariable("JWT_SECRET"),
		RedisAddr:           goDotEnvVariable("REDIS_ADDR"),
		CatalogBaseURL:      goDotEnvVariable("CATALOG_BASE_URL"),
		IdentityBaseURL:     goDotEnvVariable("IDENTITY_BASE_URL"),
		SettlementBaseURL:   goDotEnvVariable("SETTLEMENT_BASE_URL"),
		NotificationBaseURL: goDotEnvVariable("NOTIFICATION_BASE_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(app *cmd.CompositionRoot, hub *ws.Hub, configs cmd.Config) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateAddCartItemCommandHandler(),
		app.CreateUpdateCartItemCommandHandler(),
		app.CreateBulkUpdateCartCommandHandler(),
		app.CreateResetCartCommandHandler(),
		app.CreateCheckoutCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateAssignDriverCommandHandler(),
		app.CreateUpdateDriverLocationCommandHandler(),
		app.CreateGetCartQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetTrackingSnapshotQueryHandler(),
	)
	server.RegisterRoutes(e, []byte(configs.JWTSecret))

	trackingHandler, err := app.CreateTrackingHandler([]byte(configs.JWTSecret), hub)
	if err != nil {
		log.Fatalf("Failed to build tracking handler: %v", err)
	}
	e.GET("/ws/orders/:orderId", trackingHandler.Track)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		_ = e.Close()
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Web server failed: %v", err)
	}
}
