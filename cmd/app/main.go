package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gharkakhana/cmd"
	httpadapter "gharkakhana/internal/adapters/in/http"
	"gharkakhana/internal/adapters/out/postgres/mealrepo"
	"gharkakhana/internal/adapters/out/postgres/orderrepo"
	"gharkakhana/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultExpiryGraceMinutes = 30

func main() {
	configs := getConfigs()

	db, err := gorm.Open(gormpostgres.Open(configs.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&mealrepo.MealDTO{}, &orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(app.CreateCancelExpiredOrdersCommandHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, logger, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		OrderExpiryGraceMinutes: defaultExpiryGraceMinutes,
	}

	if raw := goDotEnvVariable("ORDER_EXPIRY_GRACE_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes >= 0 {
			config.OrderExpiryGraceMinutes = minutes
		}
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

func startWebServer(app *cmd.CompositionRoot, logger *slog.Logger, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateTransitionOrderStatusCommandHandler(),
		app.CreateGetUserOrdersQueryHandler(),
		app.CreateGetChefOrdersQueryHandler(),
		app.CreateGetChefScheduleQueryHandler(),
		logger,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
