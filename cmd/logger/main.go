package main

import (
	"log"

	"github.com/joho/godotenv"

	"rates_backend/internal/app/router"
	logsadapters "rates_backend/internal/feature/logs/adapters"
	logshandler "rates_backend/internal/feature/logs/transport/handler"
	logsusecase "rates_backend/internal/feature/logs/usecase"
	infradb "rates_backend/internal/platform/db"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	// db
	db := infradb.OpenDB(&logsadapters.LogModel{})

	// Repository / Usecase / Handler
	logRepo := logsadapters.NewLogRepository(db)
	logsUC := logsusecase.NewLogsUsecase(logRepo)
	logsH := logshandler.NewLogsHandler(logsUC)

	// ルータ生成
	r := router.NewRouter(logsH)

	if err := r.Run(":8500"); err != nil {
		log.Fatal(err)
	}
}
