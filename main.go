package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"blogspend/m/internal/api"
	"blogspend/m/internal/config"
	"blogspend/m/internal/database"
	"blogspend/m/internal/logging"
	"blogspend/m/internal/migrations"
	"blogspend/m/internal/store"
	"blogspend/m/internal/token"
)

func main() {
	_ = godotenv.Load()
	logging.Init("info")

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)

	handler := api.New(store.New(db), token.New(cfg.Secret))

	logging.Logger.Infof("blogspend server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		logging.Logger.Fatalf("server error: %v", err)
	}
}
