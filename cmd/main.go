package main

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/battleship-ai/api"
	"github.com/saeidalz13/battleship-ai/db"
	"github.com/saeidalz13/battleship-ai/db/sqlc"
	"github.com/saeidalz13/battleship-ai/internal/config"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

func main() {
	cfg := config.MustLoad(".env")
	log.SetLevel(cfg.LogLevel)
	log.SetReportTimestamp(true)

	var querier sqlc.Querier
	if cfg.HasDatabase() {
		psqlDb := db.MustConnectToDb(cfg.DatabaseURL, cfg.MigrationDir)
		defer psqlDb.Close()
		querier = sqlc.New(psqlDb)
	} else {
		log.Warn("DATABASE_URL not set, analytics disabled")
	}

	sessionManager := mc.NewBattleshipSessionManager()
	gameManager := mb.NewBattleshipGameManager()
	go sessionManager.CleanupPeriodically()

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", api.NewRequestProcessor(sessionManager, gameManager, querier))

	log.Info("listening", "addr", cfg.Addr(), "stage", cfg.Stage)
	log.Fatal(http.ListenAndServe(cfg.Addr(), mux))
}
