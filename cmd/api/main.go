package main

import (
	"net/http"
	"os"
	"time"

	"dog-boarding-api/internal/adapters/auth/jwtauth"
	pg "dog-boarding-api/internal/adapters/storage/postgres"
	"dog-boarding-api/internal/config"
	"dog-boarding-api/internal/platform/logger"
	"dog-boarding-api/internal/ports/auth"
	"dog-boarding-api/internal/router"

	_ "dog-boarding-api/docs"
)

// @title        Dog Boarding API
// @version      1.0
// @description  Backend de registros para guardería y hotel de perros: tutores, perros, fichas de salud, hospedajes y servicios.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		verifier = jwtauth.NewVerifier(cfg.JWTSecret)
	}

	opts := router.Options{
		AuthVerifier: verifier,
		Log:          log,
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres connection failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"port": cfg.Port})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
