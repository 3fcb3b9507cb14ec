package main

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/dashboard"
)

func main() {
	path := os.Getenv("DASHBOARD_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := dashboard.LoadConfig(path)
	if err != nil {
		log.Fatalf("dashboard: load config %s: %v", path, err)
	}

	e := echo.New()
	e.HideBanner = true

	dashboard.NewHandler(cfg).Register(e)

	log.Printf("dashboard listening on :%s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
