package main

import (
	"log"

	"github.com/andreslomelig/NovaFolio/internal/bootstrap"
	"github.com/andreslomelig/NovaFolio/internal/shared/config"
	"github.com/andreslomelig/NovaFolio/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	log.Printf("novafolio api listening on %s", addr)
	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
