package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/joeshaw/envdecode"

	"github.com/minaorangina/hanabi/deck"
	"github.com/minaorangina/hanabi/server"
)

type config struct {
	Port      int    `env:"HANABI_PORT,default=8000"`
	PlayLevel string `env:"HANABI_PLAY_LEVEL,default=regular"`
	StaticDir string `env:"HANABI_STATIC_DIR,default=./static"`
}

func main() {
	var cfg config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		log.Fatalf("could not read config: %s", err)
	}

	level, err := deck.ParseLevel(cfg.PlayLevel)
	if err != nil {
		log.Fatal(err)
	}

	s := server.NewServer(server.Opts{Level: level, StaticDir: cfg.StaticDir})
	handler := handlers.LoggingHandler(os.Stdout, handlers.RecoveryHandler()(s))

	log.Printf("Hosting a %s game on port %d...", level, cfg.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), handler))
}
