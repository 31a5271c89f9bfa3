package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/odlagro/apoiov/internal/config"
	"github.com/odlagro/apoiov/internal/logger"
	"github.com/odlagro/apoiov/internal/server"
)

var (
	port    = flag.Int("port", 0, "porta HTTP (sobrepõe config.toml)")
	devMode = flag.Bool("dev", false, "modo de desenvolvimento")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("falha ao carregar configuração, usando padrões: %v", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	logger.Initialize(cfg.Server.DevMode)
	defer logger.Sync()

	srv := server.NewServer(cfg)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		fmt.Printf("apoiov escutando em http://localhost:%d\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("falha ao iniciar servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("encerrando...")
}
