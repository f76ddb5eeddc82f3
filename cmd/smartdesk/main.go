package main

import (
	"context"
	"log"
	"os"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/buildinfo"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/cli"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
