package main

import (
	"context"
	"log"
	"os"

	"github.com/dkaledin/teamtrack/internal/buildinfo"
	"github.com/dkaledin/teamtrack/internal/server"
	"github.com/dkaledin/teamtrack/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
