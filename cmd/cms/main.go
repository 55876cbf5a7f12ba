package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/labelshop/internal/buildinfo"
	"github.com/dmitrijs2005/labelshop/internal/cms"
	"github.com/dmitrijs2005/labelshop/internal/cms/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cms.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
