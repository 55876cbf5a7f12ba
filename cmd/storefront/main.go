package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/labelshop/internal/buildinfo"
	"github.com/dmitrijs2005/labelshop/internal/storefront"
	"github.com/dmitrijs2005/labelshop/internal/storefront/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := storefront.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
