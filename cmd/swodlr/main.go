package main

import (
	"log"
	"os"

	swodlrcli "github.com/podaac/swodlr-cli/pkg"
)

const version = "0.1.0"

func main() {
	cfg := &swodlrcli.Config{
		Format:  "json",
		Timeout: 30,
	}

	builder := swodlrcli.NewCLIBuilder(cfg)

	app := builder.NewApp()
	app.Version = version

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
