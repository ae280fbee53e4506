package main

import (
	"context"
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/menu-board/internal/config"
	"github.com/fdg312/menu-board/internal/dbmigrate"
)

func main() {
	usage := "usage: go run ./cmd/migrate [" + strings.Join(dbmigrate.Commands, "|") + "]"
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	command := os.Args[1]
	if !dbmigrate.IsSupported(command) {
		log.Fatalf("unsupported command %q; %s", command, usage)
	}

	cfg := config.Load()
	dbURL, source, warning, err := dbmigrate.SelectDatabaseURL(cfg, false)
	if err != nil {
		log.Fatal(err)
	}

	if warning != "" {
		log.Printf("WARN migrate: %s", warning)
	}
	log.Printf("migrate: command=%s using=%s", command, source)

	if err := dbmigrate.Run(context.Background(), command, dbURL); err != nil {
		log.Fatal(err)
	}

	log.Printf("migrate: %s completed successfully", command)
}
