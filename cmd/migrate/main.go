package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mlarsden/PocketFarm_Go/internal/config"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with migration files")
	command := flag.String("command", "up", "goose command (up, down, status, version)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	db, err := sql.Open("pgx", cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, *dir)
	case "down":
		err = goose.Down(db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	case "version":
		err = goose.Version(db, *dir)
	default:
		log.Fatalf("Unknown command: %s", *command)
	}
	if err != nil {
		log.Fatalf("Migration %s failed: %v", *command, err)
	}

	log.Printf("Migration %s completed", *command)
}
