package main

import (
	"database/sql"
	"errors"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/Hardik8491/Gold-Coin-sub001/src/config"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatalf("postgres.WithInstance: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("migrate.NewWithDatabaseInstance: %v", err)
	}

	before, _, err := m.Version()
	if err != nil && errors.Is(err, migrate.ErrNilVersion) {
		before = 0
	} else if err != nil {
		log.Fatalf("m.Version: %v", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("m.Up: %v", err)
	}

	after, _, err := m.Version()
	if err != nil {
		log.Fatalf("m.Version: %v", err)
	}

	log.Printf("INFO: Migrated database from version %d to %d", before, after)
}
